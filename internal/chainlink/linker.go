// Package chainlink reconstructs a height-ordered canonical chain from an
// unordered stream of decoded blocks. One Linker instance owns all chain
// state; callers drive it from a single goroutine.
package chainlink

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"
)

// Status is the lifecycle state of a sighted block hash.
type Status uint8

const (
	// StatusPending marks a block whose ancestry is not yet confirmed.
	StatusPending Status = iota
	// StatusMain marks a block confirmed on the canonical chain.
	StatusMain
	// StatusOrphan marks a block confirmed to be on an abandoned branch.
	StatusOrphan
)

func (s Status) String() string {
	switch s {
	case StatusMain:
		return "main"
	case StatusOrphan:
		return "orphan"
	default:
		return "pending"
	}
}

// Anchor is a trusted (height, hash) pair seeding height assignment; a block
// whose previous hash matches an anchor is assigned anchor height + 1.
type Anchor struct {
	Height uint64
	Hash   chainhash.Hash
}

// Confirmed is a block newly promoted to the canonical chain.
type Confirmed[T any] struct {
	Height  uint64
	Hash    chainhash.Hash
	Payload T

	// LowConfidence marks blocks promoted through a fork resolved by
	// discovery order because no node best-hash hint was available.
	LowConfidence bool
}

// Retraction identifies an already-confirmed block demoted by a fork.
type Retraction struct {
	Height uint64
	Hash   chainhash.Hash
}

// Outcome is everything a single observation changed.
type Outcome[T any] struct {
	Confirmed []Confirmed[T]
	Retracted []Retraction
}

// Gap describes pending blocks whose ancestor was never found.
type Gap struct {
	MissingParent chainhash.Hash
	Blocks        int
}

type link[T any] struct {
	hash    chainhash.Hash
	prev    chainhash.Hash
	height  uint64
	status  Status
	payload T
	seq     uint64
}

// Linker holds exactly one link per distinct block hash and guarantees at
// most one main-status link per height.
type Linker[T any] struct {
	logger   *zap.Logger
	links    map[chainhash.Hash]*link[T]
	children map[chainhash.Hash][]*link[T]
	mainAt   map[uint64]*link[T]
	anchors  map[chainhash.Hash]uint64
	bestHash *chainhash.Hash
	nextSeq  uint64
	pending  int
	tip      uint64
}

// New builds a Linker seeded with the given trusted anchors.
func New[T any](logger *zap.Logger, anchors []Anchor) *Linker[T] {
	l := &Linker[T]{
		logger:   logger,
		links:    make(map[chainhash.Hash]*link[T]),
		children: make(map[chainhash.Hash][]*link[T]),
		mainAt:   make(map[uint64]*link[T]),
		anchors:  make(map[chainhash.Hash]uint64),
	}
	for _, a := range anchors {
		l.anchors[a.Hash] = a.Height
	}
	return l
}

// SetBestHash records the node's reported best-block hash, used to break
// fork ties with high confidence. Without it ties fall back to discovery
// order and are flagged low-confidence.
func (l *Linker[T]) SetBestHash(h chainhash.Hash) {
	l.bestHash = &h
}

// Observe ingests one decoded block. Re-observing a known hash is a no-op;
// the outcome lists every block the observation confirmed or retracted.
func (l *Linker[T]) Observe(hash, prev chainhash.Hash, payload T) Outcome[T] {
	var out Outcome[T]

	if _, seen := l.links[hash]; seen {
		return out
	}
	if _, isAnchor := l.anchors[hash]; isAnchor {
		return out
	}

	ln := &link[T]{hash: hash, prev: prev, payload: payload, seq: l.nextSeq}
	l.nextSeq++
	l.links[hash] = ln
	l.children[prev] = append(l.children[prev], ln)
	l.pending++

	if parent, ok := l.links[prev]; ok && parent.status == StatusOrphan {
		l.reconsider(ln, parent, &out)
		return out
	}

	if parentHeight, ok := l.parentHeight(prev); ok {
		l.promote(ln, parentHeight+1, false, &out)
	}
	return out
}

func (l *Linker[T]) parentHeight(prev chainhash.Hash) (uint64, bool) {
	if h, ok := l.anchors[prev]; ok {
		return h, true
	}
	if p, ok := l.links[prev]; ok && p.status == StatusMain {
		return p.height, true
	}
	return 0, false
}

type promotion[T any] struct {
	ln      *link[T]
	height  uint64
	lowConf bool
}

// promote confirms ln at the given height and cascades through any buffered
// children. A height collision triggers fork resolution. Iterative: pending
// chains can be arbitrarily long before their anchor arrives.
func (l *Linker[T]) promote(ln *link[T], height uint64, lowConf bool, out *Outcome[T]) {
	stack := []promotion[T]{{ln: ln, height: height, lowConf: lowConf}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.ln.status != StatusPending {
			continue
		}
		if incumbent, occupied := l.mainAt[p.height]; occupied && incumbent != p.ln {
			l.resolveFork(incumbent, p.ln, p.height, out)
			continue
		}

		p.ln.status = StatusMain
		p.ln.height = p.height
		l.mainAt[p.height] = p.ln
		l.pending--
		if p.height > l.tip {
			l.tip = p.height
		}

		// Payload stays resident until eviction: a retracted block can win
		// its height back and must be re-emitted.
		out.Confirmed = append(out.Confirmed, Confirmed[T]{
			Height:        p.height,
			Hash:          p.ln.hash,
			Payload:       p.ln.payload,
			LowConfidence: p.lowConf,
		})

		for _, child := range l.children[p.ln.hash] {
			if child.status == StatusPending {
				stack = append(stack, promotion[T]{ln: child, height: p.height + 1, lowConf: p.lowConf})
			}
		}
	}
}

// reconsider re-runs fork resolution when a new block extends an orphaned
// branch. The branch competes again from its fork height with its grown
// continuation; losing again re-orphans the whole branch, new block included.
func (l *Linker[T]) reconsider(ln, parent *link[T], out *Outcome[T]) {
	root := parent
	for {
		p, ok := l.links[root.prev]
		if !ok || p.status != StatusOrphan {
			break
		}
		root = p
	}

	forkParent, ok := l.parentHeight(root.prev)
	if !ok {
		// The fork point is gone, the branch can never win.
		l.orphanBranch(ln, out)
		return
	}
	height := forkParent + 1
	incumbent, occupied := l.mainAt[height]
	if !occupied {
		l.orphanBranch(ln, out)
		return
	}

	l.reviveBranch(root)
	l.resolveFork(incumbent, root, height, out)
}

// reviveBranch returns an orphaned subtree to pending so it can compete in
// fork resolution again.
func (l *Linker[T]) reviveBranch(root *link[T]) {
	stack := []*link[T]{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.status != StatusOrphan {
			continue
		}
		cur.status = StatusPending
		l.pending++
		for _, child := range l.children[cur.hash] {
			stack = append(stack, child)
		}
	}
}

// resolveFork decides which of two branches keeps height. The branch whose
// tip matches the node's best hash wins outright; otherwise the longer known
// continuation wins; equal lengths keep the first-discovered branch and flag
// the promotion low-confidence.
func (l *Linker[T]) resolveFork(incumbent, challenger *link[T], height uint64, out *Outcome[T]) {
	incTip, incLen := l.branchTip(incumbent)
	chTip, chLen := l.branchTip(challenger)

	challengerWins := false
	lowConf := false
	switch {
	case l.bestHash != nil && chTip == *l.bestHash:
		challengerWins = true
	case l.bestHash != nil && incTip == *l.bestHash:
		challengerWins = false
	case chLen > incLen:
		challengerWins = true
	case chLen < incLen:
		challengerWins = false
	default:
		// Equal length, no oracle: keep the first-discovered branch.
		challengerWins = challenger.seq < incumbent.seq
		lowConf = true
	}

	if l.logger != nil {
		l.logger.Info("fork resolved",
			zap.Uint64("height", height),
			zap.Stringer("incumbent", incumbent.hash),
			zap.Stringer("challenger", challenger.hash),
			zap.Bool("challengerWins", challengerWins),
			zap.Bool("lowConfidence", lowConf),
		)
	}

	if !challengerWins {
		l.orphanBranch(challenger, out)
		return
	}

	l.demoteBranch(incumbent, out)
	l.promote(challenger, height, lowConf, out)
}

// branchTip returns the deepest known tip of the branch rooted at ln and the
// number of links on that longest continuation.
func (l *Linker[T]) branchTip(ln *link[T]) (chainhash.Hash, int) {
	type frame struct {
		ln    *link[T]
		depth int
	}
	tip := ln.hash
	best := 1
	stack := []frame{{ln: ln, depth: 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > best {
			best = f.depth
			tip = f.ln.hash
		}
		for _, child := range l.children[f.ln.hash] {
			if child.status != StatusOrphan {
				stack = append(stack, frame{ln: child, depth: f.depth + 1})
			}
		}
	}
	return tip, best
}

// demoteBranch turns a link and every descendant into orphans, retracting
// the ones already confirmed.
func (l *Linker[T]) demoteBranch(ln *link[T], out *Outcome[T]) {
	stack := []*link[T]{ln}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch cur.status {
		case StatusMain:
			delete(l.mainAt, cur.height)
			out.Retracted = append(out.Retracted, Retraction{Height: cur.height, Hash: cur.hash})
		case StatusPending:
			l.pending--
		case StatusOrphan:
			continue
		}
		cur.status = StatusOrphan

		for _, child := range l.children[cur.hash] {
			if child.status != StatusOrphan {
				stack = append(stack, child)
			}
		}
	}
}

// orphanBranch marks a never-confirmed branch orphan.
func (l *Linker[T]) orphanBranch(ln *link[T], out *Outcome[T]) {
	l.demoteBranch(ln, out)
}

// EvictBelow converts confirmed links below height into anchors, releasing
// their link state while keeping descendants resolvable. Returns the number
// of links evicted.
func (l *Linker[T]) EvictBelow(height uint64) int {
	evicted := 0
	for h, ln := range l.mainAt {
		if h >= height {
			continue
		}
		l.anchors[ln.hash] = h
		delete(l.mainAt, h)
		delete(l.links, ln.hash)
		l.dropChild(ln.prev, ln)
		evicted++
	}
	return evicted
}

func (l *Linker[T]) dropChild(parent chainhash.Hash, ln *link[T]) {
	kids := l.children[parent]
	for i, k := range kids {
		if k == ln {
			l.children[parent] = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(l.children[parent]) == 0 {
		delete(l.children, parent)
	}
}

// Unresolved reports pending blocks grouped by the ancestor hash that was
// never observed. Meaningful once file discovery is exhausted.
func (l *Linker[T]) Unresolved() []Gap {
	counted := make(map[chainhash.Hash]int)
	for _, ln := range l.links {
		if ln.status != StatusPending {
			continue
		}
		root := l.pendingRoot(ln)
		counted[root.prev]++
	}

	gaps := make([]Gap, 0, len(counted))
	for missing, n := range counted {
		gaps = append(gaps, Gap{MissingParent: missing, Blocks: n})
	}
	return gaps
}

// pendingRoot walks up through pending ancestors to the first link whose
// parent is unknown.
func (l *Linker[T]) pendingRoot(ln *link[T]) *link[T] {
	for {
		parent, ok := l.links[ln.prev]
		if !ok || parent.status != StatusPending {
			return ln
		}
		ln = parent
	}
}

// PendingCount returns the number of links still awaiting ancestry.
func (l *Linker[T]) PendingCount() int {
	return l.pending
}

// TipHeight returns the highest confirmed height seen so far.
func (l *Linker[T]) TipHeight() uint64 {
	return l.tip
}
