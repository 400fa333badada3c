// Package script classifies locking scripts, derives addresses, and recovers
// best-effort spender addresses from unlocking scripts of pruned spends.
package script

// Class is the closed set of recognized locking-script patterns, matched in a
// fixed precedence order.
type Class uint8

const (
	ClassP2PKH Class = iota
	ClassP2SH
	ClassP2WPKH
	ClassP2WSH
	ClassP2PK
	ClassOpReturn
	ClassBareMultisig
	ClassNonStandard
)

var classNames = map[Class]string{
	ClassP2PKH:        "p2pkh",
	ClassP2SH:         "p2sh",
	ClassP2WPKH:       "p2wpkh",
	ClassP2WSH:        "p2wsh",
	ClassP2PK:         "p2pk",
	ClassOpReturn:     "op_return",
	ClassBareMultisig: "bare_multisig",
	ClassNonStandard:  "nonstandard",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "nonstandard"
}

// HasAddress reports whether scripts of this class carry a derivable address.
func (c Class) HasAddress() bool {
	switch c {
	case ClassP2PKH, ClassP2SH, ClassP2WPKH, ClassP2WSH, ClassP2PK:
		return true
	default:
		return false
	}
}
