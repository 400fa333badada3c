package script

import "github.com/btcsuite/btcd/btcutil"

// SpendResolution is the outcome of best-effort spender-address recovery.
// Unresolved is an expected result for pruned spends, never an error.
type SpendResolution struct {
	Resolved bool
	Class    Class
	Address  string
}

var unresolved = SpendResolution{}

// ResolveSpender attempts to recover the spending address of an input whose
// previous output is not locally available, using only the unlocking script
// and witness. Attempts are ordered: legacy signature+pubkey scriptSig first,
// then a P2WPKH-shaped witness stack. Coinbase inputs must not be routed here.
func (c *Classifier) ResolveSpender(sigScript []byte, witness [][]byte) SpendResolution {
	if res, ok := c.resolveLegacy(sigScript); ok {
		return res
	}
	if res, ok := c.resolveWitness(witness); ok {
		return res
	}
	return unresolved
}

// resolveLegacy matches the canonical P2PKH unlocking pattern: exactly two
// pushes, a DER signature followed by a public key.
func (c *Classifier) resolveLegacy(sigScript []byte) (SpendResolution, bool) {
	pushes, ok := parsePushes(sigScript)
	if !ok || len(pushes) != 2 {
		return unresolved, false
	}
	if !looksLikeSignature(pushes[0]) || !looksLikePubKey(pushes[1]) {
		return unresolved, false
	}
	addr := c.pubKeyHashAddress(btcutil.Hash160(pushes[1]))
	if addr == "" {
		return unresolved, false
	}
	return SpendResolution{Resolved: true, Class: ClassP2PKH, Address: addr}, true
}

// resolveWitness matches the P2WPKH witness shape: [signature, compressed
// pubkey]. BIP-141 requires compressed keys for witness programs.
func (c *Classifier) resolveWitness(witness [][]byte) (SpendResolution, bool) {
	if len(witness) != 2 {
		return unresolved, false
	}
	if !looksLikeSignature(witness[0]) {
		return unresolved, false
	}
	pubKey := witness[1]
	if len(pubKey) != 33 || (pubKey[0] != 0x02 && pubKey[0] != 0x03) {
		return unresolved, false
	}

	addr, err := btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pubKey), c.params)
	if err != nil {
		return unresolved, false
	}
	return SpendResolution{Resolved: true, Class: ClassP2WPKH, Address: addr.EncodeAddress()}, true
}

func looksLikeSignature(data []byte) bool {
	// DER sequence tag plus a sighash byte; real signatures run 9..73 bytes.
	return len(data) >= 9 && len(data) <= 73 && data[0] == 0x30
}

func looksLikePubKey(data []byte) bool {
	switch len(data) {
	case 33:
		return data[0] == 0x02 || data[0] == 0x03
	case 65:
		return data[0] == 0x04
	default:
		return false
	}
}

// parsePushes decodes a script consisting purely of data pushes. Any
// non-push opcode makes the script ineligible for spender recovery.
func parsePushes(script []byte) ([][]byte, bool) {
	var pushes [][]byte
	for i := 0; i < len(script); {
		op := script[i]
		i++
		var n int
		switch {
		case op == 0x00:
			pushes = append(pushes, nil)
			continue
		case op <= 75:
			n = int(op)
		case op == 0x4c: // OP_PUSHDATA1
			if i >= len(script) {
				return nil, false
			}
			n = int(script[i])
			i++
		case op == 0x4d: // OP_PUSHDATA2
			if i+1 >= len(script) {
				return nil, false
			}
			n = int(script[i]) | int(script[i+1])<<8
			i += 2
		default:
			return nil, false
		}
		if i+n > len(script) {
			return nil, false
		}
		pushes = append(pushes, script[i:i+n])
		i += n
	}
	return pushes, true
}
