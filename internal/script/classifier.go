package script

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// Script opcodes the pattern matcher cares about.
const (
	opDup         = 0x76
	opHash160     = 0xa9
	opEqual       = 0x87
	opEqualVerify = 0x88
	opCheckSig    = 0xac
	opCheckMulti  = 0xae
	opReturn      = 0x6a
	opData20      = 0x14
	opData32      = 0x20
	opData33      = 0x21
	opData65      = 0x41
	op1           = 0x51
	op16          = 0x60
)

// Classifier pattern-matches locking scripts and derives textual addresses
// for the configured network. Classification is deterministic: identical
// script bytes always yield the identical (class, address) pair.
type Classifier struct {
	params *chaincfg.Params
}

// NewClassifier builds a Classifier for the given network parameters.
func NewClassifier(params *chaincfg.Params) *Classifier {
	return &Classifier{params: params}
}

// Classify returns the script's class and derived address. The address is
// empty for classes that have none; an address is never invented for a
// script that does not match a known pattern.
func (c *Classifier) Classify(script []byte) (Class, string) {
	switch {
	case isP2PKH(script):
		return ClassP2PKH, c.pubKeyHashAddress(script[3:23])

	case isP2SH(script):
		addr, err := btcutil.NewAddressScriptHashFromHash(script[2:22], c.params)
		if err != nil {
			return ClassP2SH, ""
		}
		return ClassP2SH, addr.EncodeAddress()

	case isWitnessV0(script, opData20):
		addr, err := btcutil.NewAddressWitnessPubKeyHash(script[2:22], c.params)
		if err != nil {
			return ClassP2WPKH, ""
		}
		return ClassP2WPKH, addr.EncodeAddress()

	case isWitnessV0(script, opData32):
		addr, err := btcutil.NewAddressWitnessScriptHash(script[2:34], c.params)
		if err != nil {
			return ClassP2WSH, ""
		}
		return ClassP2WSH, addr.EncodeAddress()

	case isP2PK(script):
		pubKeyLen := int(script[0])
		return ClassP2PK, c.pubKeyHashAddress(btcutil.Hash160(script[1 : 1+pubKeyLen]))

	case len(script) > 0 && script[0] == opReturn:
		return ClassOpReturn, ""

	case isBareMultisig(script):
		return ClassBareMultisig, ""

	default:
		return ClassNonStandard, ""
	}
}

func (c *Classifier) pubKeyHashAddress(hash160 []byte) string {
	addr, err := btcutil.NewAddressPubKeyHash(hash160, c.params)
	if err != nil {
		return ""
	}
	return addr.EncodeAddress()
}

// OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG
func isP2PKH(script []byte) bool {
	return len(script) == 25 &&
		script[0] == opDup &&
		script[1] == opHash160 &&
		script[2] == opData20 &&
		script[23] == opEqualVerify &&
		script[24] == opCheckSig
}

// OP_HASH160 <20> OP_EQUAL
func isP2SH(script []byte) bool {
	return len(script) == 23 &&
		script[0] == opHash160 &&
		script[1] == opData20 &&
		script[22] == opEqual
}

// OP_0 <20|32 byte program>
func isWitnessV0(script []byte, programPush byte) bool {
	return len(script) == 2+int(programPush) &&
		script[0] == 0x00 &&
		script[1] == programPush
}

// <33|65 byte pubkey> OP_CHECKSIG
func isP2PK(script []byte) bool {
	switch {
	case len(script) == 35 && script[0] == opData33 && script[34] == opCheckSig:
		return script[1] == 0x02 || script[1] == 0x03
	case len(script) == 67 && script[0] == opData65 && script[66] == opCheckSig:
		return script[1] == 0x04
	default:
		return false
	}
}

// OP_m <pubkeys> OP_n OP_CHECKMULTISIG
func isBareMultisig(script []byte) bool {
	return len(script) >= 3 &&
		script[0] >= op1 && script[0] <= op16 &&
		script[len(script)-1] == opCheckMulti
}
