// Package model defines domain models for raw block-file indexing.
package model

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

type Coin string
type Network string

var (
	BTC Coin = "BTC"
	LTC Coin = "LTC"
)

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// ChainParams carries everything coin-specific the pipeline needs: the magic
// bytes framing blocks inside blk*.dat files and the address-encoding
// parameters of the network.
type ChainParams struct {
	Coin    Coin
	Network Network
	Magic   [4]byte
	Params  *chaincfg.Params
}

// Litecoin address parameters. Kept as plain chaincfg values so btcutil
// address constructors produce the right prefixes without touching the
// global chaincfg registry.
var (
	litecoinMainNetParams = chaincfg.Params{
		Name:             "ltc-mainnet",
		PubKeyHashAddrID: 0x30,
		ScriptHashAddrID: 0x32,
		Bech32HRPSegwit:  "ltc",
	}

	litecoinTestNetParams = chaincfg.Params{
		Name:             "ltc-testnet4",
		PubKeyHashAddrID: 0x6f,
		ScriptHashAddrID: 0x3a,
		Bech32HRPSegwit:  "tltc",
	}
)

// ChainParamsFor resolves coin/network names into ChainParams.
func ChainParamsFor(coin Coin, network Network) (*ChainParams, error) {
	c := Coin(strings.ToUpper(string(coin)))
	n := Network(strings.ToLower(string(network)))

	switch {
	case c == BTC && n == Mainnet:
		return &ChainParams{
			Coin:    BTC,
			Network: Mainnet,
			Magic:   [4]byte{0xf9, 0xbe, 0xb4, 0xd9},
			Params:  &chaincfg.MainNetParams,
		}, nil
	case c == BTC && n == Testnet:
		return &ChainParams{
			Coin:    BTC,
			Network: Testnet,
			Magic:   [4]byte{0x0b, 0x11, 0x09, 0x07},
			Params:  &chaincfg.TestNet3Params,
		}, nil
	case c == LTC && n == Mainnet:
		return &ChainParams{
			Coin:    LTC,
			Network: Mainnet,
			Magic:   [4]byte{0xfb, 0xc0, 0xb6, 0xdb},
			Params:  &litecoinMainNetParams,
		}, nil
	case c == LTC && n == Testnet:
		return &ChainParams{
			Coin:    LTC,
			Network: Testnet,
			Magic:   [4]byte{0xfd, 0xd2, 0xc8, 0xf1},
			Params:  &litecoinTestNetParams,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported coin/network %q/%q", coin, network)
	}
}
