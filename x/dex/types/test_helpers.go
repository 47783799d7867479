package types

import (
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TestAddr generates a valid bech32 address for testing
func TestAddr() string {
	privKey := secp256k1.GenPrivKey()
	addr := sdk.AccAddress(privKey.PubKey().Address())
	return addr.String()
}

// MustPair builds a pair and panics on invalid assets. For tests and fixtures.
func MustPair(assetA, assetB string) Pair {
	pair, err := NewPair(assetA, assetB)
	if err != nil {
		panic(err)
	}
	return pair
}
