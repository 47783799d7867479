package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/pawswap/x/dex/types"
)

var (
	// PairStatusKeyPrefix is the prefix for pair lifecycle status keys
	PairStatusKeyPrefix = []byte{0x01}

	// BootstrapEndStatusKeyPrefix is the prefix for bootstrap end snapshots
	BootstrapEndStatusKeyPrefix = []byte{0x02}

	// ContributionKeyPrefix is the prefix for per-account bootstrap contributions
	ContributionKeyPrefix = []byte{0x03}

	// BootstrapRewardsKeyPrefix is the prefix for pledged bootstrap rewards
	BootstrapRewardsKeyPrefix = []byte{0x04}

	// BootstrapLimitsKeyPrefix is the prefix for bootstrap eligibility limits
	BootstrapLimitsKeyPrefix = []byte{0x05}

	// KLastKeyPrefix is the prefix for the last recorded reserve product
	KLastKeyPrefix = []byte{0x06}

	// FeeMetaKey is the key for the protocol fee configuration
	FeeMetaKey = []byte{0x07}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x08}
)

func pairKey(prefix []byte, pair types.Pair) []byte {
	key := make([]byte, 0, len(prefix)+len(pair.Asset0)+len(pair.Asset1)+2)
	key = append(key, prefix...)
	return append(key, pair.Bytes()...)
}

// PairStatusKey returns the store key for a pair's status
func PairStatusKey(pair types.Pair) []byte {
	return pairKey(PairStatusKeyPrefix, pair)
}

// BootstrapEndStatusKey returns the store key for a pair's end snapshot
func BootstrapEndStatusKey(pair types.Pair) []byte {
	return pairKey(BootstrapEndStatusKeyPrefix, pair)
}

// ContributionKeyByPairPrefix returns the prefix for all contributions to a pair
func ContributionKeyByPairPrefix(pair types.Pair) []byte {
	return pairKey(ContributionKeyPrefix, pair)
}

// ContributionKey returns the store key for an account's contribution to a pair
func ContributionKey(pair types.Pair, who sdk.AccAddress) []byte {
	return append(ContributionKeyByPairPrefix(pair), address.MustLengthPrefix(who)...)
}

// BootstrapRewardsKey returns the store key for a pair's reward map
func BootstrapRewardsKey(pair types.Pair) []byte {
	return pairKey(BootstrapRewardsKeyPrefix, pair)
}

// BootstrapLimitsKey returns the store key for a pair's limit map
func BootstrapLimitsKey(pair types.Pair) []byte {
	return pairKey(BootstrapLimitsKeyPrefix, pair)
}

// KLastKey returns the store key for a pair's kLast
func KLastKey(pair types.Pair) []byte {
	return pairKey(KLastKeyPrefix, pair)
}

// splitPairKey parses the pair encoded at the start of a prefix-stripped key
// and returns the remaining bytes.
func splitPairKey(bz []byte) (types.Pair, []byte, bool) {
	asset0, rest, ok := splitLengthPrefixed(bz)
	if !ok {
		return types.Pair{}, nil, false
	}
	asset1, rest, ok := splitLengthPrefixed(rest)
	if !ok {
		return types.Pair{}, nil, false
	}
	return types.Pair{Asset0: string(asset0), Asset1: string(asset1)}, rest, true
}

func splitLengthPrefixed(bz []byte) ([]byte, []byte, bool) {
	if len(bz) == 0 {
		return nil, nil, false
	}
	n := int(bz[0])
	if len(bz) < 1+n {
		return nil, nil, false
	}
	return bz[1 : 1+n], bz[1+n:], true
}
