package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// GetPairStatus returns the lifecycle status of a pair. Pairs never written
// are Disabled.
func (k Keeper) GetPairStatus(ctx context.Context, pair types.Pair) (types.PairStatus, error) {
	bz := k.getStore(ctx).Get(PairStatusKey(pair))
	if bz == nil {
		return types.Disabled{}, nil
	}

	var rec types.PairStatusRecord
	if err := k.unmarshal(bz, &rec); err != nil {
		return nil, fmt.Errorf("GetPairStatus: unmarshal %s: %w", pair, err)
	}
	rec.Pair = pair
	return rec.Status()
}

// SetPairStatus stores the status of a pair.
func (k Keeper) SetPairStatus(ctx context.Context, pair types.Pair, status types.PairStatus) error {
	if err := k.setValue(ctx, PairStatusKey(pair), types.NewPairStatusRecord(pair, status)); err != nil {
		return fmt.Errorf("SetPairStatus: marshal %s: %w", pair, err)
	}
	return nil
}

// IteratePairStatuses calls cb for every stored pair status until cb returns true.
func (k Keeper) IteratePairStatuses(ctx context.Context, cb func(pair types.Pair, status types.PairStatus) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), PairStatusKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		pair, _, ok := splitPairKey(iterator.Key()[len(PairStatusKeyPrefix):])
		if !ok {
			return fmt.Errorf("IteratePairStatuses: malformed key %X", iterator.Key())
		}
		var rec types.PairStatusRecord
		if err := k.unmarshal(iterator.Value(), &rec); err != nil {
			return fmt.Errorf("IteratePairStatuses: unmarshal %s: %w", pair, err)
		}
		rec.Pair = pair
		status, err := rec.Status()
		if err != nil {
			return err
		}
		if cb(pair, status) {
			break
		}
	}
	return nil
}

// getTradingPair returns the metadata of a Trading pair, failing with
// ErrInvalidStatus for any other status.
func (k Keeper) getTradingPair(ctx context.Context, pair types.Pair) (types.PairMetadata, error) {
	status, err := k.GetPairStatus(ctx, pair)
	if err != nil {
		return types.PairMetadata{}, err
	}
	trading, ok := status.(types.Trading)
	if !ok {
		return types.PairMetadata{}, types.ErrInvalidStatus.Wrapf("pair %s is %s", pair, status)
	}
	return trading.Metadata, nil
}

// GetBootstrapEndStatus returns the parameters snapshotted when the pair's
// bootstrap ended.
func (k Keeper) GetBootstrapEndStatus(ctx context.Context, pair types.Pair) (types.BootstrapParameter, bool, error) {
	bz := k.getStore(ctx).Get(BootstrapEndStatusKey(pair))
	if bz == nil {
		return types.BootstrapParameter{}, false, nil
	}
	var param types.BootstrapParameter
	if err := k.unmarshal(bz, &param); err != nil {
		return types.BootstrapParameter{}, false, fmt.Errorf("GetBootstrapEndStatus: unmarshal %s: %w", pair, err)
	}
	return param, true, nil
}

// SetBootstrapEndStatus stores the end snapshot of a pair's bootstrap.
func (k Keeper) SetBootstrapEndStatus(ctx context.Context, pair types.Pair, param types.BootstrapParameter) error {
	if err := k.setValue(ctx, BootstrapEndStatusKey(pair), param); err != nil {
		return fmt.Errorf("SetBootstrapEndStatus: marshal %s: %w", pair, err)
	}
	return nil
}

// IterateBootstrapEndStatuses calls cb for every stored end snapshot.
func (k Keeper) IterateBootstrapEndStatuses(ctx context.Context, cb func(pair types.Pair, param types.BootstrapParameter) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), BootstrapEndStatusKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		pair, _, ok := splitPairKey(iterator.Key()[len(BootstrapEndStatusKeyPrefix):])
		if !ok {
			return fmt.Errorf("IterateBootstrapEndStatuses: malformed key %X", iterator.Key())
		}
		var param types.BootstrapParameter
		if err := k.unmarshal(iterator.Value(), &param); err != nil {
			return fmt.Errorf("IterateBootstrapEndStatuses: unmarshal %s: %w", pair, err)
		}
		if cb(pair, param) {
			break
		}
	}
	return nil
}

// GetContribution returns what who has pledged to the pair's bootstrap.
func (k Keeper) GetContribution(ctx context.Context, pair types.Pair, who sdk.AccAddress) (types.Supply, bool, error) {
	bz := k.getStore(ctx).Get(ContributionKey(pair, who))
	if bz == nil {
		return types.ZeroSupply(), false, nil
	}
	var supply types.Supply
	if err := k.unmarshal(bz, &supply); err != nil {
		return types.Supply{}, false, fmt.Errorf("GetContribution: unmarshal: %w", err)
	}
	return supply, true, nil
}

// SetContribution stores an account's contribution to a pair.
func (k Keeper) SetContribution(ctx context.Context, pair types.Pair, who sdk.AccAddress, supply types.Supply) error {
	if err := k.setValue(ctx, ContributionKey(pair, who), supply); err != nil {
		return fmt.Errorf("SetContribution: marshal: %w", err)
	}
	return nil
}

// takeContribution removes and returns an account's contribution, failing
// with ErrZeroContribute when none is recorded.
func (k Keeper) takeContribution(ctx context.Context, pair types.Pair, who sdk.AccAddress) (types.Supply, error) {
	supply, found, err := k.GetContribution(ctx, pair, who)
	if err != nil {
		return types.Supply{}, err
	}
	if !found {
		return types.Supply{}, types.ErrZeroContribute.Wrapf("%s has no contribution to %s", who, pair)
	}
	k.getStore(ctx).Delete(ContributionKey(pair, who))
	return supply, nil
}

// IterateContributions calls cb for every recorded contribution.
func (k Keeper) IterateContributions(ctx context.Context, cb func(pair types.Pair, who sdk.AccAddress, supply types.Supply) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), ContributionKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		pair, rest, ok := splitPairKey(iterator.Key()[len(ContributionKeyPrefix):])
		if !ok {
			return fmt.Errorf("IterateContributions: malformed key %X", iterator.Key())
		}
		who, _, ok := splitLengthPrefixed(rest)
		if !ok {
			return fmt.Errorf("IterateContributions: malformed key %X", iterator.Key())
		}
		var supply types.Supply
		if err := k.unmarshal(iterator.Value(), &supply); err != nil {
			return fmt.Errorf("IterateContributions: unmarshal: %w", err)
		}
		if cb(pair, sdk.AccAddress(who), supply) {
			break
		}
	}
	return nil
}

// assetAmountsValue is the stored form of a reward or limit map.
type assetAmountsValue struct {
	Entries types.AssetAmounts `json:"entries"`
}

func (k Keeper) getAssetAmounts(ctx context.Context, key []byte) (types.AssetAmounts, error) {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return types.AssetAmounts{}, nil
	}
	var v assetAmountsValue
	if err := k.unmarshal(bz, &v); err != nil {
		return nil, err
	}
	if v.Entries == nil {
		return types.AssetAmounts{}, nil
	}
	return v.Entries, nil
}

// setAssetAmounts stores a reward or limit map. An empty map is an absent key.
func (k Keeper) setAssetAmounts(ctx context.Context, key []byte, amounts types.AssetAmounts) error {
	if len(amounts) == 0 {
		k.getStore(ctx).Delete(key)
		return nil
	}
	return k.setValue(ctx, key, assetAmountsValue{Entries: amounts})
}

// GetBootstrapRewards returns the reward map of a pair.
func (k Keeper) GetBootstrapRewards(ctx context.Context, pair types.Pair) (types.AssetAmounts, error) {
	rewards, err := k.getAssetAmounts(ctx, BootstrapRewardsKey(pair))
	if err != nil {
		return nil, fmt.Errorf("GetBootstrapRewards: %s: %w", pair, err)
	}
	return rewards, nil
}

// SetBootstrapRewards stores the reward map of a pair.
func (k Keeper) SetBootstrapRewards(ctx context.Context, pair types.Pair, rewards types.AssetAmounts) error {
	if err := k.setAssetAmounts(ctx, BootstrapRewardsKey(pair), rewards); err != nil {
		return fmt.Errorf("SetBootstrapRewards: %s: %w", pair, err)
	}
	return nil
}

// GetBootstrapLimits returns the eligibility limits of a pair.
func (k Keeper) GetBootstrapLimits(ctx context.Context, pair types.Pair) (types.AssetAmounts, error) {
	limits, err := k.getAssetAmounts(ctx, BootstrapLimitsKey(pair))
	if err != nil {
		return nil, fmt.Errorf("GetBootstrapLimits: %s: %w", pair, err)
	}
	return limits, nil
}

// SetBootstrapLimits stores the eligibility limits of a pair.
func (k Keeper) SetBootstrapLimits(ctx context.Context, pair types.Pair, limits types.AssetAmounts) error {
	if err := k.setAssetAmounts(ctx, BootstrapLimitsKey(pair), limits); err != nil {
		return fmt.Errorf("SetBootstrapLimits: %s: %w", pair, err)
	}
	return nil
}

func (k Keeper) iterateAssetAmounts(ctx context.Context, prefix []byte, cb func(pair types.Pair, amounts types.AssetAmounts)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		pair, _, ok := splitPairKey(iterator.Key()[len(prefix):])
		if !ok {
			return fmt.Errorf("malformed key %X", iterator.Key())
		}
		var v assetAmountsValue
		if err := k.unmarshal(iterator.Value(), &v); err != nil {
			return err
		}
		cb(pair, v.Entries)
	}
	return nil
}

// GetReserves returns the live reserves of a pair, read from its reserve account.
func (k Keeper) GetReserves(ctx context.Context, pair types.Pair) (math.Int, math.Int) {
	account := pair.ReserveAccount()
	return k.ledger.BalanceOf(ctx, pair.Asset0, account), k.ledger.BalanceOf(ctx, pair.Asset1, account)
}
