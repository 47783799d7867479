package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// InitGenesis initializes the dex module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}
	if err := k.SetFeeMeta(ctx, genState.FeeMeta); err != nil {
		return fmt.Errorf("failed to set fee meta: %w", err)
	}

	for _, rec := range genState.PairStatuses {
		status, err := rec.Status()
		if err != nil {
			return err
		}
		if err := k.SetPairStatus(ctx, rec.Pair, status); err != nil {
			return fmt.Errorf("failed to set pair %s: %w", rec.Pair, err)
		}
	}

	for _, rec := range genState.BootstrapEndStatuses {
		if err := k.SetBootstrapEndStatus(ctx, rec.Pair, *rec.Bootstrap); err != nil {
			return fmt.Errorf("failed to set end status of %s: %w", rec.Pair, err)
		}
	}

	for _, c := range genState.Contributions {
		who := sdk.MustAccAddressFromBech32(c.Contributor)
		if err := k.SetContribution(ctx, c.Pair, who, c.Supply); err != nil {
			return fmt.Errorf("failed to set contribution of %s to %s: %w", c.Contributor, c.Pair, err)
		}
	}

	for _, r := range genState.BootstrapRewards {
		entries, err := types.NewAssetAmounts(r.Entries...)
		if err != nil {
			return err
		}
		if err := k.SetBootstrapRewards(ctx, r.Pair, entries); err != nil {
			return err
		}
	}
	for _, r := range genState.BootstrapLimits {
		entries, err := types.NewAssetAmounts(r.Entries...)
		if err != nil {
			return err
		}
		if err := k.SetBootstrapLimits(ctx, r.Pair, entries); err != nil {
			return err
		}
	}

	for _, r := range genState.KLasts {
		kLast, ok := math.NewIntFromString(r.KLast)
		if !ok {
			return types.ErrInvalidGenesis.Wrapf("kLast of %s is not an integer: %q", r.Pair, r.KLast)
		}
		if err := k.SetKLast(ctx, r.Pair, kLast); err != nil {
			return err
		}
	}

	k.Logger(ctx).Info("dex genesis initialized",
		"pairs", len(genState.PairStatuses),
		"contributions", len(genState.Contributions),
	)
	return nil
}

// ExportGenesis returns the dex module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()

	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}
	genesis.Params = params

	feeMeta, err := k.GetFeeMeta(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get fee meta: %w", err)
	}
	genesis.FeeMeta = feeMeta

	if err := k.IteratePairStatuses(ctx, func(pair types.Pair, status types.PairStatus) bool {
		genesis.PairStatuses = append(genesis.PairStatuses, types.NewPairStatusRecord(pair, status))
		return false
	}); err != nil {
		return nil, err
	}

	if err := k.IterateBootstrapEndStatuses(ctx, func(pair types.Pair, param types.BootstrapParameter) bool {
		genesis.BootstrapEndStatuses = append(genesis.BootstrapEndStatuses,
			types.NewPairStatusRecord(pair, types.Bootstrap{Parameter: param}))
		return false
	}); err != nil {
		return nil, err
	}

	if err := k.IterateContributions(ctx, func(pair types.Pair, who sdk.AccAddress, supply types.Supply) bool {
		genesis.Contributions = append(genesis.Contributions, types.ContributionRecord{
			Pair:        pair,
			Contributor: who.String(),
			Supply:      supply,
		})
		return false
	}); err != nil {
		return nil, err
	}

	if err := k.iterateAssetAmounts(ctx, BootstrapRewardsKeyPrefix, func(pair types.Pair, amounts types.AssetAmounts) {
		genesis.BootstrapRewards = append(genesis.BootstrapRewards, types.AssetAmountsRecord{Pair: pair, Entries: amounts})
	}); err != nil {
		return nil, fmt.Errorf("failed to export rewards: %w", err)
	}
	if err := k.iterateAssetAmounts(ctx, BootstrapLimitsKeyPrefix, func(pair types.Pair, amounts types.AssetAmounts) {
		genesis.BootstrapLimits = append(genesis.BootstrapLimits, types.AssetAmountsRecord{Pair: pair, Entries: amounts})
	}); err != nil {
		return nil, fmt.Errorf("failed to export limits: %w", err)
	}

	if err := k.IterateKLasts(ctx, func(pair types.Pair, kLast math.Int) bool {
		genesis.KLasts = append(genesis.KLasts, types.KLastRecord{Pair: pair, KLast: kLast.String()})
		return false
	}); err != nil {
		return nil, err
	}

	return genesis, nil
}
