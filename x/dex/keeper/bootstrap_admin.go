package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/amm"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// CreatePair opens a pair for trading with empty reserves. A pair whose
// bootstrap expired below target may be reopened this way.
func (k Keeper) CreatePair(ctx context.Context, authority, assetA, assetB string) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	pair, err := types.NewPair(assetA, assetB)
	if err != nil {
		return err
	}

	return k.atomically(ctx, func(cacheCtx sdk.Context) error {
		status, err := k.GetPairStatus(cacheCtx, pair)
		if err != nil {
			return err
		}
		switch s := status.(type) {
		case types.Disabled:
		case types.Bootstrap:
			if !s.Parameter.Disabled(cacheCtx.BlockHeight()) {
				return types.ErrPairAlreadyExists.Wrapf("pair %s is in a live bootstrap", pair)
			}
			// contributors of the failed round refund against the snapshot
			if err := k.SetBootstrapEndStatus(cacheCtx, pair, s.Parameter); err != nil {
				return err
			}
		default:
			return types.ErrPairAlreadyExists.Wrapf("pair %s is %s", pair, status)
		}

		meta := types.PairMetadata{ReserveAccount: pair.ReserveAccount(), TotalSupply: math.ZeroInt()}
		if err := k.SetPairStatus(cacheCtx, pair, types.Trading{Metadata: meta}); err != nil {
			return err
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePairCreated,
				sdk.NewAttribute(types.AttributeKeyPair, meta.ReserveAccount.String()),
				sdk.NewAttribute(types.AttributeKeyAsset0, pair.Asset0),
				sdk.NewAttribute(types.AttributeKeyAsset1, pair.Asset1),
			),
		)
		k.metrics.PairTransitions.WithLabelValues(status.String(), types.Trading{}.String()).Inc()
		k.Logger(cacheCtx).Info("pair created", "pair", pair.String(), "from", status.String())
		return nil
	})
}

// bootstrapParameter orients an admin configuration onto the pair.
func bootstrapParameter(pair types.Pair, config types.BootstrapConfig, accumulated types.Supply) types.BootstrapParameter {
	target0, target1 := pair.Orient(config.AssetA, config.TargetA, config.TargetB)
	capacity0, capacity1 := pair.Orient(config.AssetA, config.CapacityA, config.CapacityB)
	return types.BootstrapParameter{
		TargetSupply:      types.NewSupply(target0, target1),
		CapacitySupply:    types.NewSupply(capacity0, capacity1),
		AccumulatedSupply: accumulated,
		EndBlock:          config.EndBlock,
		EscrowAccount:     types.EscrowAccount(),
	}
}

// CreateBootstrap puts a pair into bootstrap. A bootstrap that expired below
// target is replaced in place and keeps the supply it accumulated.
func (k Keeper) CreateBootstrap(ctx context.Context, authority string, config types.BootstrapConfig) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}
	pair, err := types.NewPair(config.AssetA, config.AssetB)
	if err != nil {
		return err
	}

	return k.atomically(ctx, func(cacheCtx sdk.Context) error {
		status, err := k.GetPairStatus(cacheCtx, pair)
		if err != nil {
			return err
		}
		accumulated := types.ZeroSupply()
		switch s := status.(type) {
		case types.Disabled:
		case types.Bootstrap:
			if !s.Parameter.Disabled(cacheCtx.BlockHeight()) {
				return types.ErrPairAlreadyExists.Wrapf("pair %s is in a live bootstrap", pair)
			}
			accumulated = s.Parameter.AccumulatedSupply
		default:
			return types.ErrPairAlreadyExists.Wrapf("pair %s is %s", pair, status)
		}

		existing, err := k.GetBootstrapRewards(cacheCtx, pair)
		if err != nil {
			return err
		}
		if !existing.AllZero() {
			return types.ErrExistRewardsInBootstrap.Wrapf("pair %s still holds rewards %s", pair, formatAssetAmounts(existing))
		}

		param := bootstrapParameter(pair, config, accumulated)
		if err := param.Validate(); err != nil {
			return err
		}
		if err := k.installBootstrap(cacheCtx, pair, param, config); err != nil {
			return err
		}

		k.emitBootstrapConfigured(cacheCtx, types.EventTypeBootstrapCreated, pair, param)
		k.metrics.PairTransitions.WithLabelValues(status.String(), types.Bootstrap{}.String()).Inc()
		k.Logger(cacheCtx).Info("bootstrap created",
			"pair", pair.String(),
			"target", param.TargetSupply.String(),
			"capacity", param.CapacitySupply.String(),
			"end_block", param.EndBlock,
		)
		return nil
	})
}

// UpdateBootstrap reconfigures a pair in bootstrap. Accumulated supply is
// kept; pending rewards must be withdrawn first.
func (k Keeper) UpdateBootstrap(ctx context.Context, authority string, config types.BootstrapConfig) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}
	pair, err := types.NewPair(config.AssetA, config.AssetB)
	if err != nil {
		return err
	}

	return k.atomically(ctx, func(cacheCtx sdk.Context) error {
		status, err := k.GetPairStatus(cacheCtx, pair)
		if err != nil {
			return err
		}
		var current types.BootstrapParameter
		switch s := status.(type) {
		case types.Bootstrap:
			current = s.Parameter
		case types.Trading:
			return types.ErrPairAlreadyExists.Wrapf("pair %s is trading", pair)
		default:
			return types.ErrNotInBootstrap.Wrapf("pair %s is %s", pair, status)
		}

		existing, err := k.GetBootstrapRewards(cacheCtx, pair)
		if err != nil {
			return err
		}
		if !existing.AllZero() {
			return types.ErrExistRewardsInBootstrap.Wrapf("pair %s still holds rewards %s", pair, formatAssetAmounts(existing))
		}
		param := bootstrapParameter(pair, config, current.AccumulatedSupply)
		if err := param.Validate(); err != nil {
			return err
		}
		if err := k.installBootstrap(cacheCtx, pair, param, config); err != nil {
			return err
		}

		k.emitBootstrapConfigured(cacheCtx, types.EventTypeBootstrapUpdated, pair, param)
		k.Logger(cacheCtx).Info("bootstrap updated",
			"pair", pair.String(),
			"target", param.TargetSupply.String(),
			"capacity", param.CapacitySupply.String(),
			"end_block", param.EndBlock,
		)
		return nil
	})
}

// installBootstrap writes the status, a zeroed reward map and the limits of
// a bootstrap.
func (k Keeper) installBootstrap(
	ctx sdk.Context,
	pair types.Pair,
	param types.BootstrapParameter,
	config types.BootstrapConfig,
) error {
	rewards, err := types.ZeroRewards(config.RewardAssets)
	if err != nil {
		return err
	}
	limits, err := types.NewAssetAmounts(config.Limits...)
	if err != nil {
		return err
	}

	if err := k.SetPairStatus(ctx, pair, types.Bootstrap{Parameter: param}); err != nil {
		return err
	}
	if err := k.SetBootstrapRewards(ctx, pair, rewards); err != nil {
		return err
	}
	return k.SetBootstrapLimits(ctx, pair, limits)
}

func (k Keeper) emitBootstrapConfigured(ctx sdk.Context, eventType string, pair types.Pair, param types.BootstrapParameter) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyAsset0, pair.Asset0),
			sdk.NewAttribute(types.AttributeKeyAsset1, pair.Asset1),
			sdk.NewAttribute(types.AttributeKeyTarget, param.TargetSupply.String()),
			sdk.NewAttribute(types.AttributeKeyCapacity, param.CapacitySupply.String()),
			sdk.NewAttribute(types.AttributeKeyAccumulated, param.AccumulatedSupply.String()),
			sdk.NewAttribute(types.AttributeKeyEndBlock, strconv.FormatInt(param.EndBlock, 10)),
		),
	)
}

// BootstrapChargeReward funds the reward pool of a pair. rewards must name
// exactly the pair's reward assets.
func (k Keeper) BootstrapChargeReward(ctx context.Context, who sdk.AccAddress, assetA, assetB string, rewards []types.AssetAmount) error {
	pair, err := types.NewPair(assetA, assetB)
	if err != nil {
		return err
	}
	charge, err := types.NewAssetAmounts(rewards...)
	if err != nil {
		return err
	}

	return k.atomically(ctx, func(cacheCtx sdk.Context) error {
		current, err := k.GetBootstrapRewards(cacheCtx, pair)
		if err != nil {
			return err
		}
		if len(charge) != len(current) {
			return types.ErrChargeRewardParams.Wrapf("pair %s has %d reward assets, got %d", pair, len(current), len(charge))
		}

		escrow := types.EscrowAccount()
		for _, c := range charge {
			held, ok := current.Get(c.Asset)
			if !ok {
				return types.ErrNoRewardTokens.Wrapf("%s is not a reward of %s", c.Asset, pair)
			}
			if err := k.ledger.Transfer(cacheCtx, c.Asset, who, escrow, c.Amount); err != nil {
				return err
			}
			total, err := amm.SafeAdd(held, c.Amount)
			if err != nil {
				return err
			}
			for i := range current {
				if current[i].Asset == c.Asset {
					current[i].Amount = total
				}
			}
		}
		if err := k.SetBootstrapRewards(cacheCtx, pair, current); err != nil {
			return err
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeChargeReward,
				sdk.NewAttribute(types.AttributeKeyAsset0, pair.Asset0),
				sdk.NewAttribute(types.AttributeKeyAsset1, pair.Asset1),
				sdk.NewAttribute(types.AttributeKeyOwner, who.String()),
				sdk.NewAttribute(types.AttributeKeyRewards, formatAssetAmounts(charge)),
			),
		)
		k.Logger(cacheCtx).Info("bootstrap rewards charged", "pair", pair.String(), "who", who.String())
		return nil
	})
}

// BootstrapWithdrawReward sends every undistributed reward of a pair to
// recipient and zeroes the reward map.
func (k Keeper) BootstrapWithdrawReward(ctx context.Context, authority, assetA, assetB string, recipient sdk.AccAddress) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	pair, err := types.NewPair(assetA, assetB)
	if err != nil {
		return err
	}

	return k.atomically(ctx, func(cacheCtx sdk.Context) error {
		rewards, err := k.GetBootstrapRewards(cacheCtx, pair)
		if err != nil {
			return err
		}

		escrow := types.EscrowAccount()
		withdrawn := make(types.AssetAmounts, len(rewards))
		for i, r := range rewards {
			if err := k.ledger.Transfer(cacheCtx, r.Asset, escrow, recipient, r.Amount); err != nil {
				return err
			}
			withdrawn[i] = r
			rewards[i].Amount = math.ZeroInt()
		}
		if err := k.SetBootstrapRewards(cacheCtx, pair, rewards); err != nil {
			return err
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeWithdrawReward,
				sdk.NewAttribute(types.AttributeKeyAsset0, pair.Asset0),
				sdk.NewAttribute(types.AttributeKeyAsset1, pair.Asset1),
				sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
				sdk.NewAttribute(types.AttributeKeyRewards, formatAssetAmounts(withdrawn)),
			),
		)
		k.Logger(cacheCtx).Info("bootstrap rewards withdrawn", "pair", pair.String(), "recipient", recipient.String())
		return nil
	})
}
