package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/amm"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// getBootstrap returns the parameters of a pair currently in bootstrap.
func (k Keeper) getBootstrap(ctx context.Context, pair types.Pair) (types.BootstrapParameter, error) {
	status, err := k.GetPairStatus(ctx, pair)
	if err != nil {
		return types.BootstrapParameter{}, err
	}
	b, ok := status.(types.Bootstrap)
	if !ok {
		return types.BootstrapParameter{}, types.ErrNotInBootstrap.Wrapf("pair %s is %s", pair, status)
	}
	return b.Parameter, nil
}

// clampToCapacity limits a contribution so accumulated+amount stays within capacity.
func clampToCapacity(amount, accumulated, capacity math.Int) (math.Int, error) {
	total, err := amm.SafeAdd(amount, accumulated)
	if err != nil {
		return math.Int{}, err
	}
	if total.GT(capacity) {
		return amm.SafeSub(capacity, accumulated)
	}
	return amount, nil
}

// BootstrapContribute pledges amountA/amountB to a running bootstrap. Each
// side is clamped to the remaining capacity; the excess is neither credited
// nor moved. It returns the credited amounts in caller order.
func (k Keeper) BootstrapContribute(
	ctx context.Context,
	who sdk.AccAddress,
	assetA, assetB string,
	amountA, amountB math.Int,
) (math.Int, math.Int, error) {
	pair, err := types.NewPair(assetA, assetB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := checkBalances(amountA, amountB); err != nil {
		return math.Int{}, math.Int{}, err
	}

	var creditedA, creditedB math.Int
	err = k.atomically(ctx, func(cacheCtx sdk.Context) error {
		param, err := k.getBootstrap(cacheCtx, pair)
		if err != nil {
			return err
		}
		if cacheCtx.BlockHeight() >= param.EndBlock {
			return types.ErrNotInBootstrap.Wrapf("bootstrap of %s ended at block %d", pair, param.EndBlock)
		}

		amount0, amount1 := pair.Orient(assetA, amountA, amountB)
		if amount0, err = clampToCapacity(amount0, param.AccumulatedSupply.Amount0, param.CapacitySupply.Amount0); err != nil {
			return err
		}
		if amount1, err = clampToCapacity(amount1, param.AccumulatedSupply.Amount1, param.CapacitySupply.Amount1); err != nil {
			return err
		}
		if !amount0.IsPositive() && !amount1.IsPositive() {
			return types.ErrInvalidContribution.Wrapf("nothing left to contribute to %s", pair)
		}

		contribution, _, err := k.GetContribution(cacheCtx, pair, who)
		if err != nil {
			return err
		}
		if contribution.Amount0, err = amm.SafeAdd(contribution.Amount0, amount0); err != nil {
			return err
		}
		if contribution.Amount1, err = amm.SafeAdd(contribution.Amount1, amount1); err != nil {
			return err
		}
		if err := k.SetContribution(cacheCtx, pair, who, contribution); err != nil {
			return err
		}

		if err := k.ledger.Transfer(cacheCtx, pair.Asset0, who, param.EscrowAccount, amount0); err != nil {
			return err
		}
		if err := k.ledger.Transfer(cacheCtx, pair.Asset1, who, param.EscrowAccount, amount1); err != nil {
			return err
		}

		if param.AccumulatedSupply.Amount0, err = amm.SafeAdd(param.AccumulatedSupply.Amount0, amount0); err != nil {
			return err
		}
		if param.AccumulatedSupply.Amount1, err = amm.SafeAdd(param.AccumulatedSupply.Amount1, amount1); err != nil {
			return err
		}
		if err := k.SetPairStatus(cacheCtx, pair, types.Bootstrap{Parameter: param}); err != nil {
			return err
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBootstrapContribute,
				sdk.NewAttribute(types.AttributeKeyOwner, who.String()),
				sdk.NewAttribute(types.AttributeKeyAsset0, pair.Asset0),
				sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
				sdk.NewAttribute(types.AttributeKeyAsset1, pair.Asset1),
				sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
			),
		)

		k.metrics.BootstrapContributions.WithLabelValues(pair.String(), pair.Asset0).Add(toFloat(amount0))
		k.metrics.BootstrapContributions.WithLabelValues(pair.String(), pair.Asset1).Add(toFloat(amount1))
		k.Logger(cacheCtx).Debug("bootstrap contribution",
			"pair", pair.String(),
			"contributor", who.String(),
			"amount_0", amount0.String(),
			"amount_1", amount1.String(),
		)

		creditedA, creditedB = pair.Orient(assetA, amount0, amount1)
		return nil
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return creditedA, creditedB, nil
}

// EndBootstrap turns a qualified bootstrap into a trading pair: the escrowed
// supply becomes the reserves and the initial LP supply is minted into the
// reserve account for contributors to claim. It returns the minted LP.
func (k Keeper) EndBootstrap(ctx context.Context, assetA, assetB string) (math.Int, error) {
	pair, err := types.NewPair(assetA, assetB)
	if err != nil {
		return math.Int{}, err
	}

	var totalLp math.Int
	err = k.atomically(ctx, func(cacheCtx sdk.Context) error {
		param, err := k.getBootstrap(cacheCtx, pair)
		if err != nil {
			return err
		}
		if !param.Qualified(cacheCtx.BlockHeight()) {
			return types.ErrUnqualifiedBootstrap.Wrapf(
				"pair %s at block %d: accumulated %s, target %s, end block %d",
				pair, cacheCtx.BlockHeight(), param.AccumulatedSupply, param.TargetSupply, param.EndBlock)
		}

		totalLp, err = amm.BootstrapLiquidity(param.AccumulatedSupply.Amount0, param.AccumulatedSupply.Amount1)
		if err != nil {
			return err
		}
		if !totalLp.IsPositive() {
			return types.ErrZeroLiquidity.Wrapf("bootstrap of %s mints no shares", pair)
		}

		reserveAccount := pair.ReserveAccount()
		if err := k.ledger.Transfer(cacheCtx, pair.Asset0, param.EscrowAccount, reserveAccount, param.AccumulatedSupply.Amount0); err != nil {
			return err
		}
		if err := k.ledger.Transfer(cacheCtx, pair.Asset1, param.EscrowAccount, reserveAccount, param.AccumulatedSupply.Amount1); err != nil {
			return err
		}
		if err := k.ledger.Deposit(cacheCtx, pair.LPDenom(), reserveAccount, totalLp); err != nil {
			return err
		}

		meta := types.PairMetadata{ReserveAccount: reserveAccount, TotalSupply: totalLp}
		if err := k.SetPairStatus(cacheCtx, pair, types.Trading{Metadata: meta}); err != nil {
			return err
		}
		if err := k.SetBootstrapEndStatus(cacheCtx, pair, param); err != nil {
			return err
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBootstrapEnd,
				sdk.NewAttribute(types.AttributeKeyAsset0, pair.Asset0),
				sdk.NewAttribute(types.AttributeKeyAsset1, pair.Asset1),
				sdk.NewAttribute(types.AttributeKeyAmount0, param.AccumulatedSupply.Amount0.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1, param.AccumulatedSupply.Amount1.String()),
				sdk.NewAttribute(types.AttributeKeyTotalLiquidity, totalLp.String()),
			),
		)

		k.recordPairGauges(cacheCtx, pair, totalLp)
		k.metrics.PairTransitions.WithLabelValues(types.Bootstrap{}.String(), types.Trading{}.String()).Inc()
		k.Logger(cacheCtx).Info("bootstrap ended",
			"pair", pair.String(),
			"accumulated", param.AccumulatedSupply.String(),
			"total_lp", totalLp.String(),
		)
		return nil
	})
	if err != nil {
		return math.Int{}, err
	}
	return totalLp, nil
}

// BootstrapClaim pays who's share of the bootstrap LP to recipient and
// distributes the pledged rewards pro-rata to who. It returns the claimed LP.
func (k Keeper) BootstrapClaim(
	ctx context.Context,
	who, recipient sdk.AccAddress,
	assetA, assetB string,
) (math.Int, error) {
	pair, err := types.NewPair(assetA, assetB)
	if err != nil {
		return math.Int{}, err
	}

	var claimed math.Int
	err = k.atomically(ctx, func(cacheCtx sdk.Context) error {
		meta, err := k.getTradingPair(cacheCtx, pair)
		if err != nil {
			return types.ErrNotInBootstrap.Wrapf("pair %s has not finished a bootstrap", pair)
		}
		contribution, err := k.takeContribution(cacheCtx, pair, who)
		if err != nil {
			return err
		}
		param, found, err := k.GetBootstrapEndStatus(cacheCtx, pair)
		if err != nil {
			return err
		}
		if !found {
			return types.ErrNotInBootstrap.Wrapf("pair %s has no bootstrap end snapshot", pair)
		}
		if param.Disabled(cacheCtx.BlockHeight()) {
			return types.ErrDisableBootstrap.Wrapf("bootstrap of %s did not reach its target", pair)
		}

		claimed, err = amm.BootstrapClaimLiquidity(
			contribution.Amount0, contribution.Amount1,
			param.AccumulatedSupply.Amount0, param.AccumulatedSupply.Amount1,
		)
		if err != nil {
			return err
		}
		if err := k.ledger.Transfer(cacheCtx, pair.LPDenom(), meta.ReserveAccount, recipient, claimed); err != nil {
			return err
		}

		totalLp, err := amm.BootstrapLiquidity(param.AccumulatedSupply.Amount0, param.AccumulatedSupply.Amount1)
		if err != nil {
			return err
		}
		if err := k.distributeReward(cacheCtx, pair, who, param.EscrowAccount, claimed, totalLp); err != nil {
			return err
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBootstrapClaim,
				sdk.NewAttribute(types.AttributeKeyPair, meta.ReserveAccount.String()),
				sdk.NewAttribute(types.AttributeKeyOwner, who.String()),
				sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
				sdk.NewAttribute(types.AttributeKeyAsset0, pair.Asset0),
				sdk.NewAttribute(types.AttributeKeyAsset1, pair.Asset1),
				sdk.NewAttribute(types.AttributeKeyAmount0, contribution.Amount0.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1, contribution.Amount1.String()),
				sdk.NewAttribute(types.AttributeKeyLiquidity, claimed.String()),
			),
		)

		k.metrics.BootstrapClaims.WithLabelValues(pair.String()).Inc()
		k.Logger(cacheCtx).Debug("bootstrap claimed",
			"pair", pair.String(),
			"contributor", who.String(),
			"recipient", recipient.String(),
			"liquidity", claimed.String(),
		)
		return nil
	})
	if err != nil {
		return math.Int{}, err
	}
	return claimed, nil
}

// distributeReward pays owner its share of every pledged reward of pair.
func (k Keeper) distributeReward(
	ctx sdk.Context,
	pair types.Pair,
	owner, rewardHolder sdk.AccAddress,
	shareLp, totalLp math.Int,
) error {
	rewards, err := k.GetBootstrapRewards(ctx, pair)
	if err != nil {
		return err
	}

	distributed := make(types.AssetAmounts, 0, len(rewards))
	for _, reward := range rewards {
		amount, err := amm.RewardShare(shareLp, reward.Amount, totalLp)
		if err != nil {
			return err
		}
		if err := k.ledger.Transfer(ctx, reward.Asset, rewardHolder, owner, amount); err != nil {
			return err
		}
		distributed = append(distributed, types.AssetAmount{Asset: reward.Asset, Amount: amount})
		k.metrics.RewardsDistributed.WithLabelValues(reward.Asset).Add(toFloat(amount))
	}

	if len(distributed) > 0 {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeDistributeReward,
				sdk.NewAttribute(types.AttributeKeyAsset0, pair.Asset0),
				sdk.NewAttribute(types.AttributeKeyAsset1, pair.Asset1),
				sdk.NewAttribute(types.AttributeKeyOwner, rewardHolder.String()),
				sdk.NewAttribute(types.AttributeKeyRewards, formatAssetAmounts(distributed)),
			),
		)
	}
	return nil
}

// BootstrapRefund returns who's contribution to a bootstrap that expired
// below target. It returns the refunded amounts in canonical order.
func (k Keeper) BootstrapRefund(ctx context.Context, who sdk.AccAddress, assetA, assetB string) (types.Supply, error) {
	pair, err := types.NewPair(assetA, assetB)
	if err != nil {
		return types.Supply{}, err
	}

	var refunded types.Supply
	err = k.atomically(ctx, func(cacheCtx sdk.Context) error {
		now := cacheCtx.BlockHeight()
		status, err := k.GetPairStatus(cacheCtx, pair)
		if err != nil {
			return err
		}
		live, inBootstrap := status.(types.Bootstrap)
		if inBootstrap {
			if !live.Parameter.Disabled(now) {
				return types.ErrDenyRefund.Wrapf("bootstrap of %s is still valid", pair)
			}
		} else {
			param, found, err := k.GetBootstrapEndStatus(cacheCtx, pair)
			if err != nil {
				return err
			}
			if !found || !param.Disabled(now) {
				return types.ErrDenyRefund.Wrapf("pair %s has no failed bootstrap", pair)
			}
		}

		refunded, err = k.takeContribution(cacheCtx, pair, who)
		if err != nil {
			return err
		}

		escrow := types.EscrowAccount()
		if err := k.ledger.Transfer(cacheCtx, pair.Asset0, escrow, who, refunded.Amount0); err != nil {
			return err
		}
		if err := k.ledger.Transfer(cacheCtx, pair.Asset1, escrow, who, refunded.Amount1); err != nil {
			return err
		}

		if inBootstrap {
			param := live.Parameter
			if param.AccumulatedSupply.Amount0, err = amm.SafeSub(param.AccumulatedSupply.Amount0, refunded.Amount0); err != nil {
				return err
			}
			if param.AccumulatedSupply.Amount1, err = amm.SafeSub(param.AccumulatedSupply.Amount1, refunded.Amount1); err != nil {
				return err
			}
			if err := k.SetPairStatus(cacheCtx, pair, types.Bootstrap{Parameter: param}); err != nil {
				return err
			}
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBootstrapRefund,
				sdk.NewAttribute(types.AttributeKeyPair, escrow.String()),
				sdk.NewAttribute(types.AttributeKeyOwner, who.String()),
				sdk.NewAttribute(types.AttributeKeyAsset0, pair.Asset0),
				sdk.NewAttribute(types.AttributeKeyAsset1, pair.Asset1),
				sdk.NewAttribute(types.AttributeKeyAmount0, refunded.Amount0.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1, refunded.Amount1.String()),
			),
		)

		k.metrics.BootstrapRefunds.WithLabelValues(pair.String()).Inc()
		k.Logger(cacheCtx).Debug("bootstrap refunded",
			"pair", pair.String(),
			"contributor", who.String(),
			"amounts", refunded.String(),
		)
		return nil
	})
	if err != nil {
		return types.Supply{}, err
	}
	return refunded, nil
}

// BootstrapCheckLimits reports whether who holds every minimum balance the
// pair's bootstrap asks of contributors.
func (k Keeper) BootstrapCheckLimits(ctx context.Context, assetA, assetB string, who sdk.AccAddress) (bool, error) {
	pair, err := types.NewPair(assetA, assetB)
	if err != nil {
		return false, err
	}
	limits, err := k.GetBootstrapLimits(ctx, pair)
	if err != nil {
		return false, err
	}
	for _, limit := range limits {
		if k.ledger.BalanceOf(ctx, limit.Asset, who).LT(limit.Amount) {
			return false, nil
		}
	}
	return true, nil
}

func formatAssetAmounts(amounts types.AssetAmounts) string {
	coins := make([]string, len(amounts))
	for i, a := range amounts {
		coins[i] = fmt.Sprintf("%s%s", a.Amount, a.Asset)
	}
	return fmt.Sprint(coins)
}
