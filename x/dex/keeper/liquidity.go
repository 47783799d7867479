package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/amm"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// AddLiquidity deposits assetA and assetB into a trading pair and mints LP
// shares to who. Amounts are given in caller order. It returns the deposited
// amounts in caller order and the minted LP amount.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	who sdk.AccAddress,
	assetA, assetB string,
	desiredA, desiredB, minA, minB math.Int,
) (math.Int, math.Int, math.Int, error) {
	pair, err := types.NewPair(assetA, assetB)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := checkBalances(desiredA, desiredB, minA, minB); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	var depositA, depositB, minted math.Int
	err = k.atomically(ctx, func(cacheCtx sdk.Context) error {
		desired0, desired1 := pair.Orient(assetA, desiredA, desiredB)
		min0, min1 := pair.Orient(assetA, minA, minB)

		amount0, amount1, liquidity, err := k.addLiquidity(cacheCtx, pair, who, desired0, desired1, min0, min1)
		if err != nil {
			return err
		}
		depositA, depositB = pair.Orient(assetA, amount0, amount1)
		minted = liquidity
		return nil
	})
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	return depositA, depositB, minted, nil
}

func (k Keeper) addLiquidity(
	ctx sdk.Context,
	pair types.Pair,
	who sdk.AccAddress,
	desired0, desired1, min0, min1 math.Int,
) (math.Int, math.Int, math.Int, error) {
	meta, err := k.getTradingPair(ctx, pair)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	reserve0, reserve1 := k.GetReserves(ctx, pair)

	amount0, amount1, err := amm.CalculateAddedAmount(desired0, desired1, min0, min1, reserve0, reserve1)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	if k.ledger.BalanceOf(ctx, pair.Asset0, who).LT(amount0) || k.ledger.BalanceOf(ctx, pair.Asset1, who).LT(amount1) {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrInsufficientAssetBalance.Wrapf(
			"%s cannot cover %s%s and %s%s", who, amount0, pair.Asset0, amount1, pair.Asset1)
	}

	fee, err := k.mintProtocolFee(ctx, pair, reserve0, reserve1, meta.TotalSupply)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	totalSupply, err := amm.SafeAdd(meta.TotalSupply, fee)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	liquidity, err := amm.CalculateLiquidity(amount0, amount1, reserve0, reserve1, totalSupply)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if !liquidity.IsPositive() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrZeroLiquidity.Wrapf(
			"deposit of %s/%s mints no shares of %s", amount0, amount1, pair)
	}

	meta.TotalSupply, err = amm.SafeAdd(totalSupply, liquidity)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	if err := k.ledger.Deposit(ctx, pair.LPDenom(), who, liquidity); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := k.ledger.Transfer(ctx, pair.Asset0, who, meta.ReserveAccount, amount0); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := k.ledger.Transfer(ctx, pair.Asset1, who, meta.ReserveAccount, amount1); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := k.SetPairStatus(ctx, pair, types.Trading{Metadata: meta}); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := k.refreshKLast(ctx, pair); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityAdded,
			sdk.NewAttribute(types.AttributeKeyOwner, who.String()),
			sdk.NewAttribute(types.AttributeKeyAsset0, pair.Asset0),
			sdk.NewAttribute(types.AttributeKeyAsset1, pair.Asset1),
			sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
			sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
			sdk.NewAttribute(types.AttributeKeyLiquidity, liquidity.String()),
		),
	)

	k.recordPairGauges(ctx, pair, meta.TotalSupply)
	k.metrics.LiquidityAdded.WithLabelValues(pair.String(), pair.Asset0).Add(toFloat(amount0))
	k.metrics.LiquidityAdded.WithLabelValues(pair.String(), pair.Asset1).Add(toFloat(amount1))
	k.Logger(ctx).Debug("liquidity added",
		"pair", pair.String(),
		"provider", who.String(),
		"amount_0", amount0.String(),
		"amount_1", amount1.String(),
		"liquidity", liquidity.String(),
	)
	return amount0, amount1, liquidity, nil
}

// RemoveLiquidity burns lp shares of who and pays the underlying assets to
// recipient. It returns the withdrawn amounts in caller order.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	who sdk.AccAddress,
	assetA, assetB string,
	lp, minA, minB math.Int,
	recipient sdk.AccAddress,
) (math.Int, math.Int, error) {
	pair, err := types.NewPair(assetA, assetB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := checkBalances(lp, minA, minB); err != nil {
		return math.Int{}, math.Int{}, err
	}

	var outA, outB math.Int
	err = k.atomically(ctx, func(cacheCtx sdk.Context) error {
		min0, min1 := pair.Orient(assetA, minA, minB)
		amount0, amount1, err := k.removeLiquidity(cacheCtx, pair, who, lp, min0, min1, recipient)
		if err != nil {
			return err
		}
		outA, outB = pair.Orient(assetA, amount0, amount1)
		return nil
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return outA, outB, nil
}

func (k Keeper) removeLiquidity(
	ctx sdk.Context,
	pair types.Pair,
	who sdk.AccAddress,
	lp, min0, min1 math.Int,
	recipient sdk.AccAddress,
) (math.Int, math.Int, error) {
	meta, err := k.getTradingPair(ctx, pair)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if !lp.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrInvalidAmount.Wrap("liquidity to remove must be positive")
	}
	if meta.TotalSupply.IsZero() {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf("pair %s has no liquidity", pair)
	}
	reserve0, reserve1 := k.GetReserves(ctx, pair)

	amount0, err := amm.CalculateShareAmount(lp, meta.TotalSupply, reserve0)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	amount1, err := amm.CalculateShareAmount(lp, meta.TotalSupply, reserve1)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amount0.LT(min0) || amount1.LT(min1) {
		return math.Int{}, math.Int{}, types.ErrInsufficientTargetAmount.Wrapf(
			"withdrawal %s/%s below minimum %s/%s", amount0, amount1, min0, min1)
	}

	fee, err := k.mintProtocolFee(ctx, pair, reserve0, reserve1, meta.TotalSupply)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	totalSupply, err := amm.SafeAdd(meta.TotalSupply, fee)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if lp.GT(totalSupply) {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf("burn %s exceeds supply %s", lp, totalSupply)
	}
	meta.TotalSupply = totalSupply.Sub(lp)

	if err := k.ledger.Withdraw(ctx, pair.LPDenom(), who, lp); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.ledger.Transfer(ctx, pair.Asset0, meta.ReserveAccount, recipient, amount0); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.ledger.Transfer(ctx, pair.Asset1, meta.ReserveAccount, recipient, amount1); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.SetPairStatus(ctx, pair, types.Trading{Metadata: meta}); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.refreshKLast(ctx, pair); err != nil {
		return math.Int{}, math.Int{}, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityRemoved,
			sdk.NewAttribute(types.AttributeKeyOwner, who.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			sdk.NewAttribute(types.AttributeKeyAsset0, pair.Asset0),
			sdk.NewAttribute(types.AttributeKeyAsset1, pair.Asset1),
			sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
			sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
			sdk.NewAttribute(types.AttributeKeyLiquidity, lp.String()),
		),
	)

	k.recordPairGauges(ctx, pair, meta.TotalSupply)
	k.metrics.LiquidityRemoved.WithLabelValues(pair.String(), pair.Asset0).Add(toFloat(amount0))
	k.metrics.LiquidityRemoved.WithLabelValues(pair.String(), pair.Asset1).Add(toFloat(amount1))
	k.Logger(ctx).Debug("liquidity removed",
		"pair", pair.String(),
		"provider", who.String(),
		"recipient", recipient.String(),
		"amount_0", amount0.String(),
		"amount_1", amount1.String(),
		"liquidity", lp.String(),
	)
	return amount0, amount1, nil
}

func (k Keeper) recordPairGauges(ctx context.Context, pair types.Pair, totalSupply math.Int) {
	reserve0, reserve1 := k.GetReserves(ctx, pair)
	k.metrics.PairReserves.WithLabelValues(pair.String(), pair.Asset0).Set(toFloat(reserve0))
	k.metrics.PairReserves.WithLabelValues(pair.String(), pair.Asset1).Set(toFloat(reserve1))
	k.metrics.LPTokenSupply.WithLabelValues(pair.String()).Set(toFloat(totalSupply))
}

// checkBalances rejects nil, negative or oversized amounts.
func checkBalances(amounts ...math.Int) error {
	for _, amount := range amounts {
		if !amm.IsBalance(amount) {
			return types.ErrInvalidAmount.Wrapf("%s is not a valid balance", amount)
		}
	}
	return nil
}
