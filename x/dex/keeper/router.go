package keeper

import (
	"context"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/amm"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// originFeeDivisor sizes the fee charged on swaps paid in the native asset (0.5%).
var originFeeDivisor = math.NewInt(200)

// hop is one leg of a path with the reserves it sees when quoted.
type hop struct {
	pair                  types.Pair
	assetIn, assetOut     string
	reserveIn, reserveOut math.Int
}

func (k Keeper) loadHop(ctx context.Context, assetIn, assetOut string) (hop, error) {
	pair, err := types.NewPair(assetIn, assetOut)
	if err != nil {
		return hop{}, types.ErrInvalidPath.Wrap(err.Error())
	}
	if _, err := k.getTradingPair(ctx, pair); err != nil {
		return hop{}, types.ErrInvalidPath.Wrapf("hop %s: %v", pair, err)
	}
	reserve0, reserve1 := k.GetReserves(ctx, pair)
	reserveIn, reserveOut := pair.Orient(assetIn, reserve0, reserve1)
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return hop{}, types.ErrInvalidPath.Wrapf("hop %s has an empty reserve", pair)
	}
	return hop{pair: pair, assetIn: assetIn, assetOut: assetOut, reserveIn: reserveIn, reserveOut: reserveOut}, nil
}

func (k Keeper) validatePath(ctx context.Context, path []string) error {
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	return types.ValidatePath(path, params.MaxPathLength)
}

// GetAmountOutByPath quotes selling amountIn along path. amounts[0] is the
// input and amounts[i+1] the output of hop i.
func (k Keeper) GetAmountOutByPath(ctx context.Context, amountIn math.Int, path []string) ([]math.Int, error) {
	if err := k.validatePath(ctx, path); err != nil {
		return nil, err
	}

	amounts := make([]math.Int, 0, len(path))
	amounts = append(amounts, amountIn)
	for i := 0; i < len(path)-1; i++ {
		h, err := k.loadHop(ctx, path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		out, err := amm.GetAmountOut(amounts[i], h.reserveIn, h.reserveOut)
		if err != nil {
			return nil, err
		}
		if !out.IsPositive() {
			return nil, types.ErrInvalidPath.Wrapf("hop %s yields nothing for %s", h.pair, amounts[i])
		}

		reserveInAfter, err := amm.SafeAdd(h.reserveIn, amounts[i])
		if err != nil {
			return nil, err
		}
		reserveOutAfter, err := amm.SafeSub(h.reserveOut, out)
		if err != nil {
			return nil, err
		}
		if err := amm.CheckConstantProduct(h.reserveIn, h.reserveOut, reserveInAfter, reserveOutAfter); err != nil {
			return nil, err
		}
		amounts = append(amounts, out)
	}
	return amounts, nil
}

// GetAmountInByPath quotes buying amountOut at the end of path. The result is
// ordered like GetAmountOutByPath: amounts[0] is the required input.
func (k Keeper) GetAmountInByPath(ctx context.Context, amountOut math.Int, path []string) ([]math.Int, error) {
	if err := k.validatePath(ctx, path); err != nil {
		return nil, err
	}

	amounts := make([]math.Int, len(path))
	amounts[len(path)-1] = amountOut
	for i := len(path) - 1; i > 0; i-- {
		h, err := k.loadHop(ctx, path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		in, err := amm.GetAmountIn(amounts[i], h.reserveIn, h.reserveOut)
		if err != nil {
			return nil, err
		}
		if in.LTE(math.OneInt()) {
			return nil, types.ErrInvalidPath.Wrapf("hop %s needs a degenerate input %s", h.pair, in)
		}

		reserveInAfter, err := amm.SafeAdd(h.reserveIn, in)
		if err != nil {
			return nil, err
		}
		reserveOutAfter, err := amm.SafeSub(h.reserveOut, amounts[i])
		if err != nil {
			return nil, err
		}
		if err := amm.CheckConstantProduct(h.reserveIn, h.reserveOut, reserveInAfter, reserveOutAfter); err != nil {
			return nil, err
		}
		amounts[i-1] = in
	}
	return amounts, nil
}

// SwapExactAssetsForAssets sells amountIn of path[0] for at least
// amountOutMin of the last asset, paid to recipient. Selling the native asset
// first skims the origin fee into the pot account.
func (k Keeper) SwapExactAssetsForAssets(
	ctx context.Context,
	who sdk.AccAddress,
	amountIn, amountOutMin math.Int,
	path []string,
	recipient sdk.AccAddress,
) ([]math.Int, error) {
	if err := checkBalances(amountIn, amountOutMin); err != nil {
		return nil, err
	}
	var amounts []math.Int
	err := k.atomically(ctx, func(cacheCtx sdk.Context) error {
		params, err := k.GetParams(cacheCtx)
		if err != nil {
			return err
		}
		if err := types.ValidatePath(path, params.MaxPathLength); err != nil {
			return err
		}

		netIn := amountIn
		if path[0] == params.NativeDenom {
			fee := amountIn.Quo(originFeeDivisor)
			netIn = amountIn.Sub(fee)
			if fee.IsPositive() {
				if err := k.ledger.Transfer(cacheCtx, path[0], who, types.PotAccount(), fee); err != nil {
					return err
				}
				k.metrics.OriginFeesCollected.WithLabelValues(path[0]).Add(toFloat(fee))
			}
		}

		amounts, err = k.GetAmountOutByPath(cacheCtx, netIn, path)
		if err != nil {
			return err
		}
		if final := amounts[len(amounts)-1]; final.LT(amountOutMin) {
			return types.ErrInsufficientTargetAmount.Wrapf("output %s below minimum %s", final, amountOutMin)
		}

		return k.executeSwap(cacheCtx, who, amounts, path, recipient, "exact_in")
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// SwapAssetsForExactAssets buys amountOut of the last asset of path, paying
// at most amountInMax of path[0].
func (k Keeper) SwapAssetsForExactAssets(
	ctx context.Context,
	who sdk.AccAddress,
	amountOut, amountInMax math.Int,
	path []string,
	recipient sdk.AccAddress,
) ([]math.Int, error) {
	if err := checkBalances(amountOut, amountInMax); err != nil {
		return nil, err
	}
	var amounts []math.Int
	err := k.atomically(ctx, func(cacheCtx sdk.Context) error {
		var err error
		amounts, err = k.GetAmountInByPath(cacheCtx, amountOut, path)
		if err != nil {
			return err
		}
		if amounts[0].GT(amountInMax) {
			return types.ErrExcessiveSoldAmount.Wrapf("input %s above maximum %s", amounts[0], amountInMax)
		}

		return k.executeSwap(cacheCtx, who, amounts, path, recipient, "exact_out")
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// executeSwap moves quoted amounts along path. The trader pays into the first
// reserve account; each hop pays its output straight into the next hop's
// reserve account and the last hop pays recipient.
func (k Keeper) executeSwap(
	ctx sdk.Context,
	who sdk.AccAddress,
	amounts []math.Int,
	path []string,
	recipient sdk.AccAddress,
	kind string,
) error {
	first, err := types.NewPair(path[0], path[1])
	if err != nil {
		return err
	}
	if err := k.ledger.Transfer(ctx, path[0], who, first.ReserveAccount(), amounts[0]); err != nil {
		return err
	}

	for i := 0; i < len(path)-1; i++ {
		pair, err := types.NewPair(path[i], path[i+1])
		if err != nil {
			return err
		}
		to := recipient
		if i < len(path)-2 {
			next, err := types.NewPair(path[i+1], path[i+2])
			if err != nil {
				return err
			}
			to = next.ReserveAccount()
		}
		if err := k.pairSwap(ctx, pair, path[i+1], amounts[i+1], to); err != nil {
			return err
		}
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAssetSwap,
			sdk.NewAttribute(types.AttributeKeyOwner, who.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			sdk.NewAttribute(types.AttributeKeyPath, strings.Join(path, ",")),
			sdk.NewAttribute(types.AttributeKeyAmounts, joinAmounts(amounts)),
		),
	)

	k.metrics.SwapsTotal.WithLabelValues(path[0], path[len(path)-1], kind).Inc()
	k.metrics.SwapVolume.WithLabelValues(path[0]).Add(toFloat(amounts[0]))
	k.metrics.SwapHops.Observe(float64(len(path) - 1))
	k.Logger(ctx).Debug("swap executed",
		"trader", who.String(),
		"recipient", recipient.String(),
		"path", strings.Join(path, ","),
		"amounts", joinAmounts(amounts),
	)
	return nil
}

// pairSwap pays amountOut of assetOut from a trading pair's reserve account to to.
func (k Keeper) pairSwap(ctx sdk.Context, pair types.Pair, assetOut string, amountOut math.Int, to sdk.AccAddress) error {
	meta, err := k.getTradingPair(ctx, pair)
	if err != nil {
		return err
	}
	reserve := k.ledger.BalanceOf(ctx, assetOut, meta.ReserveAccount)
	if amountOut.GT(reserve) {
		return types.ErrInsufficientPairReserve.Wrapf("pair %s holds %s%s, needs %s", pair, reserve, assetOut, amountOut)
	}
	if !amountOut.IsPositive() {
		return nil
	}
	return k.ledger.Transfer(ctx, assetOut, meta.ReserveAccount, to, amountOut)
}

func joinAmounts(amounts []math.Int) string {
	parts := make([]string, len(amounts))
	for i, a := range amounts {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}
