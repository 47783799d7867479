package amm

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// CalculateShareAmount returns floor(amount * reserve / supply).
func CalculateShareAmount(amount, supply, reserve math.Int) (math.Int, error) {
	if supply.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("share amount: zero supply")
	}
	return SafeMulDiv(amount, reserve, supply)
}

// CalculateLiquidity returns the LP amount minted for a deposit. The first
// deposit into an empty pool mints the geometric mean of the amounts.
func CalculateLiquidity(amount0, amount1, reserve0, reserve1, totalSupply math.Int) (math.Int, error) {
	if totalSupply.IsZero() {
		return SqrtProduct(amount0, amount1)
	}

	liq0, err := CalculateShareAmount(amount0, reserve0, totalSupply)
	if err != nil {
		return math.Int{}, err
	}
	liq1, err := CalculateShareAmount(amount1, reserve1, totalSupply)
	if err != nil {
		return math.Int{}, err
	}
	return math.MinInt(liq0, liq1), nil
}

// CalculateAddedAmount sizes a deposit against the current pool ratio. Empty
// pools take the desired amounts as-is.
func CalculateAddedAmount(
	desired0, desired1, min0, min1, reserve0, reserve1 math.Int,
) (math.Int, math.Int, error) {
	if reserve0.IsZero() || reserve1.IsZero() {
		return desired0, desired1, nil
	}

	optimal1, err := CalculateShareAmount(desired0, reserve0, reserve1)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if optimal1.LTE(desired1) {
		if optimal1.LT(min1) {
			return math.Int{}, math.Int{}, types.ErrIncorrectAssetAmountRange.Wrapf(
				"optimal amount %s below minimum %s", optimal1, min1)
		}
		return desired0, optimal1, nil
	}

	optimal0, err := CalculateShareAmount(desired1, reserve1, reserve0)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if optimal0.LT(min0) || optimal0.GT(desired0) {
		return math.Int{}, math.Int{}, types.ErrIncorrectAssetAmountRange.Wrapf(
			"optimal amount %s outside [%s, %s]", optimal0, min0, desired0)
	}
	return optimal0, desired1, nil
}

// ProtocolFee computes the Uniswap-V2 style fee-on-mint:
//
//	supply*(rootK-rootKLast) / (rootK*((30-feePoint)/feePoint) + rootKLast)
//
// The (30-feePoint)/feePoint term is truncated before it is multiplied. A zero
// result means nothing is minted.
func ProtocolFee(reserve0, reserve1, totalSupply, kLast math.Int, feePoint uint32) (math.Int, error) {
	if feePoint == 0 || feePoint > types.MaxFeePoint || kLast.IsNil() || kLast.IsZero() {
		return math.ZeroInt(), nil
	}

	rootK := sqrt(Product(reserve0, reserve1))
	rootKLast := sqrt(kLast.BigInt())
	if rootK.Cmp(rootKLast) <= 0 {
		return math.ZeroInt(), nil
	}

	fixFeePoint := big.NewInt(int64((types.MaxFeePoint - feePoint) / feePoint))
	numerator := new(big.Int).Mul(totalSupply.BigInt(), new(big.Int).Sub(rootK, rootKLast))
	denominator := new(big.Int).Mul(rootK, fixFeePoint)
	denominator.Add(denominator, rootKLast)
	if denominator.Sign() == 0 {
		return math.ZeroInt(), nil
	}

	return ToBalance(numerator.Quo(numerator, denominator))
}
