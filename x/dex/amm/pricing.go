package amm

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// 0.3% trading fee: input is weighted by 997/1000
var (
	feeMul = big.NewInt(997)
	feeDen = big.NewInt(1000)
)

// GetAmountOut prices an exact input against a pair's reserves:
//
//	out = floor(in*997*rOut / (rIn*1000 + in*997))
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	if !amountIn.IsPositive() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrOverflow.Wrapf(
			"zero input to amount out: in=%s reserve_in=%s reserve_out=%s", amountIn, reserveIn, reserveOut)
	}

	inWithFee := new(big.Int).Mul(amountIn.BigInt(), feeMul)
	numerator := new(big.Int).Mul(inWithFee, reserveOut.BigInt())
	denominator := new(big.Int).Mul(reserveIn.BigInt(), feeDen)
	denominator.Add(denominator, inWithFee)

	return ToBalance(numerator.Quo(numerator, denominator))
}

// GetAmountIn is the ceiling-rounded inverse of GetAmountOut:
//
//	in = floor(rIn*out*1000 / ((rOut-out)*997)) + 1
func GetAmountIn(amountOut, reserveIn, reserveOut math.Int) (math.Int, error) {
	if !amountOut.IsPositive() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrOverflow.Wrapf(
			"zero input to amount in: out=%s reserve_in=%s reserve_out=%s", amountOut, reserveIn, reserveOut)
	}
	if amountOut.GTE(reserveOut) {
		return math.Int{}, types.ErrOverflow.Wrapf("amount out %s drains reserve %s", amountOut, reserveOut)
	}

	numerator := new(big.Int).Mul(reserveIn.BigInt(), amountOut.BigInt())
	numerator.Mul(numerator, feeDen)
	denominator := new(big.Int).Sub(reserveOut.BigInt(), amountOut.BigInt())
	denominator.Mul(denominator, feeMul)

	amountIn := numerator.Quo(numerator, denominator)
	return ToBalance(amountIn.Add(amountIn, big.NewInt(1)))
}

// CheckConstantProduct fails unless rInAfter*rOutAfter >= rInBefore*rOutBefore.
func CheckConstantProduct(rInBefore, rOutBefore, rInAfter, rOutAfter math.Int) error {
	before := Product(rInBefore, rOutBefore)
	after := Product(rInAfter, rOutAfter)
	if after.Cmp(before) < 0 {
		return types.ErrInvariantCheckFailed.Wrapf("k decreased from %s to %s", before, after)
	}
	return nil
}
