package amm

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// MaxBalance is the largest value a single asset balance may hold (2^128 - 1).
// Intermediate products are computed on big.Int and narrowed back with ToBalance.
var MaxBalance = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// ToBalance narrows a wide intermediate into the balance range.
func ToBalance(x *big.Int) (math.Int, error) {
	if x.Sign() < 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("underflow: %s is negative", x.String())
	}
	if x.Cmp(MaxBalance.BigInt()) > 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("overflow: %s exceeds balance width", x.String())
	}
	return math.NewIntFromBigInt(x), nil
}

// IsBalance reports whether x is a well-formed balance.
func IsBalance(x math.Int) bool {
	return !x.IsNil() && !x.IsNegative() && x.LTE(MaxBalance)
}

// SafeAdd adds two balances with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	return ToBalance(new(big.Int).Add(a.BigInt(), b.BigInt()))
}

// SafeSub subtracts two balances with underflow checking
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrOverflow.Wrapf("underflow: cannot subtract %s from %s", b.String(), a.String())
	}
	return ToBalance(new(big.Int).Sub(a.BigInt(), b.BigInt()))
}

// SafeMulDiv performs floor(a * b / c) on a wide accumulator.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return ToBalance(intermediate.Quo(intermediate, c.BigInt()))
}

// Product returns a * b without narrowing. Used for reserve products and kLast.
func Product(a, b math.Int) *big.Int {
	return new(big.Int).Mul(a.BigInt(), b.BigInt())
}

// sqrt returns floor(sqrt(x)) for x >= 0.
func sqrt(x *big.Int) *big.Int {
	if x.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sqrt(x)
}

// SqrtProduct returns floor(sqrt(a * b)) narrowed to the balance range.
func SqrtProduct(a, b math.Int) (math.Int, error) {
	return ToBalance(sqrt(Product(a, b)))
}
