package types

import (
	"cosmossdk.io/errors"
)

// DEX module sentinel errors
var (
	// state errors
	ErrPairNotExists     = errors.Register(ModuleName, 2, "pair does not exist")
	ErrPairAlreadyExists = errors.Register(ModuleName, 3, "pair already exists")
	ErrInvalidStatus     = errors.Register(ModuleName, 4, "invalid pair status for operation")
	ErrNotInBootstrap    = errors.Register(ModuleName, 5, "pair is not in bootstrap")
	ErrUnauthorized      = errors.Register(ModuleName, 6, "unauthorized")
	ErrDeadlineExpired   = errors.Register(ModuleName, 7, "deadline expired")

	// amount errors
	ErrZeroLiquidity             = errors.Register(ModuleName, 10, "zero liquidity")
	ErrInsufficientAssetBalance  = errors.Register(ModuleName, 11, "insufficient asset balance")
	ErrInsufficientLiquidity     = errors.Register(ModuleName, 12, "insufficient liquidity")
	ErrInsufficientTargetAmount  = errors.Register(ModuleName, 13, "insufficient target amount")
	ErrExcessiveSoldAmount       = errors.Register(ModuleName, 14, "excessive sold amount")
	ErrIncorrectAssetAmountRange = errors.Register(ModuleName, 15, "incorrect asset amount range")
	ErrInsufficientPairReserve   = errors.Register(ModuleName, 16, "insufficient pair reserve")
	ErrInvalidContribution       = errors.Register(ModuleName, 17, "invalid contribution amount")
	ErrZeroContribute            = errors.Register(ModuleName, 18, "no contribution recorded")
	ErrUnqualifiedBootstrap      = errors.Register(ModuleName, 19, "bootstrap has not met its end conditions")
	ErrInvalidAmount             = errors.Register(ModuleName, 20, "invalid amount")

	// arithmetic errors
	ErrOverflow = errors.Register(ModuleName, 30, "arithmetic overflow")

	// path errors
	ErrInvalidPath          = errors.Register(ModuleName, 40, "invalid swap path")
	ErrInvariantCheckFailed = errors.Register(ModuleName, 41, "constant product invariant check failed")

	// consistency errors
	ErrExistRewardsInBootstrap = errors.Register(ModuleName, 50, "bootstrap still holds pending rewards")
	ErrDenyRefund              = errors.Register(ModuleName, 51, "refund denied")
	ErrDisableBootstrap        = errors.Register(ModuleName, 52, "bootstrap is disabled")
	ErrChargeRewardParams      = errors.Register(ModuleName, 53, "charge reward assets do not match bootstrap rewards")
	ErrNoRewardTokens          = errors.Register(ModuleName, 54, "asset is not a bootstrap reward")
	ErrNotQualifiedAccount     = errors.Register(ModuleName, 55, "account does not meet bootstrap limits")

	// input errors
	ErrInvalidAsset   = errors.Register(ModuleName, 60, "invalid asset id")
	ErrInvalidAddress = errors.Register(ModuleName, 61, "invalid address")
	ErrInvalidParams  = errors.Register(ModuleName, 62, "invalid params")
	ErrInvalidGenesis = errors.Register(ModuleName, 63, "invalid genesis state")
)

// ErrorClass groups module errors by what went wrong.
type ErrorClass int

const (
	ClassUnknown ErrorClass = iota
	ClassState
	ClassAmount
	ClassArithmetic
	ClassPath
	ClassConsistency
	ClassInput
)

func (c ErrorClass) String() string {
	switch c {
	case ClassState:
		return "state"
	case ClassAmount:
		return "amount"
	case ClassArithmetic:
		return "arithmetic"
	case ClassPath:
		return "path"
	case ClassConsistency:
		return "consistency"
	case ClassInput:
		return "input"
	default:
		return "unknown"
	}
}

var errorClasses = []struct {
	class ErrorClass
	errs  []error
}{
	{ClassState, []error{ErrPairNotExists, ErrPairAlreadyExists, ErrInvalidStatus, ErrNotInBootstrap, ErrUnauthorized, ErrDeadlineExpired}},
	{ClassAmount, []error{
		ErrZeroLiquidity, ErrInsufficientAssetBalance, ErrInsufficientLiquidity, ErrInsufficientTargetAmount,
		ErrExcessiveSoldAmount, ErrIncorrectAssetAmountRange, ErrInsufficientPairReserve, ErrInvalidContribution,
		ErrZeroContribute, ErrUnqualifiedBootstrap, ErrInvalidAmount,
	}},
	{ClassArithmetic, []error{ErrOverflow}},
	{ClassPath, []error{ErrInvalidPath, ErrInvariantCheckFailed}},
	{ClassConsistency, []error{
		ErrExistRewardsInBootstrap, ErrDenyRefund, ErrDisableBootstrap, ErrChargeRewardParams, ErrNoRewardTokens,
		ErrNotQualifiedAccount,
	}},
	{ClassInput, []error{ErrInvalidAsset, ErrInvalidAddress, ErrInvalidParams, ErrInvalidGenesis}},
}

// ClassOf returns the class of the first module error found in err's chain.
func ClassOf(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}
	for _, c := range errorClasses {
		if errors.IsOf(err, c.errs...) {
			return c.class
		}
	}
	return ClassUnknown
}
