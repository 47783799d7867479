package types

import (
	"fmt"
)

const (
	// DefaultNativeDenom is the chain's fee asset; swaps paying with it are
	// charged the origin fee.
	DefaultNativeDenom = "upaw"

	// DefaultMaxPathLength bounds the number of assets in a swap path.
	DefaultMaxPathLength uint32 = 6

	// MinPathLength is the shortest valid path: a single hop.
	MinPathLength = 2

	// MaxFeePoint is the denominator of the protocol fee switch; a fee point
	// of N routes N/30 of the trading fee growth to the fee receiver.
	MaxFeePoint uint32 = 30
)

// Params defines the dex module parameters
type Params struct {
	NativeDenom   string `json:"native_denom"`
	MaxPathLength uint32 `json:"max_path_length"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		NativeDenom:   DefaultNativeDenom,
		MaxPathLength: DefaultMaxPathLength,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if err := ValidateAsset(p.NativeDenom); err != nil {
		return fmt.Errorf("native denom: %w", err)
	}
	if p.MaxPathLength < MinPathLength {
		return ErrInvalidParams.Wrapf("max path length %d below %d", p.MaxPathLength, MinPathLength)
	}
	return nil
}
