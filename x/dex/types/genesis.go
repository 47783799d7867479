package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Pair status kinds used by the store and genesis encodings.
const (
	StatusKindDisabled  uint32 = 0
	StatusKindBootstrap uint32 = 1
	StatusKindTrading   uint32 = 2
)

// PairStatusRecord is the serializable form of a PairStatus.
type PairStatusRecord struct {
	Pair      Pair                `json:"pair"`
	Kind      uint32              `json:"kind"`
	Bootstrap *BootstrapParameter `json:"bootstrap,omitempty"`
	Trading   *PairMetadata       `json:"trading,omitempty"`
}

// NewPairStatusRecord flattens a status for encoding.
func NewPairStatusRecord(pair Pair, status PairStatus) PairStatusRecord {
	rec := PairStatusRecord{Pair: pair}
	switch s := status.(type) {
	case Bootstrap:
		param := s.Parameter
		rec.Kind = StatusKindBootstrap
		rec.Bootstrap = &param
	case Trading:
		meta := s.Metadata
		rec.Kind = StatusKindTrading
		rec.Trading = &meta
	default:
		rec.Kind = StatusKindDisabled
	}
	return rec
}

// Status rebuilds the PairStatus held by the record.
func (r PairStatusRecord) Status() (PairStatus, error) {
	switch r.Kind {
	case StatusKindDisabled:
		return Disabled{}, nil
	case StatusKindBootstrap:
		if r.Bootstrap == nil {
			return nil, ErrInvalidGenesis.Wrapf("pair %s: bootstrap record without parameters", r.Pair)
		}
		return Bootstrap{Parameter: *r.Bootstrap}, nil
	case StatusKindTrading:
		if r.Trading == nil {
			return nil, ErrInvalidGenesis.Wrapf("pair %s: trading record without metadata", r.Pair)
		}
		return Trading{Metadata: *r.Trading}, nil
	default:
		return nil, ErrInvalidGenesis.Wrapf("pair %s: unknown status kind %d", r.Pair, r.Kind)
	}
}

// ContributionRecord is a contributor's pledge to a bootstrap.
type ContributionRecord struct {
	Pair        Pair   `json:"pair"`
	Contributor string `json:"contributor"`
	Supply      Supply `json:"supply"`
}

// AssetAmountsRecord carries a per-pair reward or limit map.
type AssetAmountsRecord struct {
	Pair    Pair         `json:"pair"`
	Entries AssetAmounts `json:"entries"`
}

// KLastRecord carries the last recorded reserve product of a pair.
type KLastRecord struct {
	Pair  Pair   `json:"pair"`
	KLast string `json:"k_last"`
}

// GenesisState defines the dex module's genesis state.
type GenesisState struct {
	Params               Params               `json:"params"`
	FeeMeta              FeeMeta              `json:"fee_meta"`
	PairStatuses         []PairStatusRecord   `json:"pair_statuses"`
	BootstrapEndStatuses []PairStatusRecord   `json:"bootstrap_end_statuses"`
	Contributions        []ContributionRecord `json:"contributions"`
	BootstrapRewards     []AssetAmountsRecord `json:"bootstrap_rewards"`
	BootstrapLimits      []AssetAmountsRecord `json:"bootstrap_limits"`
	KLasts               []KLastRecord        `json:"k_lasts"`
}

// DefaultGenesis returns the default genesis state for the DEX module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:               DefaultParams(),
		PairStatuses:         []PairStatusRecord{},
		BootstrapEndStatuses: []PairStatusRecord{},
		Contributions:        []ContributionRecord{},
		BootstrapRewards:     []AssetAmountsRecord{},
		BootstrapLimits:      []AssetAmountsRecord{},
		KLasts:               []KLastRecord{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.FeeMeta.FeePoint > MaxFeePoint {
		return ErrInvalidGenesis.Wrapf("fee point %d above %d", gs.FeeMeta.FeePoint, MaxFeePoint)
	}

	seen := make(map[Pair]bool, len(gs.PairStatuses))
	for _, rec := range gs.PairStatuses {
		if err := rec.Pair.Validate(); err != nil {
			return err
		}
		if seen[rec.Pair] {
			return ErrInvalidGenesis.Wrapf("duplicate pair status for %s", rec.Pair)
		}
		seen[rec.Pair] = true

		status, err := rec.Status()
		if err != nil {
			return err
		}
		if b, ok := status.(Bootstrap); ok {
			if err := b.Parameter.Validate(); err != nil {
				return fmt.Errorf("pair %s: %w", rec.Pair, err)
			}
		}
	}

	for _, rec := range gs.BootstrapEndStatuses {
		if err := rec.Pair.Validate(); err != nil {
			return err
		}
		if rec.Kind != StatusKindBootstrap || rec.Bootstrap == nil {
			return ErrInvalidGenesis.Wrapf("end status for %s must hold bootstrap parameters", rec.Pair)
		}
	}

	for _, c := range gs.Contributions {
		if err := c.Pair.Validate(); err != nil {
			return err
		}
		if _, err := sdk.AccAddressFromBech32(c.Contributor); err != nil {
			return ErrInvalidAddress.Wrapf("contributor %s: %v", c.Contributor, err)
		}
		if c.Supply.Amount0.IsNil() || c.Supply.Amount1.IsNil() ||
			c.Supply.Amount0.IsNegative() || c.Supply.Amount1.IsNegative() {
			return ErrInvalidGenesis.Wrapf("contribution of %s to %s has invalid amounts", c.Contributor, c.Pair)
		}
	}

	for _, recs := range [][]AssetAmountsRecord{gs.BootstrapRewards, gs.BootstrapLimits} {
		for _, r := range recs {
			if err := r.Pair.Validate(); err != nil {
				return err
			}
			if _, err := NewAssetAmounts(r.Entries...); err != nil {
				return fmt.Errorf("pair %s: %w", r.Pair, err)
			}
		}
	}

	for _, r := range gs.KLasts {
		if err := r.Pair.Validate(); err != nil {
			return err
		}
	}
	return nil
}
