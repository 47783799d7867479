package types

import (
	"encoding/hex"
	"fmt"
	"sort"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// Pair is the canonical identity of a trading pair: Asset0 < Asset1.
type Pair struct {
	Asset0 string `json:"asset_0"`
	Asset1 string `json:"asset_1"`
}

// NewPair validates two asset ids and orders them canonically.
func NewPair(assetA, assetB string) (Pair, error) {
	if err := ValidateAsset(assetA); err != nil {
		return Pair{}, err
	}
	if err := ValidateAsset(assetB); err != nil {
		return Pair{}, err
	}
	if assetA == assetB {
		return Pair{}, ErrInvalidAsset.Wrapf("pair needs two distinct assets, got %s twice", assetA)
	}
	if assetA > assetB {
		assetA, assetB = assetB, assetA
	}
	return Pair{Asset0: assetA, Asset1: assetB}, nil
}

// ValidateAsset checks that an asset id is a well-formed denom.
func ValidateAsset(asset string) error {
	if err := sdk.ValidateDenom(asset); err != nil {
		return ErrInvalidAsset.Wrapf("%s: %v", asset, err)
	}
	return nil
}

// Validate re-checks a pair decoded from outside (genesis, store).
func (p Pair) Validate() error {
	canonical, err := NewPair(p.Asset0, p.Asset1)
	if err != nil {
		return err
	}
	if canonical != p {
		return ErrInvalidAsset.Wrapf("pair %s is not in canonical order", p)
	}
	return nil
}

func (p Pair) String() string {
	return p.Asset0 + "/" + p.Asset1
}

// Bytes returns the length-prefixed store encoding of the pair.
func (p Pair) Bytes() []byte {
	bz := address.MustLengthPrefix([]byte(p.Asset0))
	return append(bz, address.MustLengthPrefix([]byte(p.Asset1))...)
}

// Orient maps caller-ordered amounts for (assetA, assetB) onto (Asset0, Asset1).
// The mapping is its own inverse.
func (p Pair) Orient(assetA string, amountA, amountB math.Int) (math.Int, math.Int) {
	if assetA == p.Asset0 {
		return amountA, amountB
	}
	return amountB, amountA
}

// ReserveAccount is the account holding the pair's live trading reserves.
func (p Pair) ReserveAccount() sdk.AccAddress {
	return address.Module(ModuleName, p.Bytes())
}

// LPDenom is the denom of the pair's LP share.
func (p Pair) LPDenom() string {
	return fmt.Sprintf("%s/%s", LPDenomPrefix, hex.EncodeToString(address.Module(ModuleName, []byte(LPDenomPrefix), p.Bytes())))
}

// EscrowAccount holds bootstrap contributions and pledged bootstrap rewards.
func EscrowAccount() sdk.AccAddress {
	return address.Module(ModuleName)
}

// PotAccount collects the origin fee charged on swaps paid in the native asset.
func PotAccount() sdk.AccAddress {
	return address.Module(ModuleName, []byte(PotAccountName))
}

// Supply is an amount per side of a pair, in canonical order.
type Supply struct {
	Amount0 math.Int `json:"amount_0"`
	Amount1 math.Int `json:"amount_1"`
}

// NewSupply builds a Supply from its two sides.
func NewSupply(amount0, amount1 math.Int) Supply {
	return Supply{Amount0: amount0, Amount1: amount1}
}

// ZeroSupply returns a Supply with both sides set to zero.
func ZeroSupply() Supply {
	return NewSupply(math.ZeroInt(), math.ZeroInt())
}

// IsZero reports whether both sides are zero.
func (s Supply) IsZero() bool {
	return s.Amount0.IsZero() && s.Amount1.IsZero()
}

func (s Supply) String() string {
	return fmt.Sprintf("(%s,%s)", s.Amount0, s.Amount1)
}

// PairStatus is the lifecycle state of a pair. It is implemented only by
// Disabled, Bootstrap and Trading.
type PairStatus interface {
	isPairStatus()
	String() string
}

// Disabled is the initial status of every pair.
type Disabled struct{}

// Bootstrap marks a pair that is collecting contributions.
type Bootstrap struct {
	Parameter BootstrapParameter `json:"parameter"`
}

// Trading marks a pair with live reserves.
type Trading struct {
	Metadata PairMetadata `json:"metadata"`
}

func (Disabled) isPairStatus()  {}
func (Bootstrap) isPairStatus() {}
func (Trading) isPairStatus()   {}

func (Disabled) String() string  { return "disabled" }
func (Bootstrap) String() string { return "bootstrap" }
func (Trading) String() string   { return "trading" }

// BootstrapParameter configures and tracks a bootstrap round.
type BootstrapParameter struct {
	TargetSupply      Supply         `json:"target_supply"`
	CapacitySupply    Supply         `json:"capacity_supply"`
	AccumulatedSupply Supply         `json:"accumulated_supply"`
	EndBlock          int64          `json:"end_block"`
	EscrowAccount     sdk.AccAddress `json:"escrow_account"`
}

// Disabled reports whether the bootstrap expired below target at height now.
// It is evaluated on demand and never persisted.
func (p BootstrapParameter) Disabled(now int64) bool {
	return now > p.EndBlock &&
		(p.AccumulatedSupply.Amount0.LT(p.TargetSupply.Amount0) ||
			p.AccumulatedSupply.Amount1.LT(p.TargetSupply.Amount1))
}

// Qualified reports whether the bootstrap may end at height now.
func (p BootstrapParameter) Qualified(now int64) bool {
	return now >= p.EndBlock &&
		p.AccumulatedSupply.Amount0.GTE(p.TargetSupply.Amount0) &&
		p.AccumulatedSupply.Amount1.GTE(p.TargetSupply.Amount1)
}

// Validate checks the configured bounds of a bootstrap.
func (p BootstrapParameter) Validate() error {
	for _, amt := range []math.Int{
		p.TargetSupply.Amount0, p.TargetSupply.Amount1,
		p.CapacitySupply.Amount0, p.CapacitySupply.Amount1,
		p.AccumulatedSupply.Amount0, p.AccumulatedSupply.Amount1,
	} {
		if amt.IsNil() || amt.IsNegative() {
			return ErrInvalidAmount.Wrap("bootstrap supplies must be non-negative")
		}
	}
	if p.CapacitySupply.Amount0.LT(p.TargetSupply.Amount0) || p.CapacitySupply.Amount1.LT(p.TargetSupply.Amount1) {
		return ErrInvalidAmount.Wrapf("capacity %s below target %s", p.CapacitySupply, p.TargetSupply)
	}
	if p.AccumulatedSupply.Amount0.GT(p.CapacitySupply.Amount0) || p.AccumulatedSupply.Amount1.GT(p.CapacitySupply.Amount1) {
		return ErrInvalidAmount.Wrapf("accumulated %s above capacity %s", p.AccumulatedSupply, p.CapacitySupply)
	}
	if p.EndBlock <= 0 {
		return ErrInvalidAmount.Wrap("bootstrap end block must be positive")
	}
	return nil
}

// PairMetadata describes a trading pair.
type PairMetadata struct {
	ReserveAccount sdk.AccAddress `json:"reserve_account"`
	TotalSupply    math.Int       `json:"total_supply"`
}

// AssetAmount is one entry of a per-pair asset map (rewards, limits).
type AssetAmount struct {
	Asset  string   `json:"asset"`
	Amount math.Int `json:"amount"`
}

// AssetAmounts is kept sorted by asset with unique entries.
type AssetAmounts []AssetAmount

// NewAssetAmounts sorts entries by asset and rejects duplicates.
func NewAssetAmounts(entries ...AssetAmount) (AssetAmounts, error) {
	out := make(AssetAmounts, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	for i, e := range out {
		if err := ValidateAsset(e.Asset); err != nil {
			return nil, err
		}
		if e.Amount.IsNil() || e.Amount.IsNegative() {
			return nil, ErrInvalidAmount.Wrapf("amount for %s must be non-negative", e.Asset)
		}
		if i > 0 && out[i-1].Asset == e.Asset {
			return nil, ErrInvalidAsset.Wrapf("duplicate asset %s", e.Asset)
		}
	}
	return out, nil
}

// ZeroRewards builds a reward map with every listed asset at zero.
func ZeroRewards(assets []string) (AssetAmounts, error) {
	entries := make([]AssetAmount, 0, len(assets))
	for _, asset := range assets {
		entries = append(entries, AssetAmount{Asset: asset, Amount: math.ZeroInt()})
	}
	return NewAssetAmounts(entries...)
}

// Get returns the amount recorded for asset.
func (a AssetAmounts) Get(asset string) (math.Int, bool) {
	i := sort.Search(len(a), func(i int) bool { return a[i].Asset >= asset })
	if i < len(a) && a[i].Asset == asset {
		return a[i].Amount, true
	}
	return math.Int{}, false
}

// AllZero reports whether every recorded amount is zero.
func (a AssetAmounts) AllZero() bool {
	for _, e := range a {
		if !e.Amount.IsZero() {
			return false
		}
	}
	return true
}

// FeeMeta configures protocol fee collection.
type FeeMeta struct {
	FeeReceiver sdk.AccAddress `json:"fee_receiver,omitempty"`
	FeePoint    uint32         `json:"fee_point"`
}

// Enabled reports whether fee-on-mint is switched on.
func (f FeeMeta) Enabled() bool {
	return len(f.FeeReceiver) > 0 && f.FeePoint > 0
}
