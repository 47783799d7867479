package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgAddLiquidity             = "add_liquidity"
	TypeMsgRemoveLiquidity          = "remove_liquidity"
	TypeMsgSwapExactAssetsForAssets = "swap_exact_assets_for_assets"
	TypeMsgSwapAssetsForExactAssets = "swap_assets_for_exact_assets"
)

func validateAddress(field, addr string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid %s address: %s", field, err)
	}
	return nil
}

func validatePositive(field string, amt math.Int) error {
	if amt.IsNil() || !amt.IsPositive() {
		return sdkerrors.Wrapf(ErrInvalidAmount, "%s must be positive", field)
	}
	return nil
}

func validateNonNegative(field string, amt math.Int) error {
	if amt.IsNil() || amt.IsNegative() {
		return sdkerrors.Wrapf(ErrInvalidAmount, "%s cannot be negative", field)
	}
	return nil
}

func validatePairAssets(assetA, assetB string) error {
	_, err := NewPair(assetA, assetB)
	return err
}

func signers(addr string) []sdk.AccAddress {
	acc, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{acc}
}

// MsgAddLiquidity deposits both assets of a trading pair for LP shares.
type MsgAddLiquidity struct {
	Sender         string   `json:"sender"`
	AssetA         string   `json:"asset_a"`
	AssetB         string   `json:"asset_b"`
	AmountADesired math.Int `json:"amount_a_desired"`
	AmountBDesired math.Int `json:"amount_b_desired"`
	AmountAMin     math.Int `json:"amount_a_min"`
	AmountBMin     math.Int `json:"amount_b_min"`
	Deadline       int64    `json:"deadline"`
}

// Route returns the message route
func (msg MsgAddLiquidity) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgAddLiquidity) Type() string { return TypeMsgAddLiquidity }

// GetSigners returns the sender
func (msg MsgAddLiquidity) GetSigners() []sdk.AccAddress { return signers(msg.Sender) }

// ValidateBasic performs stateless checks
func (msg MsgAddLiquidity) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if err := validatePairAssets(msg.AssetA, msg.AssetB); err != nil {
		return err
	}
	if err := validatePositive("amount a desired", msg.AmountADesired); err != nil {
		return err
	}
	if err := validatePositive("amount b desired", msg.AmountBDesired); err != nil {
		return err
	}
	if err := validateNonNegative("amount a min", msg.AmountAMin); err != nil {
		return err
	}
	if err := validateNonNegative("amount b min", msg.AmountBMin); err != nil {
		return err
	}
	if msg.AmountAMin.GT(msg.AmountADesired) || msg.AmountBMin.GT(msg.AmountBDesired) {
		return sdkerrors.Wrap(ErrIncorrectAssetAmountRange, "minimum exceeds desired amount")
	}
	return nil
}

// MsgRemoveLiquidity burns LP shares for the underlying assets.
type MsgRemoveLiquidity struct {
	Sender     string   `json:"sender"`
	AssetA     string   `json:"asset_a"`
	AssetB     string   `json:"asset_b"`
	Liquidity  math.Int `json:"liquidity"`
	AmountAMin math.Int `json:"amount_a_min"`
	AmountBMin math.Int `json:"amount_b_min"`
	Recipient  string   `json:"recipient"`
	Deadline   int64    `json:"deadline"`
}

// Route returns the message route
func (msg MsgRemoveLiquidity) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgRemoveLiquidity) Type() string { return TypeMsgRemoveLiquidity }

// GetSigners returns the sender
func (msg MsgRemoveLiquidity) GetSigners() []sdk.AccAddress { return signers(msg.Sender) }

// ValidateBasic performs stateless checks
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if err := validateAddress("recipient", msg.Recipient); err != nil {
		return err
	}
	if err := validatePairAssets(msg.AssetA, msg.AssetB); err != nil {
		return err
	}
	if err := validatePositive("liquidity", msg.Liquidity); err != nil {
		return err
	}
	if err := validateNonNegative("amount a min", msg.AmountAMin); err != nil {
		return err
	}
	return validateNonNegative("amount b min", msg.AmountBMin)
}

// ValidatePath checks the shape of a swap path against the configured bound.
func ValidatePath(path []string, maxLen uint32) error {
	if len(path) < MinPathLength || uint32(len(path)) > maxLen {
		return sdkerrors.Wrapf(ErrInvalidPath, "path length %d outside [%d, %d]", len(path), MinPathLength, maxLen)
	}
	for i, asset := range path {
		if err := ValidateAsset(asset); err != nil {
			return err
		}
		if i > 0 && path[i-1] == asset {
			return sdkerrors.Wrapf(ErrInvalidPath, "adjacent hop repeats asset %s", asset)
		}
	}
	return nil
}

// MsgSwapExactAssetsForAssets sells an exact input along a path.
type MsgSwapExactAssetsForAssets struct {
	Sender       string   `json:"sender"`
	AmountIn     math.Int `json:"amount_in"`
	AmountOutMin math.Int `json:"amount_out_min"`
	Path         []string `json:"path"`
	Recipient    string   `json:"recipient"`
	Deadline     int64    `json:"deadline"`
}

// Route returns the message route
func (msg MsgSwapExactAssetsForAssets) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgSwapExactAssetsForAssets) Type() string { return TypeMsgSwapExactAssetsForAssets }

// GetSigners returns the sender
func (msg MsgSwapExactAssetsForAssets) GetSigners() []sdk.AccAddress { return signers(msg.Sender) }

// ValidateBasic performs stateless checks
func (msg MsgSwapExactAssetsForAssets) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if err := validateAddress("recipient", msg.Recipient); err != nil {
		return err
	}
	if err := validatePositive("amount in", msg.AmountIn); err != nil {
		return err
	}
	if err := validateNonNegative("amount out min", msg.AmountOutMin); err != nil {
		return err
	}
	return ValidatePath(msg.Path, ^uint32(0))
}

// MsgSwapAssetsForExactAssets buys an exact output along a path.
type MsgSwapAssetsForExactAssets struct {
	Sender      string   `json:"sender"`
	AmountOut   math.Int `json:"amount_out"`
	AmountInMax math.Int `json:"amount_in_max"`
	Path        []string `json:"path"`
	Recipient   string   `json:"recipient"`
	Deadline    int64    `json:"deadline"`
}

// Route returns the message route
func (msg MsgSwapAssetsForExactAssets) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgSwapAssetsForExactAssets) Type() string { return TypeMsgSwapAssetsForExactAssets }

// GetSigners returns the sender
func (msg MsgSwapAssetsForExactAssets) GetSigners() []sdk.AccAddress { return signers(msg.Sender) }

// ValidateBasic performs stateless checks
func (msg MsgSwapAssetsForExactAssets) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if err := validateAddress("recipient", msg.Recipient); err != nil {
		return err
	}
	if err := validatePositive("amount out", msg.AmountOut); err != nil {
		return err
	}
	if err := validatePositive("amount in max", msg.AmountInMax); err != nil {
		return err
	}
	return ValidatePath(msg.Path, ^uint32(0))
}
