package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Bootstrap message types
const (
	TypeMsgBootstrapContribute   = "bootstrap_contribute"
	TypeMsgBootstrapEnd          = "bootstrap_end"
	TypeMsgBootstrapClaim        = "bootstrap_claim"
	TypeMsgBootstrapRefund       = "bootstrap_refund"
	TypeMsgBootstrapChargeReward = "bootstrap_charge_reward"
)

// MsgBootstrapContribute pledges assets to a pair in bootstrap.
type MsgBootstrapContribute struct {
	Sender   string   `json:"sender"`
	AssetA   string   `json:"asset_a"`
	AssetB   string   `json:"asset_b"`
	AmountA  math.Int `json:"amount_a"`
	AmountB  math.Int `json:"amount_b"`
	Deadline int64    `json:"deadline"`
}

// Route returns the message route
func (msg MsgBootstrapContribute) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgBootstrapContribute) Type() string { return TypeMsgBootstrapContribute }

// GetSigners returns the sender
func (msg MsgBootstrapContribute) GetSigners() []sdk.AccAddress { return signers(msg.Sender) }

// ValidateBasic performs stateless checks
func (msg MsgBootstrapContribute) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if err := validatePairAssets(msg.AssetA, msg.AssetB); err != nil {
		return err
	}
	if err := validateNonNegative("amount a", msg.AmountA); err != nil {
		return err
	}
	if err := validateNonNegative("amount b", msg.AmountB); err != nil {
		return err
	}
	if msg.AmountA.IsZero() && msg.AmountB.IsZero() {
		return sdkerrors.Wrap(ErrInvalidContribution, "contribution cannot be zero on both sides")
	}
	return nil
}

// MsgBootstrapEnd converts a qualified bootstrap into a trading pair.
type MsgBootstrapEnd struct {
	Sender string `json:"sender"`
	AssetA string `json:"asset_a"`
	AssetB string `json:"asset_b"`
}

// Route returns the message route
func (msg MsgBootstrapEnd) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgBootstrapEnd) Type() string { return TypeMsgBootstrapEnd }

// GetSigners returns the sender
func (msg MsgBootstrapEnd) GetSigners() []sdk.AccAddress { return signers(msg.Sender) }

// ValidateBasic performs stateless checks
func (msg MsgBootstrapEnd) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	return validatePairAssets(msg.AssetA, msg.AssetB)
}

// MsgBootstrapClaim pays out a contributor's LP shares and rewards.
type MsgBootstrapClaim struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	AssetA    string `json:"asset_a"`
	AssetB    string `json:"asset_b"`
	Deadline  int64  `json:"deadline"`
}

// Route returns the message route
func (msg MsgBootstrapClaim) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgBootstrapClaim) Type() string { return TypeMsgBootstrapClaim }

// GetSigners returns the sender
func (msg MsgBootstrapClaim) GetSigners() []sdk.AccAddress { return signers(msg.Sender) }

// ValidateBasic performs stateless checks
func (msg MsgBootstrapClaim) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if err := validateAddress("recipient", msg.Recipient); err != nil {
		return err
	}
	return validatePairAssets(msg.AssetA, msg.AssetB)
}

// MsgBootstrapRefund returns the contribution to a failed bootstrap.
type MsgBootstrapRefund struct {
	Sender string `json:"sender"`
	AssetA string `json:"asset_a"`
	AssetB string `json:"asset_b"`
}

// Route returns the message route
func (msg MsgBootstrapRefund) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgBootstrapRefund) Type() string { return TypeMsgBootstrapRefund }

// GetSigners returns the sender
func (msg MsgBootstrapRefund) GetSigners() []sdk.AccAddress { return signers(msg.Sender) }

// ValidateBasic performs stateless checks
func (msg MsgBootstrapRefund) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	return validatePairAssets(msg.AssetA, msg.AssetB)
}

// MsgBootstrapChargeReward funds the reward pool of a bootstrap.
type MsgBootstrapChargeReward struct {
	Sender  string        `json:"sender"`
	AssetA  string        `json:"asset_a"`
	AssetB  string        `json:"asset_b"`
	Rewards []AssetAmount `json:"rewards"`
}

// Route returns the message route
func (msg MsgBootstrapChargeReward) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgBootstrapChargeReward) Type() string { return TypeMsgBootstrapChargeReward }

// GetSigners returns the sender
func (msg MsgBootstrapChargeReward) GetSigners() []sdk.AccAddress { return signers(msg.Sender) }

// ValidateBasic performs stateless checks
func (msg MsgBootstrapChargeReward) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if err := validatePairAssets(msg.AssetA, msg.AssetB); err != nil {
		return err
	}
	if len(msg.Rewards) == 0 {
		return sdkerrors.Wrap(ErrChargeRewardParams, "rewards cannot be empty")
	}
	_, err := NewAssetAmounts(msg.Rewards...)
	return err
}
