package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Admin message types
const (
	TypeMsgCreatePair              = "create_pair"
	TypeMsgBootstrapCreate         = "bootstrap_create"
	TypeMsgBootstrapUpdate         = "bootstrap_update"
	TypeMsgBootstrapWithdrawReward = "bootstrap_withdraw_reward"
	TypeMsgSetFeeReceiver          = "set_fee_receiver"
	TypeMsgSetFeePoint             = "set_fee_point"
	TypeMsgUpdateParams            = "update_params"
)

// MsgCreatePair opens a pair for trading with empty reserves.
type MsgCreatePair struct {
	Authority string `json:"authority"`
	AssetA    string `json:"asset_a"`
	AssetB    string `json:"asset_b"`
}

// Route returns the message route
func (msg MsgCreatePair) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgCreatePair) Type() string { return TypeMsgCreatePair }

// GetSigners returns the authority
func (msg MsgCreatePair) GetSigners() []sdk.AccAddress { return signers(msg.Authority) }

// ValidateBasic performs stateless checks
func (msg MsgCreatePair) ValidateBasic() error {
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	return validatePairAssets(msg.AssetA, msg.AssetB)
}

// BootstrapConfig is the admin-supplied configuration of a bootstrap round,
// with amounts in caller order.
type BootstrapConfig struct {
	AssetA       string        `json:"asset_a"`
	AssetB       string        `json:"asset_b"`
	TargetA      math.Int      `json:"target_a"`
	TargetB      math.Int      `json:"target_b"`
	CapacityA    math.Int      `json:"capacity_a"`
	CapacityB    math.Int      `json:"capacity_b"`
	EndBlock     int64         `json:"end_block"`
	RewardAssets []string      `json:"reward_assets"`
	Limits       []AssetAmount `json:"limits"`
}

// Validate performs stateless checks of the configuration.
func (c BootstrapConfig) Validate() error {
	if err := validatePairAssets(c.AssetA, c.AssetB); err != nil {
		return err
	}
	for field, amt := range map[string]math.Int{
		"target a": c.TargetA, "target b": c.TargetB, "capacity a": c.CapacityA, "capacity b": c.CapacityB,
	} {
		if err := validateNonNegative(field, amt); err != nil {
			return err
		}
	}
	if c.CapacityA.LT(c.TargetA) || c.CapacityB.LT(c.TargetB) {
		return sdkerrors.Wrap(ErrInvalidAmount, "capacity below target")
	}
	if c.EndBlock <= 0 {
		return sdkerrors.Wrap(ErrInvalidAmount, "end block must be positive")
	}
	if _, err := ZeroRewards(c.RewardAssets); err != nil {
		return err
	}
	_, err := NewAssetAmounts(c.Limits...)
	return err
}

// MsgBootstrapCreate installs a bootstrap on a pair.
type MsgBootstrapCreate struct {
	Authority string          `json:"authority"`
	Config    BootstrapConfig `json:"config"`
}

// Route returns the message route
func (msg MsgBootstrapCreate) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgBootstrapCreate) Type() string { return TypeMsgBootstrapCreate }

// GetSigners returns the authority
func (msg MsgBootstrapCreate) GetSigners() []sdk.AccAddress { return signers(msg.Authority) }

// ValidateBasic performs stateless checks
func (msg MsgBootstrapCreate) ValidateBasic() error {
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	return msg.Config.Validate()
}

// MsgBootstrapUpdate reconfigures a pair already in bootstrap.
type MsgBootstrapUpdate struct {
	Authority string          `json:"authority"`
	Config    BootstrapConfig `json:"config"`
}

// Route returns the message route
func (msg MsgBootstrapUpdate) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgBootstrapUpdate) Type() string { return TypeMsgBootstrapUpdate }

// GetSigners returns the authority
func (msg MsgBootstrapUpdate) GetSigners() []sdk.AccAddress { return signers(msg.Authority) }

// ValidateBasic performs stateless checks
func (msg MsgBootstrapUpdate) ValidateBasic() error {
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	return msg.Config.Validate()
}

// MsgBootstrapWithdrawReward returns undistributed rewards of a pair.
type MsgBootstrapWithdrawReward struct {
	Authority string `json:"authority"`
	AssetA    string `json:"asset_a"`
	AssetB    string `json:"asset_b"`
	Recipient string `json:"recipient"`
}

// Route returns the message route
func (msg MsgBootstrapWithdrawReward) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgBootstrapWithdrawReward) Type() string { return TypeMsgBootstrapWithdrawReward }

// GetSigners returns the authority
func (msg MsgBootstrapWithdrawReward) GetSigners() []sdk.AccAddress { return signers(msg.Authority) }

// ValidateBasic performs stateless checks
func (msg MsgBootstrapWithdrawReward) ValidateBasic() error {
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	if err := validateAddress("recipient", msg.Recipient); err != nil {
		return err
	}
	return validatePairAssets(msg.AssetA, msg.AssetB)
}

// MsgSetFeeReceiver sets or clears the protocol fee receiver.
type MsgSetFeeReceiver struct {
	Authority string `json:"authority"`
	Receiver  string `json:"receiver,omitempty"`
}

// Route returns the message route
func (msg MsgSetFeeReceiver) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgSetFeeReceiver) Type() string { return TypeMsgSetFeeReceiver }

// GetSigners returns the authority
func (msg MsgSetFeeReceiver) GetSigners() []sdk.AccAddress { return signers(msg.Authority) }

// ValidateBasic performs stateless checks. An empty receiver switches the fee off.
func (msg MsgSetFeeReceiver) ValidateBasic() error {
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	if msg.Receiver == "" {
		return nil
	}
	return validateAddress("receiver", msg.Receiver)
}

// MsgSetFeePoint sets the protocol share of the swap fee.
type MsgSetFeePoint struct {
	Authority string `json:"authority"`
	FeePoint  uint32 `json:"fee_point"`
}

// Route returns the message route
func (msg MsgSetFeePoint) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgSetFeePoint) Type() string { return TypeMsgSetFeePoint }

// GetSigners returns the authority
func (msg MsgSetFeePoint) GetSigners() []sdk.AccAddress { return signers(msg.Authority) }

// ValidateBasic performs stateless checks
func (msg MsgSetFeePoint) ValidateBasic() error {
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	if msg.FeePoint > MaxFeePoint {
		return sdkerrors.Wrapf(ErrInvalidParams, "fee point %d above %d", msg.FeePoint, MaxFeePoint)
	}
	return nil
}

// MsgUpdateParams replaces the module parameters.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// Route returns the message route
func (msg MsgUpdateParams) Route() string { return RouterKey }

// Type returns the message type
func (msg MsgUpdateParams) Type() string { return TypeMsgUpdateParams }

// GetSigners returns the authority
func (msg MsgUpdateParams) GetSigners() []sdk.AccAddress { return signers(msg.Authority) }

// ValidateBasic performs stateless checks
func (msg MsgUpdateParams) ValidateBasic() error {
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	return msg.Params.Validate()
}
