package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgAddLiquidityResponse reports the deposited amounts and minted LP.
type MsgAddLiquidityResponse struct {
	AmountA   math.Int `json:"amount_a"`
	AmountB   math.Int `json:"amount_b"`
	Liquidity math.Int `json:"liquidity"`
}

// MsgRemoveLiquidityResponse reports the withdrawn amounts.
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgSwapResponse reports the amount flowing through each asset of the path.
type MsgSwapResponse struct {
	Amounts []math.Int `json:"amounts"`
}

// MsgBootstrapContributeResponse reports the credited amounts after clamping.
type MsgBootstrapContributeResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgBootstrapEndResponse reports the LP supply minted for contributors.
type MsgBootstrapEndResponse struct {
	TotalLiquidity math.Int `json:"total_liquidity"`
}

// MsgBootstrapClaimResponse reports the claimed LP.
type MsgBootstrapClaimResponse struct {
	Liquidity math.Int `json:"liquidity"`
}

// MsgBootstrapRefundResponse reports the refunded amounts in canonical order.
type MsgBootstrapRefundResponse struct {
	Refund Supply `json:"refund"`
}

// MsgEmptyResponse answers messages that return nothing.
type MsgEmptyResponse struct{}

// MsgServer is the message handler surface of the dex module.
type MsgServer interface {
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	SwapExactAssetsForAssets(context.Context, *MsgSwapExactAssetsForAssets) (*MsgSwapResponse, error)
	SwapAssetsForExactAssets(context.Context, *MsgSwapAssetsForExactAssets) (*MsgSwapResponse, error)
	BootstrapContribute(context.Context, *MsgBootstrapContribute) (*MsgBootstrapContributeResponse, error)
	BootstrapEnd(context.Context, *MsgBootstrapEnd) (*MsgBootstrapEndResponse, error)
	BootstrapClaim(context.Context, *MsgBootstrapClaim) (*MsgBootstrapClaimResponse, error)
	BootstrapRefund(context.Context, *MsgBootstrapRefund) (*MsgBootstrapRefundResponse, error)
	BootstrapChargeReward(context.Context, *MsgBootstrapChargeReward) (*MsgEmptyResponse, error)
	CreatePair(context.Context, *MsgCreatePair) (*MsgEmptyResponse, error)
	BootstrapCreate(context.Context, *MsgBootstrapCreate) (*MsgEmptyResponse, error)
	BootstrapUpdate(context.Context, *MsgBootstrapUpdate) (*MsgEmptyResponse, error)
	BootstrapWithdrawReward(context.Context, *MsgBootstrapWithdrawReward) (*MsgEmptyResponse, error)
	SetFeeReceiver(context.Context, *MsgSetFeeReceiver) (*MsgEmptyResponse, error)
	SetFeePoint(context.Context, *MsgSetFeePoint) (*MsgEmptyResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgEmptyResponse, error)
}
