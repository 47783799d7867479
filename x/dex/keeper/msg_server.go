package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the dex MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// reject records a failed message and wraps err with the handler name.
func reject(ctx sdk.Context, op string, err error) error {
	emitRejection(ctx, op, err)
	return fmt.Errorf("%s: %w", op, err)
}

// checkDeadline fails once the chain has reached the deadline block.
func checkDeadline(ctx sdk.Context, deadline int64) error {
	if ctx.BlockHeight() >= deadline {
		return types.ErrDeadlineExpired.Wrapf("deadline %d reached at block %d", deadline, ctx.BlockHeight())
	}
	return nil
}

type basicValidator interface {
	ValidateBasic() error
}

// precheck runs stateless validation and, when deadline is set, the deadline check.
func precheck(ctx sdk.Context, msg basicValidator, deadline *int64) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	if deadline != nil {
		return checkDeadline(ctx, *deadline)
	}
	return nil
}

// AddLiquidity handles deposits into a trading pair
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, &msg.Deadline); err != nil {
		return nil, reject(ctx, "AddLiquidity", err)
	}
	sender := sdk.MustAccAddressFromBech32(msg.Sender)

	amountA, amountB, liquidity, err := ms.Keeper.AddLiquidity(
		goCtx, sender, msg.AssetA, msg.AssetB,
		msg.AmountADesired, msg.AmountBDesired, msg.AmountAMin, msg.AmountBMin,
	)
	if err != nil {
		return nil, reject(ctx, "AddLiquidity", err)
	}

	return &types.MsgAddLiquidityResponse{
		AmountA:   amountA,
		AmountB:   amountB,
		Liquidity: liquidity,
	}, nil
}

// RemoveLiquidity handles LP burns
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, &msg.Deadline); err != nil {
		return nil, reject(ctx, "RemoveLiquidity", err)
	}
	sender := sdk.MustAccAddressFromBech32(msg.Sender)
	recipient := sdk.MustAccAddressFromBech32(msg.Recipient)

	amountA, amountB, err := ms.Keeper.RemoveLiquidity(
		goCtx, sender, msg.AssetA, msg.AssetB, msg.Liquidity, msg.AmountAMin, msg.AmountBMin, recipient,
	)
	if err != nil {
		return nil, reject(ctx, "RemoveLiquidity", err)
	}

	return &types.MsgRemoveLiquidityResponse{
		AmountA: amountA,
		AmountB: amountB,
	}, nil
}

// SwapExactAssetsForAssets handles exact-input path swaps
func (ms msgServer) SwapExactAssetsForAssets(goCtx context.Context, msg *types.MsgSwapExactAssetsForAssets) (*types.MsgSwapResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, &msg.Deadline); err != nil {
		return nil, reject(ctx, "SwapExactAssetsForAssets", err)
	}
	sender := sdk.MustAccAddressFromBech32(msg.Sender)
	recipient := sdk.MustAccAddressFromBech32(msg.Recipient)

	amounts, err := ms.Keeper.SwapExactAssetsForAssets(goCtx, sender, msg.AmountIn, msg.AmountOutMin, msg.Path, recipient)
	if err != nil {
		return nil, reject(ctx, "SwapExactAssetsForAssets", err)
	}
	return &types.MsgSwapResponse{Amounts: amounts}, nil
}

// SwapAssetsForExactAssets handles exact-output path swaps
func (ms msgServer) SwapAssetsForExactAssets(goCtx context.Context, msg *types.MsgSwapAssetsForExactAssets) (*types.MsgSwapResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, &msg.Deadline); err != nil {
		return nil, reject(ctx, "SwapAssetsForExactAssets", err)
	}
	sender := sdk.MustAccAddressFromBech32(msg.Sender)
	recipient := sdk.MustAccAddressFromBech32(msg.Recipient)

	amounts, err := ms.Keeper.SwapAssetsForExactAssets(goCtx, sender, msg.AmountOut, msg.AmountInMax, msg.Path, recipient)
	if err != nil {
		return nil, reject(ctx, "SwapAssetsForExactAssets", err)
	}
	return &types.MsgSwapResponse{Amounts: amounts}, nil
}

// BootstrapContribute handles bootstrap pledges. Contributors must hold the
// pair's minimum balances.
func (ms msgServer) BootstrapContribute(goCtx context.Context, msg *types.MsgBootstrapContribute) (*types.MsgBootstrapContributeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, &msg.Deadline); err != nil {
		return nil, reject(ctx, "BootstrapContribute", err)
	}
	sender := sdk.MustAccAddressFromBech32(msg.Sender)

	qualified, err := ms.Keeper.BootstrapCheckLimits(goCtx, msg.AssetA, msg.AssetB, sender)
	if err != nil {
		return nil, reject(ctx, "BootstrapContribute", err)
	}
	if !qualified {
		return nil, reject(ctx, "BootstrapContribute", types.ErrNotQualifiedAccount.Wrapf("%s", sender))
	}

	amountA, amountB, err := ms.Keeper.BootstrapContribute(goCtx, sender, msg.AssetA, msg.AssetB, msg.AmountA, msg.AmountB)
	if err != nil {
		return nil, reject(ctx, "BootstrapContribute", err)
	}
	return &types.MsgBootstrapContributeResponse{AmountA: amountA, AmountB: amountB}, nil
}

// BootstrapEnd handles the conversion of a qualified bootstrap; anyone may send it
func (ms msgServer) BootstrapEnd(goCtx context.Context, msg *types.MsgBootstrapEnd) (*types.MsgBootstrapEndResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, nil); err != nil {
		return nil, reject(ctx, "BootstrapEnd", err)
	}

	totalLp, err := ms.Keeper.EndBootstrap(goCtx, msg.AssetA, msg.AssetB)
	if err != nil {
		return nil, reject(ctx, "BootstrapEnd", err)
	}
	return &types.MsgBootstrapEndResponse{TotalLiquidity: totalLp}, nil
}

// BootstrapClaim handles LP and reward claims after a bootstrap ends
func (ms msgServer) BootstrapClaim(goCtx context.Context, msg *types.MsgBootstrapClaim) (*types.MsgBootstrapClaimResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, &msg.Deadline); err != nil {
		return nil, reject(ctx, "BootstrapClaim", err)
	}
	sender := sdk.MustAccAddressFromBech32(msg.Sender)
	recipient := sdk.MustAccAddressFromBech32(msg.Recipient)

	claimed, err := ms.Keeper.BootstrapClaim(goCtx, sender, recipient, msg.AssetA, msg.AssetB)
	if err != nil {
		return nil, reject(ctx, "BootstrapClaim", err)
	}
	return &types.MsgBootstrapClaimResponse{Liquidity: claimed}, nil
}

// BootstrapRefund handles refunds of failed bootstraps
func (ms msgServer) BootstrapRefund(goCtx context.Context, msg *types.MsgBootstrapRefund) (*types.MsgBootstrapRefundResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, nil); err != nil {
		return nil, reject(ctx, "BootstrapRefund", err)
	}
	sender := sdk.MustAccAddressFromBech32(msg.Sender)

	refund, err := ms.Keeper.BootstrapRefund(goCtx, sender, msg.AssetA, msg.AssetB)
	if err != nil {
		return nil, reject(ctx, "BootstrapRefund", err)
	}
	return &types.MsgBootstrapRefundResponse{Refund: refund}, nil
}

// BootstrapChargeReward handles reward funding
func (ms msgServer) BootstrapChargeReward(goCtx context.Context, msg *types.MsgBootstrapChargeReward) (*types.MsgEmptyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, nil); err != nil {
		return nil, reject(ctx, "BootstrapChargeReward", err)
	}
	sender := sdk.MustAccAddressFromBech32(msg.Sender)

	if err := ms.Keeper.BootstrapChargeReward(goCtx, sender, msg.AssetA, msg.AssetB, msg.Rewards); err != nil {
		return nil, reject(ctx, "BootstrapChargeReward", err)
	}
	return &types.MsgEmptyResponse{}, nil
}

// CreatePair handles admin pair creation
func (ms msgServer) CreatePair(goCtx context.Context, msg *types.MsgCreatePair) (*types.MsgEmptyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, nil); err != nil {
		return nil, reject(ctx, "CreatePair", err)
	}
	if err := ms.Keeper.CreatePair(goCtx, msg.Authority, msg.AssetA, msg.AssetB); err != nil {
		return nil, reject(ctx, "CreatePair", err)
	}
	return &types.MsgEmptyResponse{}, nil
}

// BootstrapCreate handles admin bootstrap creation
func (ms msgServer) BootstrapCreate(goCtx context.Context, msg *types.MsgBootstrapCreate) (*types.MsgEmptyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, nil); err != nil {
		return nil, reject(ctx, "BootstrapCreate", err)
	}
	if err := ms.Keeper.CreateBootstrap(goCtx, msg.Authority, msg.Config); err != nil {
		return nil, reject(ctx, "BootstrapCreate", err)
	}
	return &types.MsgEmptyResponse{}, nil
}

// BootstrapUpdate handles admin bootstrap reconfiguration
func (ms msgServer) BootstrapUpdate(goCtx context.Context, msg *types.MsgBootstrapUpdate) (*types.MsgEmptyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, nil); err != nil {
		return nil, reject(ctx, "BootstrapUpdate", err)
	}
	if err := ms.Keeper.UpdateBootstrap(goCtx, msg.Authority, msg.Config); err != nil {
		return nil, reject(ctx, "BootstrapUpdate", err)
	}
	return &types.MsgEmptyResponse{}, nil
}

// BootstrapWithdrawReward handles admin reward withdrawal
func (ms msgServer) BootstrapWithdrawReward(goCtx context.Context, msg *types.MsgBootstrapWithdrawReward) (*types.MsgEmptyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, nil); err != nil {
		return nil, reject(ctx, "BootstrapWithdrawReward", err)
	}
	recipient := sdk.MustAccAddressFromBech32(msg.Recipient)

	if err := ms.Keeper.BootstrapWithdrawReward(goCtx, msg.Authority, msg.AssetA, msg.AssetB, recipient); err != nil {
		return nil, reject(ctx, "BootstrapWithdrawReward", err)
	}
	return &types.MsgEmptyResponse{}, nil
}

// SetFeeReceiver handles updates of the protocol fee receiver
func (ms msgServer) SetFeeReceiver(goCtx context.Context, msg *types.MsgSetFeeReceiver) (*types.MsgEmptyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, nil); err != nil {
		return nil, reject(ctx, "SetFeeReceiver", err)
	}
	var receiver sdk.AccAddress
	if msg.Receiver != "" {
		receiver = sdk.MustAccAddressFromBech32(msg.Receiver)
	}

	if err := ms.Keeper.SetFeeReceiver(goCtx, msg.Authority, receiver); err != nil {
		return nil, reject(ctx, "SetFeeReceiver", err)
	}
	return &types.MsgEmptyResponse{}, nil
}

// SetFeePoint handles updates of the protocol fee share
func (ms msgServer) SetFeePoint(goCtx context.Context, msg *types.MsgSetFeePoint) (*types.MsgEmptyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, nil); err != nil {
		return nil, reject(ctx, "SetFeePoint", err)
	}
	if err := ms.Keeper.SetFeePoint(goCtx, msg.Authority, msg.FeePoint); err != nil {
		return nil, reject(ctx, "SetFeePoint", err)
	}
	return &types.MsgEmptyResponse{}, nil
}

// UpdateParams handles governance parameter updates
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgEmptyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := precheck(ctx, msg, nil); err != nil {
		return nil, reject(ctx, "UpdateParams", err)
	}
	if err := ms.Keeper.checkAuthority(msg.Authority); err != nil {
		return nil, reject(ctx, "UpdateParams", err)
	}
	if err := ms.Keeper.SetParams(goCtx, msg.Params); err != nil {
		return nil, reject(ctx, "UpdateParams", err)
	}

	ms.Keeper.Logger(ctx).Info("params updated",
		"native_denom", msg.Params.NativeDenom,
		"max_path_length", msg.Params.MaxPathLength,
	)
	return &types.MsgEmptyResponse{}, nil
}
