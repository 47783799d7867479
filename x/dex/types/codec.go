package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// RegisterLegacyAminoCodec registers the module messages on the given amino codec
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgAddLiquidity{}, "dex/MsgAddLiquidity", nil)
	cdc.RegisterConcrete(&MsgRemoveLiquidity{}, "dex/MsgRemoveLiquidity", nil)
	cdc.RegisterConcrete(&MsgSwapExactAssetsForAssets{}, "dex/MsgSwapExactAssetsForAssets", nil)
	cdc.RegisterConcrete(&MsgSwapAssetsForExactAssets{}, "dex/MsgSwapAssetsForExactAssets", nil)
	cdc.RegisterConcrete(&MsgBootstrapContribute{}, "dex/MsgBootstrapContribute", nil)
	cdc.RegisterConcrete(&MsgBootstrapEnd{}, "dex/MsgBootstrapEnd", nil)
	cdc.RegisterConcrete(&MsgBootstrapClaim{}, "dex/MsgBootstrapClaim", nil)
	cdc.RegisterConcrete(&MsgBootstrapRefund{}, "dex/MsgBootstrapRefund", nil)
	cdc.RegisterConcrete(&MsgBootstrapChargeReward{}, "dex/MsgBootstrapChargeReward", nil)
	cdc.RegisterConcrete(&MsgCreatePair{}, "dex/MsgCreatePair", nil)
	cdc.RegisterConcrete(&MsgBootstrapCreate{}, "dex/MsgBootstrapCreate", nil)
	cdc.RegisterConcrete(&MsgBootstrapUpdate{}, "dex/MsgBootstrapUpdate", nil)
	cdc.RegisterConcrete(&MsgBootstrapWithdrawReward{}, "dex/MsgBootstrapWithdrawReward", nil)
	cdc.RegisterConcrete(&MsgSetFeeReceiver{}, "dex/MsgSetFeeReceiver", nil)
	cdc.RegisterConcrete(&MsgSetFeePoint{}, "dex/MsgSetFeePoint", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "dex/MsgUpdateParams", nil)
}

// ModuleCdc encodes module state, genesis and message sign bytes.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)
	ModuleCdc.Seal()
}
