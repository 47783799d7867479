package keeper

import (
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// emitRejection records a failed dex message by operation and error class.
func emitRejection(ctx sdk.Context, op string, err error) {
	class := types.ClassOf(err).String()
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "msg_rejected"},
		1,
		[]metrics.Label{
			telemetry.NewLabel("op", op),
			telemetry.NewLabel("class", class),
		},
	)
	ctx.Logger().With("module", "x/"+types.ModuleName).Debug("dex message rejected",
		"op", op,
		"class", class,
		"error", err.Error(),
	)
}
