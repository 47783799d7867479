package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/dex/keeper"
	"github.com/paw-chain/pawswap/x/dex/types"
)

func TestInvariantsHoldThroughLifecycle(t *testing.T) {
	tk := newBootstrapKeeper(t, bootstrapConfig(10, "upaw"))
	tk.contribute(t, alice, 600, 2500)
	tk.contribute(t, bob, 400, 1500)
	keepertest.Fund(t, tk.ledger, tk.ctx, dave, "upaw", 90)
	require.NoError(t, tk.k.BootstrapChargeReward(tk.ctx, dave, "uatom", "uusdt",
		[]types.AssetAmount{{Asset: "upaw", Amount: math.NewInt(90)}}))

	msg, broken := keeper.AllInvariants(*tk.k)(tk.ctx)
	require.False(t, broken, msg)

	ended := tk.ctx.WithBlockHeight(10)
	_, err := tk.k.EndBootstrap(ended, "uatom", "uusdt")
	require.NoError(t, err)
	_, err = tk.k.BootstrapClaim(ended, alice, alice, "uatom", "uusdt")
	require.NoError(t, err)

	msg, broken = keeper.AllInvariants(*tk.k)(ended)
	require.False(t, broken, msg)
}

func TestEscrowBalanceInvariantDetectsShortfall(t *testing.T) {
	tk := newBootstrapKeeper(t, bootstrapConfig(10))
	tk.contribute(t, alice, 500, 2000)

	require.NoError(t, tk.ledger.Withdraw(tk.ctx, "uatom", types.EscrowAccount(), math.NewInt(1)))

	msg, broken := keeper.EscrowBalanceInvariant(*tk.k)(tk.ctx)
	require.True(t, broken)
	require.Contains(t, msg, "uatom")
}

func TestBootstrapCapacityInvariantDetectsOverflow(t *testing.T) {
	tk := newBootstrapKeeper(t, bootstrapConfig(10))
	pair := types.MustPair("uatom", "uusdt")

	param := tk.bootstrapParameter(t)
	param.AccumulatedSupply = types.NewSupply(math.NewInt(2001), math.ZeroInt())
	require.NoError(t, tk.k.SetPairStatus(tk.ctx, pair, types.Bootstrap{Parameter: param}))

	msg, broken := keeper.BootstrapCapacityInvariant(*tk.k)(tk.ctx)
	require.True(t, broken)
	require.Contains(t, msg, pair.String())
}

func TestTradingReservesInvariantDetectsDrainedPool(t *testing.T) {
	tk := newTestKeeper(t)
	pair := types.MustPair("uatom", "uusdt")
	keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", 1000, 1000)

	_, broken := keeper.TradingReservesInvariant(*tk.k)(tk.ctx)
	require.False(t, broken)

	require.NoError(t, tk.ledger.Withdraw(tk.ctx, "uusdt", pair.ReserveAccount(), math.NewInt(1000)))
	msg, broken := keeper.TradingReservesInvariant(*tk.k)(tk.ctx)
	require.True(t, broken)
	require.Contains(t, msg, pair.String())
}
