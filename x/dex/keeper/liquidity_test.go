package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/dex/types"
)

func TestAddLiquidity_FirstDepositMintsGeometricMean(t *testing.T) {
	k, ctx, ledger := keepertest.DexKeeper(t)
	pair := types.MustPair("uatom", "uusdt")

	lp := keepertest.CreateTradingPair(t, k, ctx, ledger, alice, "uatom", "uusdt", 1000, 4000)
	requireAmount(t, 2000, lp)
	requireAmount(t, 2000, ledger.BalanceOf(ctx, pair.LPDenom(), alice))

	reserve0, reserve1 := k.GetReserves(ctx, pair)
	requireAmount(t, 1000, reserve0)
	requireAmount(t, 4000, reserve1)

	status, err := k.GetPairStatus(ctx, pair)
	require.NoError(t, err)
	requireAmount(t, 2000, status.(types.Trading).Metadata.TotalSupply)
}

func TestAddLiquidity_ProportionalDepositInCallerOrder(t *testing.T) {
	k, ctx, ledger := keepertest.DexKeeper(t)
	pair := types.MustPair("uatom", "uusdt")
	keepertest.CreateTradingPair(t, k, ctx, ledger, alice, "uatom", "uusdt", 1000, 4000)

	keepertest.Fund(t, ledger, ctx, bob, "uatom", 500)
	keepertest.Fund(t, ledger, ctx, bob, "uusdt", 3000)

	// caller order is (uusdt, uatom); the pool ratio caps the uusdt side at 2000
	depositA, depositB, minted, err := k.AddLiquidity(ctx, bob, "uusdt", "uatom",
		math.NewInt(3000), math.NewInt(500), math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	requireAmount(t, 2000, depositA)
	requireAmount(t, 500, depositB)
	requireAmount(t, 1000, minted)

	requireAmount(t, 1000, ledger.BalanceOf(ctx, "uusdt", bob))
	requireAmount(t, 0, ledger.BalanceOf(ctx, "uatom", bob))
	requireAmount(t, 1000, ledger.BalanceOf(ctx, pair.LPDenom(), bob))

	events := ctx.EventManager().Events()
	require.NotEmpty(t, events)
	require.Equal(t, types.EventTypeLiquidityAdded, events[len(events)-1].Type)
}

func TestAddLiquidity_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, k testKeeper)
		desired [2]int64
		min     [2]int64
		errType error
	}{
		{
			name:    "pair not trading",
			setup:   func(*testing.T, testKeeper) {},
			desired: [2]int64{100, 100},
			errType: types.ErrInvalidStatus,
		},
		{
			name: "minimum above optimal amount",
			setup: func(t *testing.T, tk testKeeper) {
				keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", 1000, 4000)
			},
			desired: [2]int64{100, 1000},
			min:     [2]int64{0, 401},
			errType: types.ErrIncorrectAssetAmountRange,
		},
		{
			name: "insufficient balance",
			setup: func(t *testing.T, tk testKeeper) {
				keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", 1000, 4000)
			},
			desired: [2]int64{100, 400},
			errType: types.ErrInsufficientAssetBalance,
		},
		{
			name: "negative desired amount",
			setup: func(t *testing.T, tk testKeeper) {
				keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", 1000, 4000)
			},
			desired: [2]int64{-100, 400},
			errType: types.ErrInvalidAmount,
		},
		{
			name: "negative minimum",
			setup: func(t *testing.T, tk testKeeper) {
				keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", 1000, 4000)
			},
			desired: [2]int64{100, 400},
			min:     [2]int64{0, -1},
			errType: types.ErrInvalidAmount,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk := newTestKeeper(t)
			tc.setup(t, tk)

			_, _, _, err := tk.k.AddLiquidity(tk.ctx, bob, "uatom", "uusdt",
				math.NewInt(tc.desired[0]), math.NewInt(tc.desired[1]),
				math.NewInt(tc.min[0]), math.NewInt(tc.min[1]))
			require.ErrorIs(t, err, tc.errType)
		})
	}
}

func TestRemoveLiquidity(t *testing.T) {
	k, ctx, ledger := keepertest.DexKeeper(t)
	pair := types.MustPair("uatom", "uusdt")
	keepertest.CreateTradingPair(t, k, ctx, ledger, alice, "uatom", "uusdt", 1000, 4000)

	outA, outB, err := k.RemoveLiquidity(ctx, alice, "uusdt", "uatom",
		math.NewInt(500), math.NewInt(1000), math.NewInt(250), carol)
	require.NoError(t, err)
	requireAmount(t, 1000, outA)
	requireAmount(t, 250, outB)

	requireAmount(t, 1000, ledger.BalanceOf(ctx, "uusdt", carol))
	requireAmount(t, 250, ledger.BalanceOf(ctx, "uatom", carol))
	requireAmount(t, 1500, ledger.BalanceOf(ctx, pair.LPDenom(), alice))

	status, err := k.GetPairStatus(ctx, pair)
	require.NoError(t, err)
	requireAmount(t, 1500, status.(types.Trading).Metadata.TotalSupply)
}

func TestRemoveLiquidity_Errors(t *testing.T) {
	k, ctx, ledger := keepertest.DexKeeper(t)
	keepertest.CreateTradingPair(t, k, ctx, ledger, alice, "uatom", "uusdt", 1000, 4000)

	_, _, err := k.RemoveLiquidity(ctx, alice, "uatom", "uusdt",
		math.NewInt(500), math.NewInt(251), math.ZeroInt(), alice)
	require.ErrorIs(t, err, types.ErrInsufficientTargetAmount)

	_, _, err = k.RemoveLiquidity(ctx, bob, "uatom", "uusdt",
		math.NewInt(500), math.ZeroInt(), math.ZeroInt(), bob)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity, "bob holds no LP")

	_, _, err = k.RemoveLiquidity(ctx, alice, "uatom", "uusdt",
		math.NewInt(2001), math.ZeroInt(), math.ZeroInt(), alice)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)

	_, _, err = k.RemoveLiquidity(ctx, alice, "uatom", "upaw",
		math.NewInt(1), math.ZeroInt(), math.ZeroInt(), alice)
	require.ErrorIs(t, err, types.ErrInvalidStatus)

	_, _, err = k.RemoveLiquidity(ctx, alice, "uatom", "uusdt",
		math.NewInt(-500), math.ZeroInt(), math.ZeroInt(), alice)
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	_, _, err = k.RemoveLiquidity(ctx, alice, "uatom", "uusdt",
		math.NewInt(500), math.Int{}, math.ZeroInt(), alice)
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	// failed removals leave the pool untouched
	reserve0, reserve1 := k.GetReserves(ctx, types.MustPair("uatom", "uusdt"))
	requireAmount(t, 1000, reserve0)
	requireAmount(t, 4000, reserve1)
}

func TestAddRemoveRoundTripIsNotProfitable(t *testing.T) {
	k, ctx, ledger := keepertest.DexKeeper(t)
	keepertest.CreateTradingPair(t, k, ctx, ledger, alice, "uatom", "uusdt", 1000, 4000)

	keepertest.Fund(t, ledger, ctx, bob, "uatom", 333)
	keepertest.Fund(t, ledger, ctx, bob, "uusdt", 1333)

	_, _, minted, err := k.AddLiquidity(ctx, bob, "uatom", "uusdt",
		math.NewInt(333), math.NewInt(1333), math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)

	_, _, err = k.RemoveLiquidity(ctx, bob, "uatom", "uusdt", minted, math.ZeroInt(), math.ZeroInt(), bob)
	require.NoError(t, err)

	require.True(t, ledger.BalanceOf(ctx, "uatom", bob).LTE(math.NewInt(333)))
	require.True(t, ledger.BalanceOf(ctx, "uusdt", bob).LTE(math.NewInt(1333)))
}

func TestAddLiquidity_RollsBackOnLedgerFailure(t *testing.T) {
	k, ctx, ledger := keepertest.DexKeeper(t)
	pair := types.MustPair("uatom", "uusdt")
	keepertest.CreateTradingPair(t, k, ctx, ledger, alice, "uatom", "uusdt", 1000, 4000)

	keepertest.Fund(t, ledger, ctx, bob, "uatom", 100)
	keepertest.Fund(t, ledger, ctx, bob, "uusdt", 400)

	// the second transfer fails after LP was minted and uatom moved
	ledger.FailAsset = "uusdt"
	_, _, _, err := k.AddLiquidity(ctx, bob, "uatom", "uusdt",
		math.NewInt(100), math.NewInt(400), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientAssetBalance)
	ledger.FailAsset = ""

	requireAmount(t, 100, ledger.BalanceOf(ctx, "uatom", bob))
	requireAmount(t, 400, ledger.BalanceOf(ctx, "uusdt", bob))
	requireAmount(t, 0, ledger.BalanceOf(ctx, pair.LPDenom(), bob))

	status, err := k.GetPairStatus(ctx, pair)
	require.NoError(t, err)
	requireAmount(t, 2000, status.(types.Trading).Metadata.TotalSupply)
}
