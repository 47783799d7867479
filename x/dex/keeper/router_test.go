package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/dex/amm"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// newRoutedKeeper opens uatom/uusdt and uusdt/uosmo with 1000 of each asset.
func newRoutedKeeper(t *testing.T) testKeeper {
	tk := newTestKeeper(t)
	keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", 1000, 1000)
	keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uusdt", "uosmo", 1000, 1000)
	return tk
}

func amounts(values ...int64) []int64 { return values }

func int64s(in []math.Int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = v.Int64()
	}
	return out
}

func TestGetAmountOutByPath(t *testing.T) {
	tk := newRoutedKeeper(t)

	got, err := tk.k.GetAmountOutByPath(tk.ctx, math.NewInt(100), []string{"uatom", "uusdt"})
	require.NoError(t, err)
	require.Equal(t, amounts(100, 90), int64s(got))

	// two hops compose the single-hop formula
	got, err = tk.k.GetAmountOutByPath(tk.ctx, math.NewInt(100), []string{"uatom", "uusdt", "uosmo"})
	require.NoError(t, err)
	first, err := amm.GetAmountOut(math.NewInt(100), math.NewInt(1000), math.NewInt(1000))
	require.NoError(t, err)
	second, err := amm.GetAmountOut(first, math.NewInt(1000), math.NewInt(1000))
	require.NoError(t, err)
	require.Equal(t, []int64{100, first.Int64(), second.Int64()}, int64s(got))
}

func TestGetAmountInByPath(t *testing.T) {
	tk := newRoutedKeeper(t)

	got, err := tk.k.GetAmountInByPath(tk.ctx, math.NewInt(90), []string{"uatom", "uusdt"})
	require.NoError(t, err)
	require.Equal(t, amounts(100, 90), int64s(got))

	got, err = tk.k.GetAmountInByPath(tk.ctx, math.NewInt(50), []string{"uatom", "uusdt", "uosmo"})
	require.NoError(t, err)
	second, err := amm.GetAmountIn(math.NewInt(50), math.NewInt(1000), math.NewInt(1000))
	require.NoError(t, err)
	first, err := amm.GetAmountIn(second, math.NewInt(1000), math.NewInt(1000))
	require.NoError(t, err)
	require.Equal(t, []int64{first.Int64(), second.Int64(), 50}, int64s(got))

	// selling the quoted input buys at least the requested output
	out, err := tk.k.GetAmountOutByPath(tk.ctx, got[0], []string{"uatom", "uusdt", "uosmo"})
	require.NoError(t, err)
	require.GreaterOrEqual(t, out[2].Int64(), int64(50))
}

func TestQuoteErrors(t *testing.T) {
	tk := newRoutedKeeper(t)
	require.NoError(t, tk.k.CreatePair(tk.ctx, keepertest.Authority, "uatom", "upaw"))

	tests := []struct {
		name    string
		path    []string
		amount  int64
		errType error
	}{
		{"missing pair", []string{"uatom", "uosmo"}, 100, types.ErrInvalidPath},
		{"empty reserves", []string{"uatom", "upaw"}, 100, types.ErrInvalidPath},
		{"single asset", []string{"uatom"}, 100, types.ErrInvalidPath},
		{"adjacent repeat", []string{"uatom", "uatom"}, 100, types.ErrInvalidPath},
		{"too long", []string{"uatom", "uusdt", "uatom", "uusdt", "uatom", "uusdt", "uatom"}, 100, types.ErrInvalidPath},
		{"dust output", []string{"uatom", "uusdt"}, 1, types.ErrInvalidPath},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tk.k.GetAmountOutByPath(tk.ctx, math.NewInt(tc.amount), tc.path)
			require.ErrorIs(t, err, tc.errType)
		})
	}

	_, err := tk.k.GetAmountInByPath(tk.ctx, math.NewInt(1000), []string{"uatom", "uusdt"})
	require.ErrorIs(t, err, types.ErrOverflow, "buying the whole reserve")
}

func TestMaxPathLengthIsConfigurable(t *testing.T) {
	tk := newRoutedKeeper(t)
	require.NoError(t, tk.k.SetParams(tk.ctx, types.Params{NativeDenom: types.DefaultNativeDenom, MaxPathLength: 2}))

	_, err := tk.k.GetAmountOutByPath(tk.ctx, math.NewInt(100), []string{"uatom", "uusdt", "uosmo"})
	require.ErrorIs(t, err, types.ErrInvalidPath)
}

func TestSwapExactAssetsForAssets(t *testing.T) {
	tk := newRoutedKeeper(t)
	keepertest.Fund(t, tk.ledger, tk.ctx, bob, "uatom", 100)

	got, err := tk.k.SwapExactAssetsForAssets(tk.ctx, bob, math.NewInt(100), math.NewInt(90), []string{"uatom", "uusdt"}, carol)
	require.NoError(t, err)
	require.Equal(t, amounts(100, 90), int64s(got))

	requireAmount(t, 0, tk.ledger.BalanceOf(tk.ctx, "uatom", bob))
	requireAmount(t, 90, tk.ledger.BalanceOf(tk.ctx, "uusdt", carol))

	reserve0, reserve1 := tk.k.GetReserves(tk.ctx, types.MustPair("uatom", "uusdt"))
	requireAmount(t, 1100, reserve0)
	requireAmount(t, 910, reserve1)

	events := tk.ctx.EventManager().Events()
	require.Equal(t, types.EventTypeAssetSwap, events[len(events)-1].Type)
}

func TestSwapExactAssetsForAssets_Slippage(t *testing.T) {
	tk := newRoutedKeeper(t)
	keepertest.Fund(t, tk.ledger, tk.ctx, bob, "uatom", 100)

	_, err := tk.k.SwapExactAssetsForAssets(tk.ctx, bob, math.NewInt(100), math.NewInt(91), []string{"uatom", "uusdt"}, bob)
	require.ErrorIs(t, err, types.ErrInsufficientTargetAmount)
	requireAmount(t, 100, tk.ledger.BalanceOf(tk.ctx, "uatom", bob))
}

func TestSwap_RejectsInvalidAmounts(t *testing.T) {
	tk := newRoutedKeeper(t)
	keepertest.Fund(t, tk.ledger, tk.ctx, bob, "uatom", 100)
	path := []string{"uatom", "uusdt"}

	_, err := tk.k.SwapExactAssetsForAssets(tk.ctx, bob, math.NewInt(-100), math.ZeroInt(), path, bob)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
	_, err = tk.k.SwapExactAssetsForAssets(tk.ctx, bob, math.NewInt(100), math.Int{}, path, bob)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
	_, err = tk.k.SwapAssetsForExactAssets(tk.ctx, bob, math.NewInt(-90), math.NewInt(100), path, bob)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
	requireAmount(t, 100, tk.ledger.BalanceOf(tk.ctx, "uatom", bob))
}

func TestSwapExactAssetsForAssets_MultiHop(t *testing.T) {
	tk := newRoutedKeeper(t)
	keepertest.Fund(t, tk.ledger, tk.ctx, bob, "uatom", 100)
	path := []string{"uatom", "uusdt", "uosmo"}

	quote, err := tk.k.GetAmountOutByPath(tk.ctx, math.NewInt(100), path)
	require.NoError(t, err)

	got, err := tk.k.SwapExactAssetsForAssets(tk.ctx, bob, math.NewInt(100), math.ZeroInt(), path, carol)
	require.NoError(t, err)
	require.Equal(t, int64s(quote), int64s(got))
	requireAmount(t, got[2].Int64(), tk.ledger.BalanceOf(tk.ctx, "uosmo", carol))

	// the intermediate asset passes between reserve accounts without touching the trader
	requireAmount(t, 0, tk.ledger.BalanceOf(tk.ctx, "uusdt", bob))
	requireAmount(t, 0, tk.ledger.BalanceOf(tk.ctx, "uusdt", carol))

	r0, r1 := tk.k.GetReserves(tk.ctx, types.MustPair("uatom", "uusdt"))
	requireAmount(t, 1100, r0)
	requireAmount(t, 1000-got[1].Int64(), r1)

	pair2 := types.MustPair("uusdt", "uosmo")
	require.Equal(t, "uosmo", pair2.Asset0)
	r0, r1 = tk.k.GetReserves(tk.ctx, pair2)
	requireAmount(t, 1000-got[2].Int64(), r0)
	requireAmount(t, 1000+got[1].Int64(), r1)
}

func TestSwapExactAssetsForAssets_RollsBackEveryHop(t *testing.T) {
	tk := newRoutedKeeper(t)
	keepertest.Fund(t, tk.ledger, tk.ctx, bob, "uatom", 100)

	tk.ledger.FailAsset = "uosmo"
	_, err := tk.k.SwapExactAssetsForAssets(tk.ctx, bob, math.NewInt(100), math.ZeroInt(), []string{"uatom", "uusdt", "uosmo"}, bob)
	require.ErrorIs(t, err, types.ErrInsufficientAssetBalance)
	tk.ledger.FailAsset = ""

	requireAmount(t, 100, tk.ledger.BalanceOf(tk.ctx, "uatom", bob))
	r0, r1 := tk.k.GetReserves(tk.ctx, types.MustPair("uatom", "uusdt"))
	requireAmount(t, 1000, r0)
	requireAmount(t, 1000, r1)
}

func TestSwapExactAssetsForAssets_OriginFee(t *testing.T) {
	tk := newTestKeeper(t)
	keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "upaw", "uusdt", 1_000_000, 1_000_000)
	keepertest.Fund(t, tk.ledger, tk.ctx, bob, "upaw", 1000)

	got, err := tk.k.SwapExactAssetsForAssets(tk.ctx, bob, math.NewInt(1000), math.ZeroInt(), []string{"upaw", "uusdt"}, bob)
	require.NoError(t, err)

	// 0.5% of a native input goes to the pot before pricing
	requireAmount(t, 995, got[0])
	requireAmount(t, 5, tk.ledger.BalanceOf(tk.ctx, "upaw", types.PotAccount()))
	requireAmount(t, 0, tk.ledger.BalanceOf(tk.ctx, "upaw", bob))

	want, err := amm.GetAmountOut(math.NewInt(995), math.NewInt(1_000_000), math.NewInt(1_000_000))
	require.NoError(t, err)
	requireAmount(t, want.Int64(), tk.ledger.BalanceOf(tk.ctx, "uusdt", bob))
}

func TestSwapAssetsForExactAssets(t *testing.T) {
	tk := newRoutedKeeper(t)
	keepertest.Fund(t, tk.ledger, tk.ctx, bob, "uatom", 100)

	_, err := tk.k.SwapAssetsForExactAssets(tk.ctx, bob, math.NewInt(90), math.NewInt(99), []string{"uatom", "uusdt"}, carol)
	require.ErrorIs(t, err, types.ErrExcessiveSoldAmount)
	requireAmount(t, 100, tk.ledger.BalanceOf(tk.ctx, "uatom", bob))

	got, err := tk.k.SwapAssetsForExactAssets(tk.ctx, bob, math.NewInt(90), math.NewInt(100), []string{"uatom", "uusdt"}, carol)
	require.NoError(t, err)
	require.Equal(t, amounts(100, 90), int64s(got))
	requireAmount(t, 0, tk.ledger.BalanceOf(tk.ctx, "uatom", bob))
	requireAmount(t, 90, tk.ledger.BalanceOf(tk.ctx, "uusdt", carol))
}

func TestSwapAssetsForExactAssets_InsufficientFunds(t *testing.T) {
	tk := newRoutedKeeper(t)
	keepertest.Fund(t, tk.ledger, tk.ctx, bob, "uatom", 50)

	_, err := tk.k.SwapAssetsForExactAssets(tk.ctx, bob, math.NewInt(90), math.NewInt(100), []string{"uatom", "uusdt"}, bob)
	require.ErrorIs(t, err, types.ErrInsufficientAssetBalance)
	requireAmount(t, 50, tk.ledger.BalanceOf(tk.ctx, "uatom", bob))
}
