package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// FuzzSwapExactIn checks that a swap never lowers reserve0 * reserve1 and
// that the trader receives exactly what leaves the pool.
func FuzzSwapExactIn(f *testing.F) {
	for _, seed := range []uint64{1, 1000, 100_000, 99_999_999, 1 << 40} {
		f.Add(seed, true)
		f.Add(seed, false)
	}

	f.Fuzz(func(t *testing.T, amountRaw uint64, sellAsset0 bool) {
		const reserve = 1_000_000_000
		amount := int64(amountRaw%(reserve/10)) + 1

		tk := newTestKeeper(t)
		keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", reserve, reserve)
		pair := types.MustPair("uatom", "uusdt")

		path := []string{"uatom", "uusdt"}
		if !sellAsset0 {
			path = []string{"uusdt", "uatom"}
		}
		keepertest.Fund(t, tk.ledger, tk.ctx, bob, path[0], amount)

		r0, r1 := tk.k.GetReserves(tk.ctx, pair)
		kBefore := r0.Mul(r1)

		got, err := tk.k.SwapExactAssetsForAssets(tk.ctx, bob, math.NewInt(amount), math.ZeroInt(), path, bob)
		require.NoError(t, err)

		n0, n1 := tk.k.GetReserves(tk.ctx, pair)
		require.True(t, n0.Mul(n1).GTE(kBefore), "k decreased: %s*%s < %s", n0, n1, kBefore)
		require.Equal(t, got[1], tk.ledger.BalanceOf(tk.ctx, path[1], bob))
		require.True(t, n0.Add(n1).Equal(r0.Add(r1).Add(got[0]).Sub(got[1])))
	})
}

// FuzzAddRemoveLiquidity checks that depositing and immediately withdrawing
// never returns more than was deposited.
func FuzzAddRemoveLiquidity(f *testing.F) {
	f.Add(uint64(333), uint64(1333))
	f.Add(uint64(1), uint64(1))
	f.Add(uint64(1_000_000), uint64(7))

	f.Fuzz(func(t *testing.T, rawA, rawB uint64) {
		amountA := int64(rawA%10_000_000) + 1
		amountB := int64(rawB%10_000_000) + 1

		tk := newTestKeeper(t)
		keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", 1000, 4000)
		keepertest.Fund(t, tk.ledger, tk.ctx, bob, "uatom", amountA)
		keepertest.Fund(t, tk.ledger, tk.ctx, bob, "uusdt", amountB)

		_, _, minted, err := tk.k.AddLiquidity(tk.ctx, bob, "uatom", "uusdt",
			math.NewInt(amountA), math.NewInt(amountB), math.ZeroInt(), math.ZeroInt())
		if err != nil {
			return
		}
		_, _, err = tk.k.RemoveLiquidity(tk.ctx, bob, "uatom", "uusdt", minted, math.ZeroInt(), math.ZeroInt(), bob)
		if err != nil {
			return
		}

		require.True(t, tk.ledger.BalanceOf(tk.ctx, "uatom", bob).LTE(math.NewInt(amountA)))
		require.True(t, tk.ledger.BalanceOf(tk.ctx, "uusdt", bob).LTE(math.NewInt(amountB)))
	})
}
