package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/dex/amm"
	"github.com/paw-chain/pawswap/x/dex/types"
)

func TestFeeMetaAdmin(t *testing.T) {
	tk := newTestKeeper(t)

	meta, err := tk.k.GetFeeMeta(tk.ctx)
	require.NoError(t, err)
	require.False(t, meta.Enabled())

	require.ErrorIs(t, tk.k.SetFeeReceiver(tk.ctx, bob.String(), carol), types.ErrUnauthorized)
	require.ErrorIs(t, tk.k.SetFeePoint(tk.ctx, bob.String(), 5), types.ErrUnauthorized)
	require.ErrorIs(t, tk.k.SetFeePoint(tk.ctx, keepertest.Authority, types.MaxFeePoint+1), types.ErrInvalidParams)

	require.NoError(t, tk.k.SetFeeReceiver(tk.ctx, keepertest.Authority, carol))
	require.NoError(t, tk.k.SetFeePoint(tk.ctx, keepertest.Authority, 5))

	meta, err = tk.k.GetFeeMeta(tk.ctx)
	require.NoError(t, err)
	require.Equal(t, carol, meta.FeeReceiver)
	require.Equal(t, uint32(5), meta.FeePoint)
	require.True(t, meta.Enabled())

	events := tk.ctx.EventManager().Events()
	require.Equal(t, types.EventTypeFeeMetaUpdated, events[len(events)-1].Type)
}

func TestFeeReceiverCleared(t *testing.T) {
	tk := newTestKeeper(t)
	require.NoError(t, tk.k.SetFeeReceiver(tk.ctx, keepertest.Authority, carol))

	// clearing the only configured field leaves nothing stored
	require.NoError(t, tk.k.SetFeeReceiver(tk.ctx, keepertest.Authority, nil))
	meta, err := tk.k.GetFeeMeta(tk.ctx)
	require.NoError(t, err)
	require.Equal(t, types.FeeMeta{}, meta)

	require.NoError(t, tk.k.SetFeeReceiver(tk.ctx, keepertest.Authority, carol))
	require.NoError(t, tk.k.SetFeePoint(tk.ctx, keepertest.Authority, 5))
	require.NoError(t, tk.k.SetFeeReceiver(tk.ctx, keepertest.Authority, nil))
	meta, err = tk.k.GetFeeMeta(tk.ctx)
	require.NoError(t, err)
	require.Empty(t, meta.FeeReceiver)
	require.Equal(t, uint32(5), meta.FeePoint)
	require.False(t, meta.Enabled())

	require.NoError(t, tk.k.SetFeePoint(tk.ctx, keepertest.Authority, 0))
	meta, err = tk.k.GetFeeMeta(tk.ctx)
	require.NoError(t, err)
	require.Equal(t, types.FeeMeta{}, meta)

	// liquidity events keep working with the fee switched off
	keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", 1000, 1000)
	kLast, err := tk.k.GetKLast(tk.ctx, types.MustPair("uatom", "uusdt"))
	require.NoError(t, err)
	require.True(t, kLast.IsZero())
}

func TestProtocolFeeMintedOnLiquidityEvent(t *testing.T) {
	tk := newTestKeeper(t)
	pair := types.MustPair("uatom", "uusdt")
	require.NoError(t, tk.k.SetFeeReceiver(tk.ctx, keepertest.Authority, carol))
	require.NoError(t, tk.k.SetFeePoint(tk.ctx, keepertest.Authority, 5))

	keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", 1_000_000, 1_000_000)
	kLast, err := tk.k.GetKLast(tk.ctx, pair)
	require.NoError(t, err)
	require.Equal(t, "1000000000000", kLast.String())

	// trading fees grow k
	keepertest.Fund(t, tk.ledger, tk.ctx, bob, "uatom", 100_000)
	_, err = tk.k.SwapExactAssetsForAssets(tk.ctx, bob, math.NewInt(100_000), math.ZeroInt(), []string{"uatom", "uusdt"}, bob)
	require.NoError(t, err)
	requireAmount(t, 0, tk.ledger.BalanceOf(tk.ctx, pair.LPDenom(), carol), "swaps alone mint nothing")

	reserve0, reserve1 := tk.k.GetReserves(tk.ctx, pair)
	want, err := amm.ProtocolFee(reserve0, reserve1, math.NewInt(1_000_000), kLast, 5)
	require.NoError(t, err)
	requireAmount(t, 22, want)

	_, _, err = tk.k.RemoveLiquidity(tk.ctx, alice, "uatom", "uusdt", math.NewInt(1000), math.ZeroInt(), math.ZeroInt(), alice)
	require.NoError(t, err)
	requireAmount(t, 22, tk.ledger.BalanceOf(tk.ctx, pair.LPDenom(), carol))

	status, err := tk.k.GetPairStatus(tk.ctx, pair)
	require.NoError(t, err)
	requireAmount(t, 1_000_000+22-1000, status.(types.Trading).Metadata.TotalSupply)

	reserve0, reserve1 = tk.k.GetReserves(tk.ctx, pair)
	kLast, err = tk.k.GetKLast(tk.ctx, pair)
	require.NoError(t, err)
	require.Equal(t, amm.Product(reserve0, reserve1).String(), kLast.String())
}

func TestKLastClearedWhenFeeSwitchedOff(t *testing.T) {
	tk := newTestKeeper(t)
	pair := types.MustPair("uatom", "uusdt")
	require.NoError(t, tk.k.SetFeeReceiver(tk.ctx, keepertest.Authority, carol))
	require.NoError(t, tk.k.SetFeePoint(tk.ctx, keepertest.Authority, 5))
	keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", 1000, 1000)

	kLast, err := tk.k.GetKLast(tk.ctx, pair)
	require.NoError(t, err)
	require.False(t, kLast.IsZero())

	require.NoError(t, tk.k.SetFeeReceiver(tk.ctx, keepertest.Authority, nil))
	_, _, err = tk.k.RemoveLiquidity(tk.ctx, alice, "uatom", "uusdt", math.NewInt(10), math.ZeroInt(), math.ZeroInt(), alice)
	require.NoError(t, err)

	kLast, err = tk.k.GetKLast(tk.ctx, pair)
	require.NoError(t, err)
	require.True(t, kLast.IsZero())
}

func TestNoProtocolFeeWithoutKLast(t *testing.T) {
	tk := newTestKeeper(t)
	pair := types.MustPair("uatom", "uusdt")

	// liquidity added while the fee is off records no kLast
	keepertest.CreateTradingPair(t, tk.k, tk.ctx, tk.ledger, alice, "uatom", "uusdt", 1_000_000, 1_000_000)
	require.NoError(t, tk.k.SetFeeReceiver(tk.ctx, keepertest.Authority, carol))
	require.NoError(t, tk.k.SetFeePoint(tk.ctx, keepertest.Authority, 30))

	keepertest.Fund(t, tk.ledger, tk.ctx, bob, "uatom", 100_000)
	_, err := tk.k.SwapExactAssetsForAssets(tk.ctx, bob, math.NewInt(100_000), math.ZeroInt(), []string{"uatom", "uusdt"}, bob)
	require.NoError(t, err)

	_, _, err = tk.k.RemoveLiquidity(tk.ctx, alice, "uatom", "uusdt", math.NewInt(1000), math.ZeroInt(), math.ZeroInt(), alice)
	require.NoError(t, err)
	requireAmount(t, 0, tk.ledger.BalanceOf(tk.ctx, pair.LPDenom(), carol))

	kLast, err := tk.k.GetKLast(tk.ctx, pair)
	require.NoError(t, err)
	require.False(t, kLast.IsZero(), "the removal starts tracking kLast")
}
