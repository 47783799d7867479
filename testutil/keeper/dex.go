package keeper

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/dex/keeper"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// LedgerStoreKey names the store backing StoreLedger.
const LedgerStoreKey = "ledger"

// Authority is the admin address of test keepers.
var Authority = sdk.AccAddress(address.Module("gov")).String()

// StoreLedger is a types.AssetLedger kept in its own KV store, so balance
// changes follow the same cache/commit rules as module state.
type StoreLedger struct {
	key storetypes.StoreKey

	// FailAsset makes every Transfer of this asset fail.
	FailAsset string
}

var _ types.AssetLedger = (*StoreLedger)(nil)

func balanceKey(asset string, who sdk.AccAddress) []byte {
	return append(address.MustLengthPrefix(who), []byte(asset)...)
}

func (l *StoreLedger) store(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(l.key)
}

func (l *StoreLedger) set(ctx context.Context, asset string, who sdk.AccAddress, amount math.Int) {
	if amount.IsZero() {
		l.store(ctx).Delete(balanceKey(asset, who))
		return
	}
	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}
	l.store(ctx).Set(balanceKey(asset, who), bz)
}

// BalanceOf returns the stored balance.
func (l *StoreLedger) BalanceOf(ctx context.Context, asset string, who sdk.AccAddress) math.Int {
	bz := l.store(ctx).Get(balanceKey(asset, who))
	if bz == nil {
		return math.ZeroInt()
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(err)
	}
	return amount
}

// Transfer moves amount between accounts.
func (l *StoreLedger) Transfer(ctx context.Context, asset string, from, to sdk.AccAddress, amount math.Int) error {
	if asset == l.FailAsset {
		return types.ErrInsufficientAssetBalance.Wrapf("transfers of %s are disabled", asset)
	}
	if err := l.Withdraw(ctx, asset, from, amount); err != nil {
		return types.ErrInsufficientAssetBalance.Wrap(err.Error())
	}
	return l.Deposit(ctx, asset, to, amount)
}

// Deposit credits amount to who.
func (l *StoreLedger) Deposit(ctx context.Context, asset string, who sdk.AccAddress, amount math.Int) error {
	if amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("negative deposit %s", amount)
	}
	l.set(ctx, asset, who, l.BalanceOf(ctx, asset, who).Add(amount))
	return nil
}

// Withdraw debits amount from who.
func (l *StoreLedger) Withdraw(ctx context.Context, asset string, who sdk.AccAddress, amount math.Int) error {
	if amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("negative withdrawal %s", amount)
	}
	balance := l.BalanceOf(ctx, asset, who)
	if balance.LT(amount) {
		return types.ErrInsufficientLiquidity.Wrapf("%s holds %s%s, needs %s", who, balance, asset, amount)
	}
	l.set(ctx, asset, who, balance.Sub(amount))
	return nil
}

// DexKeeper creates a test keeper for the DEX module over an in-memory store
// and a StoreLedger.
func DexKeeper(t testing.TB) (*keeper.Keeper, sdk.Context, *StoreLedger) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ledgerKey := storetypes.NewKVStoreKey(LedgerStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ledger := &StoreLedger{key: ledgerKey}
	k := keeper.NewKeeper(types.ModuleCdc, storeKey, ledger, Authority)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1}, false, log.NewNopLogger())
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, ctx, ledger
}

// Fund credits amount of asset to who.
func Fund(t testing.TB, ledger *StoreLedger, ctx sdk.Context, who sdk.AccAddress, asset string, amount int64) {
	require.NoError(t, ledger.Deposit(ctx, asset, who, math.NewInt(amount)))
}

// CreateTradingPair opens a pair and seeds it with liquidity from provider.
// It returns the minted LP amount.
func CreateTradingPair(
	t testing.TB,
	k *keeper.Keeper,
	ctx sdk.Context,
	ledger *StoreLedger,
	provider sdk.AccAddress,
	assetA, assetB string,
	amountA, amountB int64,
) math.Int {
	require.NoError(t, k.CreatePair(ctx, Authority, assetA, assetB))
	Fund(t, ledger, ctx, provider, assetA, amountA)
	Fund(t, ledger, ctx, provider, assetB, amountB)

	a, b := math.NewInt(amountA), math.NewInt(amountB)
	_, _, lp, err := k.AddLiquidity(ctx, provider, assetA, assetB, a, b, a, b)
	require.NoError(t, err)
	return lp
}
