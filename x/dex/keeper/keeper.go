package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// Keeper of the dex store
type Keeper struct {
	storeKey  storetypes.StoreKey
	cdc       *codec.LegacyAmino
	ledger    types.AssetLedger
	authority string
	metrics   *DEXMetrics
}

// NewKeeper creates a new dex Keeper instance. authority is the bech32
// address allowed to run the admin operations.
func NewKeeper(
	cdc *codec.LegacyAmino,
	key storetypes.StoreKey,
	ledger types.AssetLedger,
	authority string,
) *Keeper {
	if _, err := sdk.AccAddressFromBech32(authority); err != nil {
		panic(fmt.Errorf("invalid dex authority address: %w", err))
	}
	return &Keeper{
		storeKey:  key,
		cdc:       cdc,
		ledger:    ledger,
		authority: authority,
		metrics:   NewDEXMetrics(),
	}
}

// getStore returns the KVStore for the dex module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// GetAuthority returns the admin authority address
func (k Keeper) GetAuthority() string {
	return k.authority
}

func (k Keeper) checkAuthority(authority string) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}
	return nil
}

// atomically runs fn against a cached context and commits its writes,
// ledger moves and events only when fn succeeds.
func (k Keeper) atomically(ctx context.Context, fn func(cacheCtx sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	writeFn()
	return nil
}

func (k Keeper) marshal(v interface{}) ([]byte, error) {
	return k.cdc.Marshal(v)
}

// setValue stores the amino encoding of v under key. A zero struct encodes
// to no bytes, which the store rejects; that case deletes the key and
// readers fall back to the zero value.
func (k Keeper) setValue(ctx context.Context, key []byte, v interface{}) error {
	bz, err := k.marshal(v)
	if err != nil {
		return err
	}
	store := k.getStore(ctx)
	if len(bz) == 0 {
		store.Delete(key)
		return nil
	}
	store.Set(key, bz)
	return nil
}

func (k Keeper) unmarshal(bz []byte, v interface{}) error {
	return k.cdc.Unmarshal(bz, v)
}
