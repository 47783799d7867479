package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/amm"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// GetFeeMeta returns the protocol fee configuration.
func (k Keeper) GetFeeMeta(ctx context.Context) (types.FeeMeta, error) {
	bz := k.getStore(ctx).Get(FeeMetaKey)
	if bz == nil {
		return types.FeeMeta{}, nil
	}
	var meta types.FeeMeta
	if err := k.unmarshal(bz, &meta); err != nil {
		return types.FeeMeta{}, fmt.Errorf("GetFeeMeta: unmarshal: %w", err)
	}
	return meta, nil
}

// SetFeeMeta stores the protocol fee configuration.
func (k Keeper) SetFeeMeta(ctx context.Context, meta types.FeeMeta) error {
	if meta.FeePoint > types.MaxFeePoint {
		return types.ErrInvalidParams.Wrapf("fee point %d above %d", meta.FeePoint, types.MaxFeePoint)
	}
	if err := k.setValue(ctx, FeeMetaKey, meta); err != nil {
		return fmt.Errorf("SetFeeMeta: marshal: %w", err)
	}
	return nil
}

// GetKLast returns the reserve product recorded after the pair's last
// liquidity event, or zero.
func (k Keeper) GetKLast(ctx context.Context, pair types.Pair) (math.Int, error) {
	bz := k.getStore(ctx).Get(KLastKey(pair))
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var kLast math.Int
	if err := kLast.Unmarshal(bz); err != nil {
		return math.Int{}, fmt.Errorf("GetKLast: unmarshal %s: %w", pair, err)
	}
	return kLast, nil
}

// SetKLast records the reserve product of a pair. Zero clears the entry.
func (k Keeper) SetKLast(ctx context.Context, pair types.Pair, kLast math.Int) error {
	store := k.getStore(ctx)
	if kLast.IsNil() || kLast.IsZero() {
		store.Delete(KLastKey(pair))
		return nil
	}
	bz, err := kLast.Marshal()
	if err != nil {
		return fmt.Errorf("SetKLast: marshal %s: %w", pair, err)
	}
	store.Set(KLastKey(pair), bz)
	return nil
}

// IterateKLasts calls cb for every recorded kLast.
func (k Keeper) IterateKLasts(ctx context.Context, cb func(pair types.Pair, kLast math.Int) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), KLastKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		pair, _, ok := splitPairKey(iterator.Key()[len(KLastKeyPrefix):])
		if !ok {
			return fmt.Errorf("IterateKLasts: malformed key %X", iterator.Key())
		}
		var kLast math.Int
		if err := kLast.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("IterateKLasts: unmarshal %s: %w", pair, err)
		}
		if cb(pair, kLast) {
			break
		}
	}
	return nil
}

// mintProtocolFee mints the protocol's share of fee growth since kLast to the
// fee receiver and returns the minted LP amount. With no receiver configured a
// stale kLast is cleared instead.
func (k Keeper) mintProtocolFee(
	ctx context.Context,
	pair types.Pair,
	reserve0, reserve1, totalSupply math.Int,
) (math.Int, error) {
	feeMeta, err := k.GetFeeMeta(ctx)
	if err != nil {
		return math.Int{}, err
	}
	kLast, err := k.GetKLast(ctx, pair)
	if err != nil {
		return math.Int{}, err
	}

	if len(feeMeta.FeeReceiver) == 0 {
		if !kLast.IsZero() {
			if err := k.SetKLast(ctx, pair, math.ZeroInt()); err != nil {
				return math.Int{}, err
			}
		}
		return math.ZeroInt(), nil
	}

	fee, err := amm.ProtocolFee(reserve0, reserve1, totalSupply, kLast, feeMeta.FeePoint)
	if err != nil {
		return math.Int{}, fmt.Errorf("mintProtocolFee: %s: %w", pair, err)
	}
	if !fee.IsPositive() {
		return math.ZeroInt(), nil
	}

	if err := k.ledger.Deposit(ctx, pair.LPDenom(), feeMeta.FeeReceiver, fee); err != nil {
		return math.Int{}, fmt.Errorf("mintProtocolFee: deposit: %w", err)
	}
	k.metrics.ProtocolFeeMinted.WithLabelValues(pair.String()).Add(toFloat(fee))
	return fee, nil
}

// refreshKLast records the post-operation reserve product while fee-on-mint
// is switched on.
func (k Keeper) refreshKLast(ctx context.Context, pair types.Pair) error {
	feeMeta, err := k.GetFeeMeta(ctx)
	if err != nil {
		return err
	}
	if !feeMeta.Enabled() {
		return nil
	}
	reserve0, reserve1 := k.GetReserves(ctx, pair)
	return k.SetKLast(ctx, pair, math.NewIntFromBigInt(amm.Product(reserve0, reserve1)))
}

// SetFeeReceiver sets or clears the account receiving protocol fees.
func (k Keeper) SetFeeReceiver(ctx context.Context, authority string, receiver sdk.AccAddress) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	return k.atomically(ctx, func(cacheCtx sdk.Context) error {
		meta, err := k.GetFeeMeta(cacheCtx)
		if err != nil {
			return err
		}
		meta.FeeReceiver = receiver
		if err := k.SetFeeMeta(cacheCtx, meta); err != nil {
			return err
		}
		k.emitFeeMetaUpdated(cacheCtx, meta)
		return nil
	})
}

// SetFeePoint sets the protocol share of the trading fee, at most MaxFeePoint.
func (k Keeper) SetFeePoint(ctx context.Context, authority string, feePoint uint32) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	return k.atomically(ctx, func(cacheCtx sdk.Context) error {
		meta, err := k.GetFeeMeta(cacheCtx)
		if err != nil {
			return err
		}
		meta.FeePoint = feePoint
		if err := k.SetFeeMeta(cacheCtx, meta); err != nil {
			return err
		}
		k.emitFeeMetaUpdated(cacheCtx, meta)
		return nil
	})
}

func (k Keeper) emitFeeMetaUpdated(ctx sdk.Context, meta types.FeeMeta) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeeMetaUpdated,
			sdk.NewAttribute(types.AttributeKeyFeeReceiver, meta.FeeReceiver.String()),
			sdk.NewAttribute(types.AttributeKeyFeePoint, fmt.Sprintf("%d", meta.FeePoint)),
		),
	)
	k.Logger(ctx).Info("fee meta updated", "receiver", meta.FeeReceiver.String(), "fee_point", meta.FeePoint)
}
