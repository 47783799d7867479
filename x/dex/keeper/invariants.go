package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// RegisterInvariants registers all DEX invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "bootstrap-capacity", BootstrapCapacityInvariant(k))
	ir.RegisterRoute(types.ModuleName, "escrow-balance", EscrowBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "trading-reserves", TradingReservesInvariant(k))
}

// AllInvariants runs all invariants of the DEX module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := BootstrapCapacityInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = EscrowBalanceInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return TradingReservesInvariant(k)(ctx)
	}
}

// BootstrapCapacityInvariant checks that no bootstrap accumulated more than
// its capacity
func BootstrapCapacityInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePairStatuses(ctx, func(pair types.Pair, status types.PairStatus) bool {
			b, ok := status.(types.Bootstrap)
			if !ok {
				return false
			}
			p := b.Parameter
			if p.AccumulatedSupply.Amount0.GT(p.CapacitySupply.Amount0) ||
				p.AccumulatedSupply.Amount1.GT(p.CapacitySupply.Amount1) {
				count++
				msg += fmt.Sprintf("pair %s: accumulated %s above capacity %s\n",
					pair, p.AccumulatedSupply, p.CapacitySupply)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pair statuses: %v\n", err)
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "bootstrap-capacity",
			fmt.Sprintf("found %d bootstraps over capacity\n%s", count, msg),
		), broken
	}
}

// EscrowBalanceInvariant checks that the escrow account covers every live
// bootstrap's accumulated supply plus its pledged rewards
func EscrowBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)
		owed := make(map[string]math.Int)
		add := func(asset string, amount math.Int) {
			if cur, ok := owed[asset]; ok {
				owed[asset] = cur.Add(amount)
				return
			}
			owed[asset] = amount
		}

		live := make(map[types.Pair]bool)
		err := k.IteratePairStatuses(ctx, func(pair types.Pair, status types.PairStatus) bool {
			if b, ok := status.(types.Bootstrap); ok {
				live[pair] = true
				add(pair.Asset0, b.Parameter.AccumulatedSupply.Amount0)
				add(pair.Asset1, b.Parameter.AccumulatedSupply.Amount1)
			}
			return false
		})
		if err == nil {
			// rewards of ended bootstraps are paid out pro-rata against the pledged total
			err = k.iterateAssetAmounts(ctx, BootstrapRewardsKeyPrefix, func(pair types.Pair, rewards types.AssetAmounts) {
				if !live[pair] {
					return
				}
				for _, r := range rewards {
					add(r.Asset, r.Amount)
				}
			})
		}
		if err != nil {
			count++
			msg += fmt.Sprintf("collect escrow obligations: %v\n", err)
		}

		escrow := types.EscrowAccount()
		for asset, amount := range owed {
			balance := k.ledger.BalanceOf(ctx, asset, escrow)
			if balance.LT(amount) {
				count++
				msg += fmt.Sprintf("escrow balance for %s (%s) < owed (%s)\n", asset, balance, amount)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "escrow-balance",
			fmt.Sprintf("found %d escrow shortfalls\n%s", count, msg),
		), broken
	}
}

// TradingReservesInvariant checks that every trading pair with outstanding
// LP shares holds both reserves
func TradingReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePairStatuses(ctx, func(pair types.Pair, status types.PairStatus) bool {
			t, ok := status.(types.Trading)
			if !ok {
				return false
			}
			supply := t.Metadata.TotalSupply
			if supply.IsNil() || supply.IsNegative() {
				count++
				msg += fmt.Sprintf("pair %s: invalid total supply %s\n", pair, supply)
				return false
			}
			if supply.IsZero() {
				return false
			}
			reserve0, reserve1 := k.GetReserves(ctx, pair)
			if !reserve0.IsPositive() || !reserve1.IsPositive() {
				count++
				msg += fmt.Sprintf("pair %s: supply %s backed by reserves %s/%s\n", pair, supply, reserve0, reserve1)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pair statuses: %v\n", err)
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "trading-reserves",
			fmt.Sprintf("found %d trading pairs without reserves\n%s", count, msg),
		), broken
	}
}
