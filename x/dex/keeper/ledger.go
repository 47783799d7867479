package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// BankLedger implements types.AssetLedger on top of x/bank. Mints and burns
// pass through the dex module account.
type BankLedger struct {
	bank types.BankKeeper
}

var _ types.AssetLedger = BankLedger{}

// NewBankLedger wraps a bank keeper.
func NewBankLedger(bank types.BankKeeper) BankLedger {
	return BankLedger{bank: bank}
}

// BalanceOf returns the bank balance of asset held by who.
func (l BankLedger) BalanceOf(ctx context.Context, asset string, who sdk.AccAddress) math.Int {
	return l.bank.GetBalance(ctx, who, asset).Amount
}

// Transfer sends amount of asset between two accounts. Zero amounts are no-ops.
func (l BankLedger) Transfer(ctx context.Context, asset string, from, to sdk.AccAddress, amount math.Int) error {
	if amount.IsZero() {
		return nil
	}
	if err := l.bank.SendCoins(ctx, from, to, sdk.NewCoins(sdk.NewCoin(asset, amount))); err != nil {
		return types.ErrInsufficientAssetBalance.Wrapf("transfer %s%s from %s: %v", amount, asset, from, err)
	}
	return nil
}

// Deposit mints amount of asset to who.
func (l BankLedger) Deposit(ctx context.Context, asset string, who sdk.AccAddress, amount math.Int) error {
	if amount.IsZero() {
		return nil
	}
	coins := sdk.NewCoins(sdk.NewCoin(asset, amount))
	if err := l.bank.MintCoins(ctx, types.ModuleName, coins); err != nil {
		return fmt.Errorf("Deposit: mint %s: %w", coins, err)
	}
	if err := l.bank.SendCoinsFromModuleToAccount(ctx, types.ModuleName, who, coins); err != nil {
		return fmt.Errorf("Deposit: send %s: %w", coins, err)
	}
	return nil
}

// Withdraw burns amount of asset held by who.
func (l BankLedger) Withdraw(ctx context.Context, asset string, who sdk.AccAddress, amount math.Int) error {
	if amount.IsZero() {
		return nil
	}
	coins := sdk.NewCoins(sdk.NewCoin(asset, amount))
	if err := l.bank.SendCoinsFromAccountToModule(ctx, who, types.ModuleName, coins); err != nil {
		return types.ErrInsufficientLiquidity.Wrapf("burn %s from %s: %v", coins, who, err)
	}
	if err := l.bank.BurnCoins(ctx, types.ModuleName, coins); err != nil {
		return fmt.Errorf("Withdraw: burn %s: %w", coins, err)
	}
	return nil
}
