package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetLedger is the asset balance store the DEX moves value through.
// Each call is individually atomic; a failed call leaves balances untouched.
type AssetLedger interface {
	// BalanceOf returns the balance of asset held by who.
	BalanceOf(ctx context.Context, asset string, who sdk.AccAddress) sdkmath.Int

	// Transfer moves amount of asset from one account to another.
	Transfer(ctx context.Context, asset string, from, to sdk.AccAddress, amount sdkmath.Int) error

	// Deposit mints amount of asset into who.
	Deposit(ctx context.Context, asset string, who sdk.AccAddress, amount sdkmath.Int) error

	// Withdraw burns amount of asset from who.
	Withdraw(ctx context.Context, asset string, who sdk.AccAddress, amount sdkmath.Int) error
}

// BankKeeper defines the subset of x/bank used to back an AssetLedger.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}
