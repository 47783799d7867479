// Package keeper implements the DEX module keeper.
//
// The DEX runs constant-product pairs and a bootstrap launch process that
// gathers both sides of a pair before it opens for trading. All balances move
// through a types.AssetLedger; BankLedger backs it with x/bank.
//
// # Pair lifecycle
//
// A pair is Disabled until governance either opens it directly (CreatePair)
// or starts a bootstrap (CreateBootstrap). A bootstrap collects contributions
// into the escrow account until its end block. If both targets were met,
// anyone may call EndBootstrap, which seeds the reserves, mints the LP supply
// and moves the pair to Trading; contributors then BootstrapClaim their share
// of LP and rewards. A bootstrap that expires below target lets contributors
// BootstrapRefund.
//
// # Trading
//
// AddLiquidity and RemoveLiquidity mint and burn the pair's LP denom against
// reserves held by the pair's reserve account. Swaps route along a path of
// pairs, each hop paying the 0.3% pool fee; exact-input swaps that sell the
// native denom additionally pay a 0.5% origin fee to the pot account.
//
// When a fee receiver is configured, a share of the growth of sqrt(k) since
// the last liquidity event is minted to it as LP (see mintProtocolFee).
//
// # Atomicity
//
// Every state-changing entry point runs in a cached context and commits its
// store writes, ledger moves and events only on success.
//
// # Usage
//
//	amounts, err := k.SwapExactAssetsForAssets(ctx, trader, amountIn, minOut, []string{"uatom", "uusdt"}, trader)
//
//	lp, err := k.EndBootstrap(ctx, "uatom", "uusdt")
package keeper
