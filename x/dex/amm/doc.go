// Package amm holds the pure pricing and liquidity math of the dex module.
//
// Every function works on cosmossdk.io/math.Int balances, carries intermediate
// products on big.Int, and narrows the result back into the 128-bit balance
// range exactly once. Nothing here touches the store.
package amm
