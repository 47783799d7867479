package amm

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// BootstrapLiquidity is the LP supply minted when a bootstrap ends:
// floor(sqrt(acc0 * acc1)).
func BootstrapLiquidity(accumulated0, accumulated1 math.Int) (math.Int, error) {
	return SqrtProduct(accumulated0, accumulated1)
}

// BootstrapClaimLiquidity returns a contributor's LP share. Each side of the
// contribution is converted into an effective amount at the realized pool
// ratio so one-sided contributors are valued fairly:
//
//	eff0 = (c0*acc1 + c1*acc0) / (2*acc1)
//	eff1 = (c1*acc0 + c0*acc1) / (2*acc0)
//	lp   = floor(sqrt(eff0*eff1))
func BootstrapClaimLiquidity(contrib0, contrib1, accumulated0, accumulated1 math.Int) (math.Int, error) {
	if accumulated0.IsZero() || accumulated1.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("claim liquidity: zero accumulated supply")
	}

	acc0, acc1 := accumulated0.BigInt(), accumulated1.BigInt()
	crossed := new(big.Int).Add(
		new(big.Int).Mul(contrib0.BigInt(), acc1),
		new(big.Int).Mul(contrib1.BigInt(), acc0),
	)

	eff0 := new(big.Int).Quo(crossed, new(big.Int).Lsh(acc1, 1))
	eff1 := new(big.Int).Quo(crossed, new(big.Int).Lsh(acc0, 1))

	return ToBalance(sqrt(eff0.Mul(eff0, eff1)))
}

// RewardShare returns floor(shareLp * reward / totalLp).
func RewardShare(shareLp, reward, totalLp math.Int) (math.Int, error) {
	if totalLp.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("reward share: zero total liquidity")
	}
	return SafeMulDiv(shareLp, reward, totalLp)
}
