package simulation

import (
	"math/rand"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"

	"github.com/paw-chain/pawswap/x/dex/keeper"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// Simulation operation weights constants
const (
	OpWeightMsgAddLiquidity        = "op_weight_msg_add_liquidity"
	OpWeightMsgRemoveLiquidity     = "op_weight_msg_remove_liquidity"
	OpWeightMsgSwapExactIn         = "op_weight_msg_swap_exact_in"
	OpWeightMsgSwapExactOut        = "op_weight_msg_swap_exact_out"
	OpWeightMsgBootstrapContribute = "op_weight_msg_bootstrap_contribute"
	OpWeightMsgBootstrapEnd        = "op_weight_msg_bootstrap_end"
	OpWeightMsgBootstrapClaim      = "op_weight_msg_bootstrap_claim"
	OpWeightMsgBootstrapRefund     = "op_weight_msg_bootstrap_refund"

	DefaultWeightMsgAddLiquidity        = 30
	DefaultWeightMsgRemoveLiquidity     = 20
	DefaultWeightMsgSwapExactIn         = 50
	DefaultWeightMsgSwapExactOut        = 25
	DefaultWeightMsgBootstrapContribute = 20
	DefaultWeightMsgBootstrapEnd        = 5
	DefaultWeightMsgBootstrapClaim      = 10
	DefaultWeightMsgBootstrapRefund     = 10
)

// Operation executes one random dex message through the msg server. A
// message rejected by the keeper is reported with OK false and no error;
// the error return is reserved for failures of the simulation itself.
type Operation func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error)

// WeightedOperation pairs an Operation with its selection weight.
type WeightedOperation struct {
	Weight int
	Op     Operation
}

// Simulator bundles what the operations need: the keeper, its msg server
// and the ledger holding account balances.
type Simulator struct {
	k         *keeper.Keeper
	msgServer types.MsgServer
	ledger    types.AssetLedger
}

// NewSimulator creates a Simulator over k and ledger.
func NewSimulator(k *keeper.Keeper, ledger types.AssetLedger) Simulator {
	return Simulator{
		k:         k,
		msgServer: keeper.NewMsgServerImpl(*k),
		ledger:    ledger,
	}
}

// WeightedOperations returns all the DEX module operations with their respective weights.
func (s Simulator) WeightedOperations(appParams simtypes.AppParams) []WeightedOperation {
	weight := func(key string, def int) int {
		var w int
		appParams.GetOrGenerate(key, &w, nil, func(_ *rand.Rand) { w = def })
		return w
	}

	return []WeightedOperation{
		{weight(OpWeightMsgAddLiquidity, DefaultWeightMsgAddLiquidity), s.SimulateMsgAddLiquidity()},
		{weight(OpWeightMsgRemoveLiquidity, DefaultWeightMsgRemoveLiquidity), s.SimulateMsgRemoveLiquidity()},
		{weight(OpWeightMsgSwapExactIn, DefaultWeightMsgSwapExactIn), s.SimulateMsgSwapExactIn()},
		{weight(OpWeightMsgSwapExactOut, DefaultWeightMsgSwapExactOut), s.SimulateMsgSwapExactOut()},
		{weight(OpWeightMsgBootstrapContribute, DefaultWeightMsgBootstrapContribute), s.SimulateMsgBootstrapContribute()},
		{weight(OpWeightMsgBootstrapEnd, DefaultWeightMsgBootstrapEnd), s.SimulateMsgBootstrapEnd()},
		{weight(OpWeightMsgBootstrapClaim, DefaultWeightMsgBootstrapClaim), s.SimulateMsgBootstrapClaim()},
		{weight(OpWeightMsgBootstrapRefund, DefaultWeightMsgBootstrapRefund), s.SimulateMsgBootstrapRefund()},
	}
}

// SelectOperation picks an operation with probability proportional to its weight.
func SelectOperation(r *rand.Rand, ops []WeightedOperation) Operation {
	total := 0
	for _, op := range ops {
		total += op.Weight
	}
	if total <= 0 {
		return nil
	}
	n := r.Intn(total)
	for _, op := range ops {
		if n < op.Weight {
			return op.Op
		}
		n -= op.Weight
	}
	return nil
}

func result(msgType string, err error) (simtypes.OperationMsg, error) {
	if err != nil {
		return simtypes.OperationMsg{Route: types.RouterKey, Name: msgType, Comment: err.Error()}, nil
	}
	return simtypes.OperationMsg{Route: types.RouterKey, Name: msgType, OK: true}, nil
}

func deadline(ctx sdk.Context) int64 {
	return ctx.BlockHeight() + 10
}

// randomAmount returns a value in [lo, hi] capped by limit, or zero when
// limit is below lo.
func randomAmount(r *rand.Rand, lo, hi int, limit math.Int) math.Int {
	if limit.LT(math.NewInt(int64(lo))) {
		return math.ZeroInt()
	}
	amount := math.NewInt(int64(simtypes.RandIntBetween(r, lo, hi+1)))
	return math.MinInt(amount, limit)
}

type pairStatus struct {
	pair   types.Pair
	status types.PairStatus
}

func (s Simulator) pairsWith(ctx sdk.Context, keep func(types.PairStatus) bool) ([]pairStatus, error) {
	var pairs []pairStatus
	err := s.k.IteratePairStatuses(ctx, func(pair types.Pair, status types.PairStatus) bool {
		if keep(status) {
			pairs = append(pairs, pairStatus{pair, status})
		}
		return false
	})
	return pairs, err
}

func isTrading(status types.PairStatus) bool {
	_, ok := status.(types.Trading)
	return ok
}

func isBootstrap(status types.PairStatus) bool {
	_, ok := status.(types.Bootstrap)
	return ok
}

type contribution struct {
	pair types.Pair
	who  sdk.AccAddress
}

func (s Simulator) contributions(ctx sdk.Context) ([]contribution, error) {
	var out []contribution
	err := s.k.IterateContributions(ctx, func(pair types.Pair, who sdk.AccAddress, _ types.Supply) bool {
		out = append(out, contribution{pair, who})
		return false
	})
	return out, err
}

// SimulateMsgAddLiquidity generates a MsgAddLiquidity with random values
func (s Simulator) SimulateMsgAddLiquidity() Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error) {
		pairs, err := s.pairsWith(ctx, isTrading)
		if err != nil {
			return simtypes.OperationMsg{}, err
		}
		if len(pairs) == 0 {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgAddLiquidity, "no trading pairs"), nil
		}
		simAccount, _ := simtypes.RandomAcc(r, accs)
		pair := pairs[r.Intn(len(pairs))].pair

		amount0 := randomAmount(r, 100, 10000, s.ledger.BalanceOf(ctx, pair.Asset0, simAccount.Address))
		amount1 := randomAmount(r, 100, 10000, s.ledger.BalanceOf(ctx, pair.Asset1, simAccount.Address))
		if amount0.IsZero() || amount1.IsZero() {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgAddLiquidity, "insufficient balance"), nil
		}

		_, err = s.msgServer.AddLiquidity(ctx, &types.MsgAddLiquidity{
			Sender:         simAccount.Address.String(),
			AssetA:         pair.Asset0,
			AssetB:         pair.Asset1,
			AmountADesired: amount0,
			AmountBDesired: amount1,
			AmountAMin:     math.ZeroInt(),
			AmountBMin:     math.ZeroInt(),
			Deadline:       deadline(ctx),
		})
		return result(types.TypeMsgAddLiquidity, err)
	}
}

// SimulateMsgRemoveLiquidity generates a MsgRemoveLiquidity with random values
func (s Simulator) SimulateMsgRemoveLiquidity() Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error) {
		pairs, err := s.pairsWith(ctx, isTrading)
		if err != nil {
			return simtypes.OperationMsg{}, err
		}
		if len(pairs) == 0 {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgRemoveLiquidity, "no trading pairs"), nil
		}
		simAccount, _ := simtypes.RandomAcc(r, accs)
		pair := pairs[r.Intn(len(pairs))].pair

		shares := s.ledger.BalanceOf(ctx, pair.LPDenom(), simAccount.Address)
		if !shares.IsPositive() {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgRemoveLiquidity, "no liquidity"), nil
		}
		// Remove a random portion, at most half of the holding.
		liquidity := shares.QuoRaw(int64(simtypes.RandIntBetween(r, 2, 11)))
		if liquidity.IsZero() {
			liquidity = shares
		}

		_, err = s.msgServer.RemoveLiquidity(ctx, &types.MsgRemoveLiquidity{
			Sender:     simAccount.Address.String(),
			AssetA:     pair.Asset0,
			AssetB:     pair.Asset1,
			Liquidity:  liquidity,
			AmountAMin: math.ZeroInt(),
			AmountBMin: math.ZeroInt(),
			Recipient:  simAccount.Address.String(),
			Deadline:   deadline(ctx),
		})
		return result(types.TypeMsgRemoveLiquidity, err)
	}
}

func randomDirection(r *rand.Rand, pair types.Pair) (assetIn, assetOut string) {
	if r.Intn(2) == 0 {
		return pair.Asset0, pair.Asset1
	}
	return pair.Asset1, pair.Asset0
}

// SimulateMsgSwapExactIn generates a MsgSwapExactAssetsForAssets with random values
func (s Simulator) SimulateMsgSwapExactIn() Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error) {
		pairs, err := s.pairsWith(ctx, isTrading)
		if err != nil {
			return simtypes.OperationMsg{}, err
		}
		if len(pairs) == 0 {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgSwapExactAssetsForAssets, "no trading pairs"), nil
		}
		simAccount, _ := simtypes.RandomAcc(r, accs)
		assetIn, assetOut := randomDirection(r, pairs[r.Intn(len(pairs))].pair)

		amountIn := randomAmount(r, 10, 1000, s.ledger.BalanceOf(ctx, assetIn, simAccount.Address))
		if amountIn.IsZero() {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgSwapExactAssetsForAssets, "insufficient balance"), nil
		}

		_, err = s.msgServer.SwapExactAssetsForAssets(ctx, &types.MsgSwapExactAssetsForAssets{
			Sender:       simAccount.Address.String(),
			AmountIn:     amountIn,
			AmountOutMin: math.ZeroInt(),
			Path:         []string{assetIn, assetOut},
			Recipient:    simAccount.Address.String(),
			Deadline:     deadline(ctx),
		})
		return result(types.TypeMsgSwapExactAssetsForAssets, err)
	}
}

// SimulateMsgSwapExactOut generates a MsgSwapAssetsForExactAssets with random values
func (s Simulator) SimulateMsgSwapExactOut() Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error) {
		pairs, err := s.pairsWith(ctx, isTrading)
		if err != nil {
			return simtypes.OperationMsg{}, err
		}
		if len(pairs) == 0 {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgSwapAssetsForExactAssets, "no trading pairs"), nil
		}
		simAccount, _ := simtypes.RandomAcc(r, accs)
		pair := pairs[r.Intn(len(pairs))].pair
		assetIn, assetOut := randomDirection(r, pair)

		reserve0, reserveOut := s.k.GetReserves(ctx, pair)
		if assetOut == pair.Asset0 {
			reserveOut = reserve0
		}
		amountOut := randomAmount(r, 1, 1000, reserveOut.QuoRaw(10))
		if amountOut.IsZero() {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgSwapAssetsForExactAssets, "reserve too small"), nil
		}
		maxIn := s.ledger.BalanceOf(ctx, assetIn, simAccount.Address)
		if !maxIn.IsPositive() {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgSwapAssetsForExactAssets, "insufficient balance"), nil
		}

		_, err = s.msgServer.SwapAssetsForExactAssets(ctx, &types.MsgSwapAssetsForExactAssets{
			Sender:      simAccount.Address.String(),
			AmountOut:   amountOut,
			AmountInMax: maxIn,
			Path:        []string{assetIn, assetOut},
			Recipient:   simAccount.Address.String(),
			Deadline:    deadline(ctx),
		})
		return result(types.TypeMsgSwapAssetsForExactAssets, err)
	}
}

// SimulateMsgBootstrapContribute generates a MsgBootstrapContribute with random values
func (s Simulator) SimulateMsgBootstrapContribute() Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error) {
		pairs, err := s.pairsWith(ctx, isBootstrap)
		if err != nil {
			return simtypes.OperationMsg{}, err
		}
		if len(pairs) == 0 {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgBootstrapContribute, "no bootstraps"), nil
		}
		simAccount, _ := simtypes.RandomAcc(r, accs)
		pair := pairs[r.Intn(len(pairs))].pair

		amount0 := randomAmount(r, 0, 5000, s.ledger.BalanceOf(ctx, pair.Asset0, simAccount.Address))
		amount1 := randomAmount(r, 0, 5000, s.ledger.BalanceOf(ctx, pair.Asset1, simAccount.Address))
		if amount0.IsZero() && amount1.IsZero() {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgBootstrapContribute, "nothing to contribute"), nil
		}

		_, err = s.msgServer.BootstrapContribute(ctx, &types.MsgBootstrapContribute{
			Sender:   simAccount.Address.String(),
			AssetA:   pair.Asset0,
			AssetB:   pair.Asset1,
			AmountA:  amount0,
			AmountB:  amount1,
			Deadline: deadline(ctx),
		})
		return result(types.TypeMsgBootstrapContribute, err)
	}
}

// SimulateMsgBootstrapEnd ends a random bootstrap that has qualified
func (s Simulator) SimulateMsgBootstrapEnd() Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error) {
		pairs, err := s.pairsWith(ctx, func(status types.PairStatus) bool {
			b, ok := status.(types.Bootstrap)
			return ok && b.Parameter.Qualified(ctx.BlockHeight())
		})
		if err != nil {
			return simtypes.OperationMsg{}, err
		}
		if len(pairs) == 0 {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgBootstrapEnd, "no qualified bootstraps"), nil
		}
		simAccount, _ := simtypes.RandomAcc(r, accs)
		pair := pairs[r.Intn(len(pairs))].pair

		_, err = s.msgServer.BootstrapEnd(ctx, &types.MsgBootstrapEnd{
			Sender: simAccount.Address.String(),
			AssetA: pair.Asset0,
			AssetB: pair.Asset1,
		})
		return result(types.TypeMsgBootstrapEnd, err)
	}
}

// SimulateMsgBootstrapClaim claims a random contribution to an ended bootstrap
func (s Simulator) SimulateMsgBootstrapClaim() Operation {
	return func(r *rand.Rand, ctx sdk.Context, _ []simtypes.Account) (simtypes.OperationMsg, error) {
		all, err := s.contributions(ctx)
		if err != nil {
			return simtypes.OperationMsg{}, err
		}
		var claimable []contribution
		for _, c := range all {
			status, err := s.k.GetPairStatus(ctx, c.pair)
			if err != nil {
				return simtypes.OperationMsg{}, err
			}
			if isTrading(status) {
				claimable = append(claimable, c)
			}
		}
		if len(claimable) == 0 {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgBootstrapClaim, "nothing to claim"), nil
		}
		c := claimable[r.Intn(len(claimable))]

		_, err = s.msgServer.BootstrapClaim(ctx, &types.MsgBootstrapClaim{
			Sender:    c.who.String(),
			Recipient: c.who.String(),
			AssetA:    c.pair.Asset0,
			AssetB:    c.pair.Asset1,
			Deadline:  deadline(ctx),
		})
		return result(types.TypeMsgBootstrapClaim, err)
	}
}

// SimulateMsgBootstrapRefund refunds a random contribution to an expired bootstrap
func (s Simulator) SimulateMsgBootstrapRefund() Operation {
	return func(r *rand.Rand, ctx sdk.Context, _ []simtypes.Account) (simtypes.OperationMsg, error) {
		all, err := s.contributions(ctx)
		if err != nil {
			return simtypes.OperationMsg{}, err
		}
		var refundable []contribution
		for _, c := range all {
			status, err := s.k.GetPairStatus(ctx, c.pair)
			if err != nil {
				return simtypes.OperationMsg{}, err
			}
			if b, ok := status.(types.Bootstrap); ok && b.Parameter.Disabled(ctx.BlockHeight()) {
				refundable = append(refundable, c)
			}
		}
		if len(refundable) == 0 {
			return simtypes.NoOpMsg(types.ModuleName, types.TypeMsgBootstrapRefund, "nothing to refund"), nil
		}
		c := refundable[r.Intn(len(refundable))]

		_, err = s.msgServer.BootstrapRefund(ctx, &types.MsgBootstrapRefund{
			Sender: c.who.String(),
			AssetA: c.pair.Asset0,
			AssetB: c.pair.Asset1,
		})
		return result(types.TypeMsgBootstrapRefund, err)
	}
}
