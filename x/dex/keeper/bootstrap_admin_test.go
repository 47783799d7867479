package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/dex/types"
)

func (suite *KeeperTestSuite) TestCreatePair() {
	k, ctx := suite.keeper, suite.ctx

	suite.Require().ErrorIs(k.CreatePair(ctx, bob.String(), "uatom", "uusdt"), types.ErrUnauthorized)
	suite.Require().ErrorIs(k.CreatePair(ctx, keepertest.Authority, "uatom", "uatom"), types.ErrInvalidAsset)

	suite.Require().NoError(k.CreatePair(ctx, keepertest.Authority, "uusdt", "uatom"))
	suite.Require().ErrorIs(k.CreatePair(ctx, keepertest.Authority, "uatom", "uusdt"), types.ErrPairAlreadyExists)

	pair := types.MustPair("uatom", "uusdt")
	status, err := k.GetPairStatus(ctx, pair)
	suite.Require().NoError(err)
	trading, ok := status.(types.Trading)
	suite.Require().True(ok)
	suite.Require().Equal(pair.ReserveAccount(), trading.Metadata.ReserveAccount)
	suite.Require().True(trading.Metadata.TotalSupply.IsZero())

	events := ctx.EventManager().Events()
	suite.Require().Equal(types.EventTypePairCreated, events[len(events)-1].Type)
}

func (suite *KeeperTestSuite) TestCreatePairDuringLiveBootstrap() {
	suite.Require().NoError(suite.keeper.CreateBootstrap(suite.ctx, keepertest.Authority, bootstrapConfig(10)))

	err := suite.keeper.CreatePair(suite.ctx, keepertest.Authority, "uatom", "uusdt")
	suite.Require().ErrorIs(err, types.ErrPairAlreadyExists)

	_, found, err := suite.keeper.GetBootstrapEndStatus(suite.ctx, types.MustPair("uatom", "uusdt"))
	suite.Require().NoError(err)
	suite.Require().False(found)
}

func (suite *KeeperTestSuite) TestCreateBootstrap() {
	k, ctx := suite.keeper, suite.ctx
	cfg := bootstrapConfig(10, "upaw")
	cfg.Limits = []types.AssetAmount{{Asset: "upaw", Amount: math.NewInt(7)}}

	suite.Require().ErrorIs(k.CreateBootstrap(ctx, bob.String(), cfg), types.ErrUnauthorized)

	bad := bootstrapConfig(10)
	bad.CapacityA = math.NewInt(1)
	suite.Require().ErrorIs(k.CreateBootstrap(ctx, keepertest.Authority, bad), types.ErrInvalidAmount)

	suite.Require().NoError(k.CreateBootstrap(ctx, keepertest.Authority, cfg))
	suite.Require().ErrorIs(k.CreateBootstrap(ctx, keepertest.Authority, cfg), types.ErrPairAlreadyExists)

	pair := types.MustPair("uatom", "uusdt")
	status, err := k.GetPairStatus(ctx, pair)
	suite.Require().NoError(err)
	param := status.(types.Bootstrap).Parameter
	suite.Require().Equal(int64(10), param.EndBlock)
	suite.Require().Equal(types.EscrowAccount(), param.EscrowAccount)
	suite.Require().Equal(int64(4000), param.TargetSupply.Amount1.Int64())
	suite.Require().True(param.AccumulatedSupply.IsZero())

	rewards, err := k.GetBootstrapRewards(ctx, pair)
	suite.Require().NoError(err)
	suite.Require().Len(rewards, 1)
	suite.Require().True(rewards.AllZero())

	limits, err := k.GetBootstrapLimits(ctx, pair)
	suite.Require().NoError(err)
	amount, ok := limits.Get("upaw")
	suite.Require().True(ok)
	suite.Require().Equal(int64(7), amount.Int64())

	events := ctx.EventManager().Events()
	suite.Require().Equal(types.EventTypeBootstrapCreated, events[len(events)-1].Type)
}

func (suite *KeeperTestSuite) TestCreateBootstrapOnTradingPair() {
	suite.Require().NoError(suite.keeper.CreatePair(suite.ctx, keepertest.Authority, "uatom", "uusdt"))
	err := suite.keeper.CreateBootstrap(suite.ctx, keepertest.Authority, bootstrapConfig(10))
	suite.Require().ErrorIs(err, types.ErrPairAlreadyExists)
}

func TestCreateBootstrap_OptionalRewardsAndLimits(t *testing.T) {
	limit := []types.AssetAmount{{Asset: "upaw", Amount: math.NewInt(7)}}
	tests := []struct {
		name       string
		rewards    []string
		limits     []types.AssetAmount
		numRewards int
		numLimits  int
	}{
		{name: "no rewards no limits"},
		{name: "rewards only", rewards: []string{"upaw"}, numRewards: 1},
		{name: "limits only", limits: limit, numLimits: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk := newTestKeeper(t)
			pair := types.MustPair("uatom", "uusdt")
			cfg := bootstrapConfig(10, tc.rewards...)
			cfg.Limits = tc.limits

			require.NoError(t, tk.k.CreateBootstrap(tk.ctx, keepertest.Authority, cfg))

			rewards, err := tk.k.GetBootstrapRewards(tk.ctx, pair)
			require.NoError(t, err)
			require.Len(t, rewards, tc.numRewards)
			limits, err := tk.k.GetBootstrapLimits(tk.ctx, pair)
			require.NoError(t, err)
			require.Len(t, limits, tc.numLimits)

			// the bootstrap stays fully usable
			tk.contribute(t, alice, 100, 400)
			require.NoError(t, tk.k.UpdateBootstrap(tk.ctx, keepertest.Authority, cfg))
			requireAmount(t, 100, tk.bootstrapParameter(t).AccumulatedSupply.Amount0)

			gs, err := tk.k.ExportGenesis(tk.ctx)
			require.NoError(t, err)
			require.Len(t, gs.BootstrapRewards, tc.numRewards)
			require.Len(t, gs.BootstrapLimits, tc.numLimits)
		})
	}
}

func TestCreateBootstrap_ReplacesExpiredRound(t *testing.T) {
	tk := newBootstrapKeeper(t, bootstrapConfig(10, "upaw"))
	tk.contribute(t, alice, 500, 300)
	expired := tk.ctx.WithBlockHeight(11)

	keepertest.Fund(t, tk.ledger, tk.ctx, dave, "upaw", 50)
	require.NoError(t, tk.k.BootstrapChargeReward(tk.ctx, dave, "uatom", "uusdt",
		[]types.AssetAmount{{Asset: "upaw", Amount: math.NewInt(50)}}))

	// pledged rewards must be withdrawn before the round is replaced
	err := tk.k.CreateBootstrap(expired, keepertest.Authority, bootstrapConfig(20, "upaw"))
	require.ErrorIs(t, err, types.ErrExistRewardsInBootstrap)

	require.NoError(t, tk.k.BootstrapWithdrawReward(expired, keepertest.Authority, "uatom", "uusdt", dave))
	requireAmount(t, 50, tk.ledger.BalanceOf(expired, "upaw", dave))

	require.NoError(t, tk.k.CreateBootstrap(expired, keepertest.Authority, bootstrapConfig(20, "upaw")))
	param := tk.bootstrapParameter(t)
	require.Equal(t, int64(20), param.EndBlock)
	requireAmount(t, 500, param.AccumulatedSupply.Amount0, "accumulated supply carries over")
	requireAmount(t, 300, param.AccumulatedSupply.Amount1)
}

func TestUpdateBootstrap(t *testing.T) {
	tk := newTestKeeper(t)
	pair := types.MustPair("uatom", "uusdt")

	err := tk.k.UpdateBootstrap(tk.ctx, keepertest.Authority, bootstrapConfig(10))
	require.ErrorIs(t, err, types.ErrNotInBootstrap)

	require.NoError(t, tk.k.CreateBootstrap(tk.ctx, keepertest.Authority, bootstrapConfig(10, "upaw")))
	tk.contribute(t, alice, 500, 300)
	keepertest.Fund(t, tk.ledger, tk.ctx, dave, "upaw", 300)
	require.NoError(t, tk.k.BootstrapChargeReward(tk.ctx, dave, "uatom", "uusdt",
		[]types.AssetAmount{{Asset: "upaw", Amount: math.NewInt(300)}}))

	require.ErrorIs(t, tk.k.UpdateBootstrap(tk.ctx, bob.String(), bootstrapConfig(30)), types.ErrUnauthorized)

	// pending rewards block any reconfiguration, even one keeping the asset
	for _, cfg := range []types.BootstrapConfig{
		bootstrapConfig(30, "upaw"),
		bootstrapConfig(30, "uosmo"),
		bootstrapConfig(30, "upaw", "uosmo"),
	} {
		err = tk.k.UpdateBootstrap(tk.ctx, keepertest.Authority, cfg)
		require.ErrorIs(t, err, types.ErrExistRewardsInBootstrap)
	}
	require.Equal(t, int64(10), tk.bootstrapParameter(t).EndBlock)

	require.NoError(t, tk.k.BootstrapWithdrawReward(tk.ctx, keepertest.Authority, "uatom", "uusdt", dave))
	require.NoError(t, tk.k.UpdateBootstrap(tk.ctx, keepertest.Authority, bootstrapConfig(30, "upaw", "uosmo")))

	param := tk.bootstrapParameter(t)
	require.Equal(t, int64(30), param.EndBlock)
	requireAmount(t, 500, param.AccumulatedSupply.Amount0)
	requireAmount(t, 300, param.AccumulatedSupply.Amount1)

	rewards, err := tk.k.GetBootstrapRewards(tk.ctx, pair)
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	require.True(t, rewards.AllZero())
	_, ok := rewards.Get("uosmo")
	require.True(t, ok)

	// capacity may not drop below what was already accumulated
	shrunk := bootstrapConfig(30, "upaw", "uosmo")
	shrunk.TargetA, shrunk.CapacityA = math.NewInt(100), math.NewInt(100)
	require.ErrorIs(t, tk.k.UpdateBootstrap(tk.ctx, keepertest.Authority, shrunk), types.ErrInvalidAmount)

	require.NoError(t, tk.k.CreatePair(tk.ctx.WithBlockHeight(31), keepertest.Authority, "uatom", "uusdt"))
	err = tk.k.UpdateBootstrap(tk.ctx, keepertest.Authority, bootstrapConfig(40, "upaw", "uosmo"))
	require.ErrorIs(t, err, types.ErrPairAlreadyExists)
}

func TestBootstrapChargeReward(t *testing.T) {
	tk := newBootstrapKeeper(t, bootstrapConfig(10, "upaw", "uosmo"))
	pair := types.MustPair("uatom", "uusdt")
	keepertest.Fund(t, tk.ledger, tk.ctx, dave, "upaw", 200)
	keepertest.Fund(t, tk.ledger, tk.ctx, dave, "uosmo", 200)

	tests := []struct {
		name    string
		rewards []types.AssetAmount
		errType error
	}{
		{
			name:    "missing reward asset",
			rewards: []types.AssetAmount{{Asset: "upaw", Amount: math.NewInt(10)}},
			errType: types.ErrChargeRewardParams,
		},
		{
			name: "unknown reward asset",
			rewards: []types.AssetAmount{
				{Asset: "upaw", Amount: math.NewInt(10)},
				{Asset: "uatom", Amount: math.NewInt(10)},
			},
			errType: types.ErrNoRewardTokens,
		},
		{
			name: "unfunded charge",
			rewards: []types.AssetAmount{
				{Asset: "upaw", Amount: math.NewInt(10)},
				{Asset: "uosmo", Amount: math.NewInt(201)},
			},
			errType: types.ErrInsufficientAssetBalance,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tk.k.BootstrapChargeReward(tk.ctx, dave, "uatom", "uusdt", tc.rewards)
			require.ErrorIs(t, err, tc.errType)
		})
	}
	requireAmount(t, 200, tk.ledger.BalanceOf(tk.ctx, "upaw", dave), "failed charges move nothing")

	charge := []types.AssetAmount{
		{Asset: "uosmo", Amount: math.NewInt(40)},
		{Asset: "upaw", Amount: math.NewInt(60)},
	}
	require.NoError(t, tk.k.BootstrapChargeReward(tk.ctx, dave, "uusdt", "uatom", charge))
	require.NoError(t, tk.k.BootstrapChargeReward(tk.ctx, dave, "uusdt", "uatom", charge))

	rewards, err := tk.k.GetBootstrapRewards(tk.ctx, pair)
	require.NoError(t, err)
	upaw, _ := rewards.Get("upaw")
	uosmo, _ := rewards.Get("uosmo")
	requireAmount(t, 120, upaw)
	requireAmount(t, 80, uosmo)
	requireAmount(t, 120, tk.ledger.BalanceOf(tk.ctx, "upaw", types.EscrowAccount()))
}

func TestBootstrapWithdrawReward(t *testing.T) {
	tk := newBootstrapKeeper(t, bootstrapConfig(10, "upaw"))
	pair := types.MustPair("uatom", "uusdt")
	keepertest.Fund(t, tk.ledger, tk.ctx, dave, "upaw", 100)
	require.NoError(t, tk.k.BootstrapChargeReward(tk.ctx, dave, "uatom", "uusdt",
		[]types.AssetAmount{{Asset: "upaw", Amount: math.NewInt(100)}}))

	err := tk.k.BootstrapWithdrawReward(tk.ctx, dave.String(), "uatom", "uusdt", dave)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	require.NoError(t, tk.k.BootstrapWithdrawReward(tk.ctx, keepertest.Authority, "uatom", "uusdt", carol))
	requireAmount(t, 100, tk.ledger.BalanceOf(tk.ctx, "upaw", carol))

	rewards, err := tk.k.GetBootstrapRewards(tk.ctx, pair)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	require.True(t, rewards.AllZero())

	events := tk.ctx.EventManager().Events()
	require.Equal(t, types.EventTypeWithdrawReward, events[len(events)-1].Type)
}
