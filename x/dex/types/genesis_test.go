package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/dex/types"
)

func TestGenesisState_Validate(t *testing.T) {
	pair := types.MustPair("upaw", "uusdt")
	trading := types.NewPairStatusRecord(pair, types.Trading{
		Metadata: types.PairMetadata{ReserveAccount: pair.ReserveAccount(), TotalSupply: math.ZeroInt()},
	})
	bootstrap := types.NewPairStatusRecord(pair, types.Bootstrap{Parameter: bootstrapParam(100, 100, 0, 0, 10)})

	tests := []struct {
		name     string
		genState *types.GenesisState
		valid    bool
	}{
		{
			name:     "default is valid",
			genState: types.DefaultGenesis(),
			valid:    true,
		},
		{
			name: "valid genesis state",
			genState: &types.GenesisState{
				Params:               types.DefaultParams(),
				FeeMeta:              types.FeeMeta{FeeReceiver: types.PotAccount(), FeePoint: 5},
				PairStatuses:         []types.PairStatusRecord{trading},
				BootstrapEndStatuses: []types.PairStatusRecord{bootstrap},
				Contributions: []types.ContributionRecord{{
					Pair:        pair,
					Contributor: types.TestAddr(),
					Supply:      types.NewSupply(math.NewInt(10), math.ZeroInt()),
				}},
				KLasts: []types.KLastRecord{{Pair: pair, KLast: "100"}},
			},
			valid: true,
		},
		{
			name: "duplicate pair status",
			genState: &types.GenesisState{
				Params:       types.DefaultParams(),
				PairStatuses: []types.PairStatusRecord{trading, trading},
			},
			valid: false,
		},
		{
			name: "fee point above maximum",
			genState: &types.GenesisState{
				Params:  types.DefaultParams(),
				FeeMeta: types.FeeMeta{FeePoint: types.MaxFeePoint + 1},
			},
			valid: false,
		},
		{
			name: "invalid params",
			genState: &types.GenesisState{
				Params: types.Params{NativeDenom: "", MaxPathLength: types.DefaultMaxPathLength},
			},
			valid: false,
		},
		{
			name: "end status must be a bootstrap",
			genState: &types.GenesisState{
				Params:               types.DefaultParams(),
				BootstrapEndStatuses: []types.PairStatusRecord{trading},
			},
			valid: false,
		},
		{
			name: "bad contributor",
			genState: &types.GenesisState{
				Params: types.DefaultParams(),
				Contributions: []types.ContributionRecord{{
					Pair:        pair,
					Contributor: "invalid",
					Supply:      types.NewSupply(math.NewInt(10), math.ZeroInt()),
				}},
			},
			valid: false,
		},
		{
			name: "negative contribution",
			genState: &types.GenesisState{
				Params: types.DefaultParams(),
				Contributions: []types.ContributionRecord{{
					Pair:        pair,
					Contributor: types.TestAddr(),
					Supply:      types.NewSupply(math.NewInt(-1), math.ZeroInt()),
				}},
			},
			valid: false,
		},
		{
			name: "unordered pair",
			genState: &types.GenesisState{
				Params:       types.DefaultParams(),
				PairStatuses: []types.PairStatusRecord{{Pair: types.Pair{Asset0: "uusdt", Asset1: "upaw"}}},
			},
			valid: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.genState.Validate()
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	params := types.DefaultParams()
	require.Equal(t, types.DefaultNativeDenom, params.NativeDenom)
	require.Equal(t, types.DefaultMaxPathLength, params.MaxPathLength)
	require.NoError(t, params.Validate())
}
