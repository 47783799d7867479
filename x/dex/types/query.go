package types

import (
	"context"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/query"
)

// QueryParamsRequest asks for the module parameters.
type QueryParamsRequest struct{}

// QueryParamsResponse carries the module parameters.
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryPairRequest names a pair in caller order.
type QueryPairRequest struct {
	AssetA string `json:"asset_a"`
	AssetB string `json:"asset_b"`
}

// QueryPairResponse describes a pair and its live reserves.
type QueryPairResponse struct {
	Status         PairStatusRecord `json:"status"`
	ReserveAccount string           `json:"reserve_account"`
	LPDenom        string           `json:"lp_denom"`
	Reserve0       math.Int         `json:"reserve_0"`
	Reserve1       math.Int         `json:"reserve_1"`
	KLast          math.Int         `json:"k_last"`
}

// QueryPairsRequest lists stored pair statuses.
type QueryPairsRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

// QueryPairsResponse carries a page of pair statuses.
type QueryPairsResponse struct {
	Pairs      []PairStatusRecord  `json:"pairs"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

// QueryBootstrapEndStatusResponse carries the snapshot taken when a
// bootstrap ended, if any.
type QueryBootstrapEndStatusResponse struct {
	Found     bool               `json:"found"`
	Parameter BootstrapParameter `json:"parameter"`
}

// QueryContributionRequest names a contributor of a pair.
type QueryContributionRequest struct {
	AssetA      string `json:"asset_a"`
	AssetB      string `json:"asset_b"`
	Contributor string `json:"contributor"`
}

// QueryContributionResponse carries a contribution in canonical order.
type QueryContributionResponse struct {
	Pair   Pair   `json:"pair"`
	Supply Supply `json:"supply"`
}

// QueryAssetAmountsResponse carries a reward or limit map.
type QueryAssetAmountsResponse struct {
	Pair    Pair         `json:"pair"`
	Entries AssetAmounts `json:"entries"`
}

// QueryFeeMetaRequest asks for the protocol fee configuration.
type QueryFeeMetaRequest struct{}

// QueryFeeMetaResponse carries the protocol fee configuration.
type QueryFeeMetaResponse struct {
	FeeMeta FeeMeta `json:"fee_meta"`
}

// QueryAmountsOutRequest quotes selling AmountIn along Path.
type QueryAmountsOutRequest struct {
	AmountIn math.Int `json:"amount_in"`
	Path     []string `json:"path"`
}

// QueryAmountsInRequest quotes buying AmountOut at the end of Path.
type QueryAmountsInRequest struct {
	AmountOut math.Int `json:"amount_out"`
	Path      []string `json:"path"`
}

// QueryAmountsResponse carries the amount at every asset of a path.
type QueryAmountsResponse struct {
	Amounts []math.Int `json:"amounts"`
}

// QueryServer is the read surface of the dex module.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Pair(context.Context, *QueryPairRequest) (*QueryPairResponse, error)
	Pairs(context.Context, *QueryPairsRequest) (*QueryPairsResponse, error)
	BootstrapEndStatus(context.Context, *QueryPairRequest) (*QueryBootstrapEndStatusResponse, error)
	Contribution(context.Context, *QueryContributionRequest) (*QueryContributionResponse, error)
	BootstrapRewards(context.Context, *QueryPairRequest) (*QueryAssetAmountsResponse, error)
	BootstrapLimits(context.Context, *QueryPairRequest) (*QueryAssetAmountsResponse, error)
	FeeMeta(context.Context, *QueryFeeMetaRequest) (*QueryFeeMetaResponse, error)
	AmountsOut(context.Context, *QueryAmountsOutRequest) (*QueryAmountsResponse, error)
	AmountsIn(context.Context, *QueryAmountsInRequest) (*QueryAmountsResponse, error)
}
