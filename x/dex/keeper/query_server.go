package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/paw-chain/pawswap/x/dex/types"
)

type queryServer struct {
	Keeper
}

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 1000
)

// NewQueryServerImpl returns an implementation of the dex QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

func requestPair(assetA, assetB string) (types.Pair, error) {
	pair, err := types.NewPair(assetA, assetB)
	if err != nil {
		return types.Pair{}, status.Error(codes.InvalidArgument, err.Error())
	}
	return pair, nil
}

// Params returns the module parameters
func (qs queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	params, err := qs.Keeper.GetParams(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Params: get params: %w", err)
	}
	return &types.QueryParamsResponse{Params: params}, nil
}

// Pair returns the status, accounts and reserves of a pair
func (qs queryServer) Pair(goCtx context.Context, req *types.QueryPairRequest) (*types.QueryPairResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	pair, err := requestPair(req.AssetA, req.AssetB)
	if err != nil {
		return nil, err
	}

	pairStatus, err := qs.Keeper.GetPairStatus(goCtx, pair)
	if err != nil {
		return nil, fmt.Errorf("Pair: %w", err)
	}
	kLast, err := qs.Keeper.GetKLast(goCtx, pair)
	if err != nil {
		return nil, fmt.Errorf("Pair: %w", err)
	}
	reserve0, reserve1 := qs.Keeper.GetReserves(goCtx, pair)

	return &types.QueryPairResponse{
		Status:         types.NewPairStatusRecord(pair, pairStatus),
		ReserveAccount: pair.ReserveAccount().String(),
		LPDenom:        pair.LPDenom(),
		Reserve0:       reserve0,
		Reserve1:       reserve1,
		KLast:          kLast,
	}, nil
}

// Pairs returns stored pair statuses with pagination
func (qs queryServer) Pairs(goCtx context.Context, req *types.QueryPairsRequest) (*types.QueryPairsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	if req.Pagination == nil {
		req.Pagination = &query.PageRequest{Limit: defaultPaginationLimit}
	} else {
		if req.Pagination.Limit == 0 {
			req.Pagination.Limit = defaultPaginationLimit
		}
		if req.Pagination.Limit > maxPaginationLimit {
			req.Pagination.Limit = maxPaginationLimit
		}
	}

	store := prefix.NewStore(qs.Keeper.getStore(goCtx), PairStatusKeyPrefix)
	var pairs []types.PairStatusRecord
	pageRes, err := query.Paginate(store, req.Pagination, func(key []byte, value []byte) error {
		pair, _, ok := splitPairKey(key)
		if !ok {
			return fmt.Errorf("malformed pair key %X", key)
		}
		var rec types.PairStatusRecord
		if err := qs.Keeper.unmarshal(value, &rec); err != nil {
			return err
		}
		rec.Pair = pair
		pairs = append(pairs, rec)
		return nil
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryPairsResponse{
		Pairs:      pairs,
		Pagination: pageRes,
	}, nil
}

// BootstrapEndStatus returns the snapshot taken when a pair's bootstrap ended
func (qs queryServer) BootstrapEndStatus(goCtx context.Context, req *types.QueryPairRequest) (*types.QueryBootstrapEndStatusResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	pair, err := requestPair(req.AssetA, req.AssetB)
	if err != nil {
		return nil, err
	}

	param, found, err := qs.Keeper.GetBootstrapEndStatus(goCtx, pair)
	if err != nil {
		return nil, fmt.Errorf("BootstrapEndStatus: %w", err)
	}
	return &types.QueryBootstrapEndStatusResponse{Found: found, Parameter: param}, nil
}

// Contribution returns an account's pledge to a pair
func (qs queryServer) Contribution(goCtx context.Context, req *types.QueryContributionRequest) (*types.QueryContributionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	pair, err := requestPair(req.AssetA, req.AssetB)
	if err != nil {
		return nil, err
	}
	contributor, err := sdk.AccAddressFromBech32(req.Contributor)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid contributor address")
	}

	supply, _, err := qs.Keeper.GetContribution(goCtx, pair, contributor)
	if err != nil {
		return nil, fmt.Errorf("Contribution: %w", err)
	}
	return &types.QueryContributionResponse{Pair: pair, Supply: supply}, nil
}

// BootstrapRewards returns the reward map of a pair
func (qs queryServer) BootstrapRewards(goCtx context.Context, req *types.QueryPairRequest) (*types.QueryAssetAmountsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	pair, err := requestPair(req.AssetA, req.AssetB)
	if err != nil {
		return nil, err
	}

	rewards, err := qs.Keeper.GetBootstrapRewards(goCtx, pair)
	if err != nil {
		return nil, err
	}
	return &types.QueryAssetAmountsResponse{Pair: pair, Entries: rewards}, nil
}

// BootstrapLimits returns the contributor limits of a pair
func (qs queryServer) BootstrapLimits(goCtx context.Context, req *types.QueryPairRequest) (*types.QueryAssetAmountsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	pair, err := requestPair(req.AssetA, req.AssetB)
	if err != nil {
		return nil, err
	}

	limits, err := qs.Keeper.GetBootstrapLimits(goCtx, pair)
	if err != nil {
		return nil, err
	}
	return &types.QueryAssetAmountsResponse{Pair: pair, Entries: limits}, nil
}

// FeeMeta returns the protocol fee configuration
func (qs queryServer) FeeMeta(goCtx context.Context, req *types.QueryFeeMetaRequest) (*types.QueryFeeMetaResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	meta, err := qs.Keeper.GetFeeMeta(goCtx)
	if err != nil {
		return nil, fmt.Errorf("FeeMeta: %w", err)
	}
	return &types.QueryFeeMetaResponse{FeeMeta: meta}, nil
}

// AmountsOut quotes an exact-input swap
func (qs queryServer) AmountsOut(goCtx context.Context, req *types.QueryAmountsOutRequest) (*types.QueryAmountsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	if req.AmountIn.IsNil() || !req.AmountIn.IsPositive() {
		return nil, status.Error(codes.InvalidArgument, "amount in must be positive")
	}

	amounts, err := qs.Keeper.GetAmountOutByPath(goCtx, req.AmountIn, req.Path)
	if err != nil {
		return nil, fmt.Errorf("AmountsOut: %w", err)
	}
	return &types.QueryAmountsResponse{Amounts: amounts}, nil
}

// AmountsIn quotes an exact-output swap
func (qs queryServer) AmountsIn(goCtx context.Context, req *types.QueryAmountsInRequest) (*types.QueryAmountsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	if req.AmountOut.IsNil() || !req.AmountOut.IsPositive() {
		return nil, status.Error(codes.InvalidArgument, "amount out must be positive")
	}

	amounts, err := qs.Keeper.GetAmountInByPath(goCtx, req.AmountOut, req.Path)
	if err != nil {
		return nil, fmt.Errorf("AmountsIn: %w", err)
	}
	return &types.QueryAmountsResponse{Amounts: amounts}, nil
}
