package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DEXMetrics holds all Prometheus metrics for the DEX module
type DEXMetrics struct {
	// Swap metrics
	SwapsTotal          *prometheus.CounterVec
	SwapVolume          *prometheus.CounterVec
	SwapHops            prometheus.Histogram
	OriginFeesCollected *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded    *prometheus.CounterVec
	LiquidityRemoved  *prometheus.CounterVec
	PairReserves      *prometheus.GaugeVec
	LPTokenSupply     *prometheus.GaugeVec
	ProtocolFeeMinted *prometheus.CounterVec

	// Pair lifecycle metrics
	PairTransitions *prometheus.CounterVec

	// Bootstrap metrics
	BootstrapContributions *prometheus.CounterVec
	BootstrapClaims        *prometheus.CounterVec
	BootstrapRefunds       *prometheus.CounterVec
	RewardsDistributed     *prometheus.CounterVec
}

var (
	dexMetricsOnce sync.Once
	dexMetrics     *DEXMetrics
)

// NewDEXMetrics creates and registers DEX metrics (singleton pattern)
func NewDEXMetrics() *DEXMetrics {
	dexMetricsOnce.Do(func() {
		dexMetrics = &DEXMetrics{
			// Swap metrics
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "swaps_total",
					Help:      "Total number of path swaps executed",
				},
				[]string{"asset_in", "asset_out", "kind"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"denom"},
			),
			SwapHops: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "swap_hops",
					Help:      "Number of pairs crossed per swap",
					Buckets:   []float64{1, 2, 3, 4, 5, 8},
				},
			),
			OriginFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "origin_fees_collected_total",
					Help:      "Native-asset swap fees sent to the pot account",
				},
				[]string{"denom"},
			),

			// Liquidity metrics
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pairs",
				},
				[]string{"pair", "denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from pairs",
				},
				[]string{"pair", "denom"},
			),
			PairReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "pair_reserves",
					Help:      "Current pair reserves",
				},
				[]string{"pair", "denom"},
			),
			LPTokenSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "lp_token_supply",
					Help:      "Total LP token supply per pair",
				},
				[]string{"pair"},
			),
			ProtocolFeeMinted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "protocol_fee_minted_total",
					Help:      "LP shares minted to the protocol fee receiver",
				},
				[]string{"pair"},
			),

			// Pair lifecycle metrics
			PairTransitions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "pair_transitions_total",
					Help:      "Pair status transitions",
				},
				[]string{"from", "to"},
			),

			// Bootstrap metrics
			BootstrapContributions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "bootstrap_contributions_total",
					Help:      "Assets contributed to bootstraps",
				},
				[]string{"pair", "denom"},
			),
			BootstrapClaims: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "bootstrap_claims_total",
					Help:      "Bootstrap LP claims",
				},
				[]string{"pair"},
			),
			BootstrapRefunds: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "bootstrap_refunds_total",
					Help:      "Bootstrap contribution refunds",
				},
				[]string{"pair"},
			),
			RewardsDistributed: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "dex",
					Name:      "bootstrap_rewards_distributed_total",
					Help:      "Bootstrap rewards paid to contributors",
				},
				[]string{"denom"},
			),
		}
	})
	return dexMetrics
}

// GetDEXMetrics returns the singleton DEX metrics instance
func GetDEXMetrics() *DEXMetrics {
	if dexMetrics == nil {
		return NewDEXMetrics()
	}
	return dexMetrics
}

// toFloat converts a balance for metric reporting; precision loss is acceptable.
func toFloat(amount math.Int) float64 {
	if amount.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
