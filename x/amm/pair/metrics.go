package pair

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/pawswap/x/amm/pool"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// Metrics holds the Prometheus metrics of the pair code
type Metrics struct {
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	CommissionTotal   *prometheus.CounterVec
	OperatorFeesTotal *prometheus.CounterVec
	LiquidityAdded    *prometheus.CounterVec
	LiquidityRemoved  *prometheus.CounterVec
	LiquidityDonated  *prometheus.CounterVec
	PoolReserves      *prometheus.GaugeVec
	PoolTotalShares   *prometheus.GaugeVec
}

var (
	pairMetricsOnce sync.Once
	pairMetrics     *Metrics
)

// NewMetrics creates and registers pair metrics (singleton pattern)
func NewMetrics() *Metrics {
	pairMetricsOnce.Do(func() {
		pairMetrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pair",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pair", "offer_asset", "ask_asset"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pair",
					Name:      "swap_volume_total",
					Help:      "Total offered amount in base units",
				},
				[]string{"pair", "asset"},
			),
			CommissionTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pair",
					Name:      "commission_total",
					Help:      "Commission retained by pools in base units",
				},
				[]string{"pair", "asset"},
			),
			OperatorFeesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pair",
					Name:      "operator_fees_total",
					Help:      "Operator fees paid out in base units",
				},
				[]string{"pair", "asset"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pair",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity deposited",
				},
				[]string{"pair", "asset"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pair",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity withdrawn",
				},
				[]string{"pair", "asset"},
			),
			LiquidityDonated: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pair",
					Name:      "liquidity_donated_total",
					Help:      "Deposits above the proportional requirement",
				},
				[]string{"pair", "asset"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "pair",
					Name:      "pool_reserves",
					Help:      "Current tracked reserves",
				},
				[]string{"pair", "asset"},
			),
			PoolTotalShares: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "pair",
					Name:      "pool_total_shares",
					Help:      "Outstanding share supply",
				},
				[]string{"pair"},
			),
		}
	})
	return pairMetrics
}

// toFloat converts without the int64 limit of math.Int.Int64.
func toFloat(v math.Int) float64 {
	if v.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}

func (m *Metrics) setPool(pair string, infos [2]types.AssetInfo, st PoolState) {
	for i, info := range infos {
		m.PoolReserves.WithLabelValues(pair, info.String()).Set(toFloat(st.Reserves[i]))
	}
	m.PoolTotalShares.WithLabelValues(pair).Set(toFloat(st.TotalShares))
}

func (m *Metrics) recordSwap(pair string, offer types.Asset, ask types.AssetInfo, res pool.SwapResult, st PoolState, cfg *Config) {
	if m == nil {
		return
	}
	m.SwapsTotal.WithLabelValues(pair, offer.Info.String(), ask.String()).Inc()
	m.SwapVolume.WithLabelValues(pair, offer.Info.String()).Add(toFloat(offer.Amount))
	m.CommissionTotal.WithLabelValues(pair, ask.String()).Add(toFloat(res.CommissionAmount))
	m.OperatorFeesTotal.WithLabelValues(pair, ask.String()).Add(toFloat(res.OperatorFeeAmount))
	m.setPool(pair, cfg.AssetInfos, st)
}

func (m *Metrics) recordProvide(pair string, deposits [2]types.Asset, donated [2]math.Int, st PoolState) {
	if m == nil {
		return
	}
	for i, a := range deposits {
		m.LiquidityAdded.WithLabelValues(pair, a.Info.String()).Add(toFloat(a.Amount))
		m.LiquidityDonated.WithLabelValues(pair, a.Info.String()).Add(toFloat(donated[i]))
	}
	m.setPool(pair, [2]types.AssetInfo{deposits[0].Info, deposits[1].Info}, st)
}

func (m *Metrics) recordWithdraw(pair string, refunds [2]types.Asset, st PoolState) {
	if m == nil {
		return
	}
	for _, a := range refunds {
		m.LiquidityRemoved.WithLabelValues(pair, a.Info.String()).Add(toFloat(a.Amount))
	}
	m.setPool(pair, [2]types.AssetInfo{refunds[0].Info, refunds[1].Info}, st)
}
