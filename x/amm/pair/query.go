package pair

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/pool"
	"github.com/paw-chain/pawswap/x/amm/types"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

func (Contract) Query(deps contractstypes.Deps, env contractstypes.Env, msg []byte) ([]byte, error) {
	var m types.PairQueryMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	variant, err := m.Variant()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return nil, err
	}

	switch q := variant.(type) {
	case *types.PairInfoQuery:
		self, err := deps.API.AddrHumanize(env.Contract)
		if err != nil {
			return nil, err
		}
		return types.EncodeMsg(types.PairInfo{
			AssetInfos:     cfg.AssetInfos,
			ContractAddr:   self,
			LiquidityToken: cfg.LiquidityToken,
			OracleAddr:     cfg.OracleAddr,
			CommissionRate: cfg.CommissionRate,
			OperatorFee:    cfg.OperatorFee,
		})
	case *types.PairPoolQuery:
		st, err := loadPool(deps.Storage)
		if err != nil {
			return nil, err
		}
		return types.EncodeMsg(types.PoolResponse{Assets: cfg.assets(st.Reserves), TotalShare: st.TotalShares})
	case *types.PairSimulationQuery:
		return simulate(deps, cfg, q.OfferAsset)
	case *types.PairReverseSimulationQuery:
		return reverseSimulate(deps, cfg, q.AskAsset)
	case *types.PairOperatorQuery:
		return types.EncodeMsg(types.OperatorResponse{Operator: cfg.Operator})
	case *types.PairAdminQuery:
		return types.EncodeMsg(types.AdminResponse{Admin: cfg.Admin})
	case *types.PairIsWhitelistedQuery:
		addr, err := deps.API.AddrValidate(q.Address)
		if err != nil {
			return nil, err
		}
		return types.EncodeMsg(types.IsWhitelistedResponse{
			Enabled:  cfg.Whitelisted,
			Trader:   isTrader(deps.Storage, addr),
			Provider: isProvider(deps.Storage, addr),
		})
	default:
		return nil, types.ErrInvalidMsg.Wrapf("unhandled pair query %T", variant)
	}
}

// reservesFor returns the offer-side and ask-side reserves for offer.
func reservesFor(deps contractstypes.Deps, cfg *Config, offer types.AssetInfo) (math.Int, math.Int, error) {
	idx, err := cfg.assetIndex(offer)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	st, err := loadPool(deps.Storage)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return st.Reserves[idx], st.Reserves[1-idx], nil
}

func simulate(deps contractstypes.Deps, cfg *Config, offer types.Asset) ([]byte, error) {
	offerPool, askPool, err := reservesFor(deps, cfg, offer.Info)
	if err != nil {
		return nil, err
	}
	commission, operatorFee, err := cfg.rates()
	if err != nil {
		return nil, err
	}
	res, err := pool.ComputeSwap(offer.Amount, offerPool, askPool, commission, operatorFee)
	if err != nil {
		return nil, err
	}
	return types.EncodeMsg(types.SimulationResponse{
		ReturnAmount:      res.ReturnAmount,
		SpreadAmount:      res.SpreadAmount,
		CommissionAmount:  res.CommissionAmount,
		OperatorFeeAmount: res.OperatorFeeAmount,
	})
}

func reverseSimulate(deps contractstypes.Deps, cfg *Config, ask types.Asset) ([]byte, error) {
	askIdx, err := cfg.assetIndex(ask.Info)
	if err != nil {
		return nil, err
	}
	offerPool, askPool, err := reservesFor(deps, cfg, cfg.AssetInfos[1-askIdx])
	if err != nil {
		return nil, err
	}
	commission, operatorFee, err := cfg.rates()
	if err != nil {
		return nil, err
	}
	res, err := pool.ComputeOfferAmount(ask.Amount, offerPool, askPool, commission, operatorFee)
	if err != nil {
		return nil, err
	}
	return types.EncodeMsg(types.ReverseSimulationResponse{
		OfferAmount:       res.OfferAmount,
		SpreadAmount:      res.SpreadAmount,
		CommissionAmount:  res.CommissionAmount,
		OperatorFeeAmount: res.OperatorFeeAmount,
	})
}
