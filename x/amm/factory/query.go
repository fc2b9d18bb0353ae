package factory

import (
	"github.com/paw-chain/pawswap/x/amm/types"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

func (Contract) Query(deps contractstypes.Deps, env contractstypes.Env, msg []byte) ([]byte, error) {
	var m types.FactoryQueryMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	variant, err := m.Variant()
	if err != nil {
		return nil, err
	}

	switch q := variant.(type) {
	case *types.FactoryConfigQuery:
		cfg, err := loadConfig(deps.Storage)
		if err != nil {
			return nil, err
		}
		return types.EncodeMsg(cfg)
	case *types.FactoryPairQuery:
		record, err := loadPair(deps.Storage, q.AssetInfos)
		if err != nil {
			return nil, err
		}
		return types.EncodeMsg(record.PairInfo())
	case *types.FactoryPairsQuery:
		records, err := listPairs(deps.Storage, q.StartAfter, q.Limit)
		if err != nil {
			return nil, err
		}
		res := types.PairsResponse{Pairs: make([]types.PairInfo, 0, len(records))}
		for _, r := range records {
			res.Pairs = append(res.Pairs, r.PairInfo())
		}
		return types.EncodeMsg(res)
	case *types.FactoryRestrictedAssetsQuery:
		return types.EncodeMsg(types.RestrictedAssetsResponse{Prefixes: listRestricted(deps.Storage)})
	case *types.FactoryCreatorsQuery:
		return types.EncodeMsg(types.CreatorsResponse{Creators: listCreators(deps.Storage)})
	default:
		return nil, types.ErrInvalidMsg.Wrapf("unhandled factory query %T", variant)
	}
}
