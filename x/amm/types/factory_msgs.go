package types

import (
	"cosmossdk.io/math"
)

// FactoryInstantiateMsg creates the factory. The sender becomes owner and,
// unless Operator is set, operator.
type FactoryInstantiateMsg struct {
	PairCodeID     uint64  `json:"pair_code_id"`
	TokenCodeID    uint64  `json:"token_code_id"`
	OracleAddr     string  `json:"oracle_addr"`
	CommissionRate *string `json:"commission_rate,omitempty"`
	OperatorFee    *string `json:"operator_fee,omitempty"`
	Operator       *string `json:"operator,omitempty"`
}

// FactoryConfig is the factory's configuration record.
type FactoryConfig struct {
	Owner          string `json:"owner"`
	Operator       string `json:"operator"`
	OracleAddr     string `json:"oracle_addr"`
	PairCodeID     uint64 `json:"pair_code_id"`
	TokenCodeID    uint64 `json:"token_code_id"`
	CommissionRate string `json:"commission_rate"`
	OperatorFee    string `json:"operator_fee"`
}

// UpdateConfig changes each set field and leaves the others alone.
type UpdateConfig struct {
	Owner          *string `json:"owner,omitempty"`
	Operator       *string `json:"operator,omitempty"`
	OracleAddr     *string `json:"oracle_addr,omitempty"`
	TokenCodeID    *uint64 `json:"token_code_id,omitempty"`
	PairCodeID     *uint64 `json:"pair_code_id,omitempty"`
	CommissionRate *string `json:"commission_rate,omitempty"`
	OperatorFee    *string `json:"operator_fee,omitempty"`
}

// ProvideLiquidityParams seeds a pair right after CreatePair registers it.
type ProvideLiquidityParams struct {
	Assets   [2]Asset `json:"assets"`
	Receiver *string  `json:"receiver,omitempty"`
}

type CreatePair struct {
	AssetInfos       [2]AssetInfo            `json:"asset_infos"`
	PairAdmin        *string                 `json:"pair_admin,omitempty"`
	Operator         *string                 `json:"operator,omitempty"`
	ProvideLiquidity *ProvideLiquidityParams `json:"provide_liquidity,omitempty"`
}

// AddPair registers an existing pair contract without instantiating it.
type AddPair struct {
	PairInfo PairInfo `json:"pair_info"`
}

type MigrateContract struct {
	ContractAddr string `json:"contract_addr"`
	NewCodeID    uint64 `json:"new_code_id"`
	Msg          []byte `json:"msg"`
}

// FactoryProvideLiquidity forwards liquidity held by the factory to a
// registered pair. Only the factory itself may send it.
type FactoryProvideLiquidity struct {
	Assets   [2]Asset `json:"assets"`
	Receiver string   `json:"receiver"`
}

type RestrictAsset struct {
	Prefix string `json:"prefix"`
}

type AddCreator struct {
	Address string `json:"address"`
}

type RemoveCreator struct {
	Address string `json:"address"`
}

// FactoryExecuteMsg is the factory execute message set. Exactly one field is set.
type FactoryExecuteMsg struct {
	UpdateConfig     *UpdateConfig            `json:"update_config,omitempty"`
	CreatePair       *CreatePair              `json:"create_pair,omitempty"`
	AddPair          *AddPair                 `json:"add_pair,omitempty"`
	MigrateContract  *MigrateContract         `json:"migrate_contract,omitempty"`
	ProvideLiquidity *FactoryProvideLiquidity `json:"provide_liquidity,omitempty"`
	RestrictAsset    *RestrictAsset           `json:"restrict_asset,omitempty"`
	AddCreator       *AddCreator              `json:"add_creator,omitempty"`
	RemoveCreator    *RemoveCreator           `json:"remove_creator,omitempty"`
}

// FactoryExecute is implemented by every factory execute variant.
type FactoryExecute interface{ isFactoryExecute() }

func (*UpdateConfig) isFactoryExecute()            {}
func (*CreatePair) isFactoryExecute()              {}
func (*AddPair) isFactoryExecute()                 {}
func (*MigrateContract) isFactoryExecute()         {}
func (*FactoryProvideLiquidity) isFactoryExecute() {}
func (*RestrictAsset) isFactoryExecute()           {}
func (*AddCreator) isFactoryExecute()              {}
func (*RemoveCreator) isFactoryExecute()           {}

func (m FactoryExecuteMsg) Variant() (FactoryExecute, error) {
	var set []FactoryExecute
	if m.UpdateConfig != nil {
		set = append(set, m.UpdateConfig)
	}
	if m.CreatePair != nil {
		set = append(set, m.CreatePair)
	}
	if m.AddPair != nil {
		set = append(set, m.AddPair)
	}
	if m.MigrateContract != nil {
		set = append(set, m.MigrateContract)
	}
	if m.ProvideLiquidity != nil {
		set = append(set, m.ProvideLiquidity)
	}
	if m.RestrictAsset != nil {
		set = append(set, m.RestrictAsset)
	}
	if m.AddCreator != nil {
		set = append(set, m.AddCreator)
	}
	if m.RemoveCreator != nil {
		set = append(set, m.RemoveCreator)
	}
	return exactlyOne("factory execute", set)
}

type FactoryConfigQuery struct{}

type FactoryPairQuery struct {
	AssetInfos [2]AssetInfo `json:"asset_infos"`
}

// FactoryPairsQuery lists pairs in PairKey order after StartAfter.
type FactoryPairsQuery struct {
	StartAfter *[2]AssetInfo `json:"start_after,omitempty"`
	Limit      *uint32       `json:"limit,omitempty"`
}

type FactoryRestrictedAssetsQuery struct{}

type FactoryCreatorsQuery struct{}

// FactoryQueryMsg is the factory query message set. Exactly one field is set.
type FactoryQueryMsg struct {
	Config           *FactoryConfigQuery           `json:"config,omitempty"`
	Pair             *FactoryPairQuery             `json:"pair,omitempty"`
	Pairs            *FactoryPairsQuery            `json:"pairs,omitempty"`
	RestrictedAssets *FactoryRestrictedAssetsQuery `json:"restricted_assets,omitempty"`
	GetCreators      *FactoryCreatorsQuery         `json:"get_creators,omitempty"`
}

type FactoryQuery interface{ isFactoryQuery() }

func (*FactoryConfigQuery) isFactoryQuery()           {}
func (*FactoryPairQuery) isFactoryQuery()             {}
func (*FactoryPairsQuery) isFactoryQuery()            {}
func (*FactoryRestrictedAssetsQuery) isFactoryQuery() {}
func (*FactoryCreatorsQuery) isFactoryQuery()         {}

func (m FactoryQueryMsg) Variant() (FactoryQuery, error) {
	var set []FactoryQuery
	if m.Config != nil {
		set = append(set, m.Config)
	}
	if m.Pair != nil {
		set = append(set, m.Pair)
	}
	if m.Pairs != nil {
		set = append(set, m.Pairs)
	}
	if m.RestrictedAssets != nil {
		set = append(set, m.RestrictedAssets)
	}
	if m.GetCreators != nil {
		set = append(set, m.GetCreators)
	}
	return exactlyOne("factory query", set)
}

type PairsResponse struct {
	Pairs []PairInfo `json:"pairs"`
}

type RestrictedAssetsResponse struct {
	Prefixes []string `json:"prefixes"`
}

type CreatorsResponse struct {
	Creators []string `json:"creators"`
}

// FactoryMigrateMsg rewrites the set configuration fields.
type FactoryMigrateMsg struct {
	PairCodeID     *uint64 `json:"pair_code_id,omitempty"`
	TokenCodeID    *uint64 `json:"token_code_id,omitempty"`
	OracleAddr     *string `json:"oracle_addr,omitempty"`
	CommissionRate *string `json:"commission_rate,omitempty"`
	OperatorFee    *string `json:"operator_fee,omitempty"`
}

// ParseRate parses a fee rate and checks 0 <= rate <= 1.
func ParseRate(s string) (math.LegacyDec, error) {
	rate, err := math.LegacyNewDecFromStr(s)
	if err != nil {
		return math.LegacyDec{}, ErrInvalidRate.Wrapf("%q: %s", s, err)
	}
	if rate.IsNegative() || rate.GT(math.LegacyOneDec()) {
		return math.LegacyDec{}, ErrInvalidRate.Wrapf("%s must be between 0 and 1", rate)
	}
	return rate, nil
}
