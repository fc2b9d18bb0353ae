package types

import (
	"fmt"
)

// PairInfo describes a pair as reported by the pair itself and by the factory.
type PairInfo struct {
	AssetInfos     [2]AssetInfo `json:"asset_infos"`
	ContractAddr   string       `json:"contract_addr"`
	LiquidityToken string       `json:"liquidity_token"`
	OracleAddr     string       `json:"oracle_addr"`
	CommissionRate string       `json:"commission_rate"`
	OperatorFee    string       `json:"operator_fee"`
}

// Label renders the pair as "denomA-denomB" in canonical order.
func (p PairInfo) Label() string {
	return PairLabel(p.AssetInfos)
}

// PairLabel renders asset infos as "a-b" in canonical order.
func PairLabel(infos [2]AssetInfo) string {
	sorted := SortAssetInfos(infos)
	return fmt.Sprintf("%s-%s", sorted[0], sorted[1])
}

// Registration is the completion state of a PairRecord: Pending until the
// spawned pair reports back, then Registered forever.
type Registration interface {
	isRegistration()
}

// Pending marks a record whose pair instantiation has not completed.
type Pending struct{}

// Registered holds the addresses recovered from the pair after instantiation.
type Registered struct {
	ContractAddr   string
	LiquidityToken string
}

func (Pending) isRegistration()    {}
func (Registered) isRegistration() {}

// PairRecord is the factory's entry for one PairKey.
type PairRecord struct {
	AssetInfos     [2]AssetInfo
	OracleAddr     string
	CommissionRate string
	OperatorFee    string
	Registration   Registration
}

// NewPendingRecord returns a record awaiting registration.
func NewPendingRecord(infos [2]AssetInfo, oracleAddr, commissionRate, operatorFee string) PairRecord {
	return PairRecord{
		AssetInfos:     infos,
		OracleAddr:     oracleAddr,
		CommissionRate: commissionRate,
		OperatorFee:    operatorFee,
		Registration:   Pending{},
	}
}

func (r PairRecord) IsRegistered() bool {
	_, ok := r.Registration.(Registered)
	return ok
}

// Register completes a pending record. A registered record is never
// rewritten.
func (r PairRecord) Register(contractAddr, liquidityToken string) (PairRecord, error) {
	switch reg := r.Registration.(type) {
	case Registered:
		return r, ErrPairRegistered.Wrapf("pair %s already registered at %s", PairLabel(r.AssetInfos), reg.ContractAddr)
	case Pending, nil:
		r.Registration = Registered{ContractAddr: contractAddr, LiquidityToken: liquidityToken}
		return r, nil
	default:
		return r, fmt.Errorf("unknown registration state %T", reg)
	}
}

// PairInfo renders the record; addresses are empty while pending.
func (r PairRecord) PairInfo() PairInfo {
	info := PairInfo{
		AssetInfos:     r.AssetInfos,
		OracleAddr:     r.OracleAddr,
		CommissionRate: r.CommissionRate,
		OperatorFee:    r.OperatorFee,
	}
	if reg, ok := r.Registration.(Registered); ok {
		info.ContractAddr = reg.ContractAddr
		info.LiquidityToken = reg.LiquidityToken
	}
	return info
}
