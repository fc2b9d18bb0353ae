package types

import (
	"cosmossdk.io/math"
)

// OracleInstantiateMsg creates the tax oracle. Admin defaults to the sender.
type OracleInstantiateMsg struct {
	Admin *string `json:"admin,omitempty"`
}

type OracleUpdateTaxRate struct {
	Rate math.LegacyDec `json:"rate"`
}

type OracleUpdateTaxCap struct {
	Denom string   `json:"denom"`
	Cap   math.Int `json:"cap"`
}

type OracleUpdateAdmin struct {
	Admin string `json:"admin"`
}

// OracleExecuteMsg is the oracle execute message set. Exactly one field is set.
type OracleExecuteMsg struct {
	UpdateTaxRate *OracleUpdateTaxRate `json:"update_tax_rate,omitempty"`
	UpdateTaxCap  *OracleUpdateTaxCap  `json:"update_tax_cap,omitempty"`
	UpdateAdmin   *OracleUpdateAdmin   `json:"update_admin,omitempty"`
}

type OracleExecute interface{ isOracleExecute() }

func (*OracleUpdateTaxRate) isOracleExecute() {}
func (*OracleUpdateTaxCap) isOracleExecute()  {}
func (*OracleUpdateAdmin) isOracleExecute()   {}

func (m OracleExecuteMsg) Variant() (OracleExecute, error) {
	var set []OracleExecute
	if m.UpdateTaxRate != nil {
		set = append(set, m.UpdateTaxRate)
	}
	if m.UpdateTaxCap != nil {
		set = append(set, m.UpdateTaxCap)
	}
	if m.UpdateAdmin != nil {
		set = append(set, m.UpdateAdmin)
	}
	return exactlyOne("oracle execute", set)
}

type OracleTaxRateQuery struct{}

type OracleTaxCapQuery struct {
	Denom string `json:"denom"`
}

type OracleAdminQuery struct{}

// OracleQueryMsg is the oracle query message set. Exactly one field is set.
type OracleQueryMsg struct {
	TaxRate *OracleTaxRateQuery `json:"tax_rate,omitempty"`
	TaxCap  *OracleTaxCapQuery  `json:"tax_cap,omitempty"`
	Admin   *OracleAdminQuery   `json:"admin,omitempty"`
}

type OracleQuery interface{ isOracleQuery() }

func (*OracleTaxRateQuery) isOracleQuery() {}
func (*OracleTaxCapQuery) isOracleQuery()  {}
func (*OracleAdminQuery) isOracleQuery()   {}

func (m OracleQueryMsg) Variant() (OracleQuery, error) {
	var set []OracleQuery
	if m.TaxRate != nil {
		set = append(set, m.TaxRate)
	}
	if m.TaxCap != nil {
		set = append(set, m.TaxCap)
	}
	if m.Admin != nil {
		set = append(set, m.Admin)
	}
	return exactlyOne("oracle query", set)
}

type OracleTaxRateResponse struct {
	Rate math.LegacyDec `json:"rate"`
}

type OracleTaxCapResponse struct {
	Cap math.Int `json:"cap"`
}

type OracleAdminResponse struct {
	Admin string `json:"admin"`
}
