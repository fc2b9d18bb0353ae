// Package oracle is the tax oracle consulted by pairs before paying out
// native assets.
package oracle

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

var (
	adminKey     = []byte("admin")
	taxRateKey   = []byte("tax_rate")
	taxCapPrefix = []byte("tax_cap/")
)

var _ contractstypes.Contract = Contract{}

// Contract is the oracle code.
type Contract struct{}

// New returns the tax oracle code for upload to the contract host.
func New() Contract {
	return Contract{}
}

func (Contract) Instantiate(deps contractstypes.Deps, env contractstypes.Env, info contractstypes.MessageInfo, msg []byte) (*contractstypes.Response, error) {
	var m types.OracleInstantiateMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	admin, err := deps.API.AddrHumanize(info.Sender)
	if err != nil {
		return nil, err
	}
	if m.Admin != nil {
		if _, err := deps.API.AddrValidate(*m.Admin); err != nil {
			return nil, err
		}
		admin = *m.Admin
	}
	deps.Storage.Set(adminKey, []byte(admin))
	if err := setTaxRate(deps.Storage, math.LegacyZeroDec()); err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttribute(types.AttributeKeyOwner, admin), nil
}

func (Contract) Execute(deps contractstypes.Deps, env contractstypes.Env, info contractstypes.MessageInfo, msg []byte) (*contractstypes.Response, error) {
	var m types.OracleExecuteMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	variant, err := m.Variant()
	if err != nil {
		return nil, err
	}
	sender, err := deps.API.AddrHumanize(info.Sender)
	if err != nil {
		return nil, err
	}
	if admin := string(deps.Storage.Get(adminKey)); admin != sender {
		return nil, types.ErrUnauthorized.Wrapf("%s is not the oracle admin", sender)
	}

	resp := contractstypes.NewResponse()
	switch v := variant.(type) {
	case *types.OracleUpdateTaxRate:
		if v.Rate.IsNil() || v.Rate.IsNegative() || v.Rate.GT(math.LegacyOneDec()) {
			return nil, types.ErrInvalidRate.Wrapf("tax rate %s", v.Rate)
		}
		if err := setTaxRate(deps.Storage, v.Rate); err != nil {
			return nil, err
		}
		resp.AddAttribute(types.AttributeKeyAction, types.ActionUpdateTaxRate).AddAttribute("rate", v.Rate.String())
	case *types.OracleUpdateTaxCap:
		if err := sdk.ValidateDenom(v.Denom); err != nil {
			return nil, types.ErrInvalidAssetInfo.Wrapf("denom %q: %s", v.Denom, err)
		}
		if v.Cap.IsNil() || v.Cap.IsNegative() {
			return nil, types.ErrInvalidMsg.Wrap("tax cap must be non-negative")
		}
		bz, err := v.Cap.Marshal()
		if err != nil {
			return nil, fmt.Errorf("oracle: marshal cap: %w", err)
		}
		prefix.NewStore(deps.Storage, taxCapPrefix).Set([]byte(v.Denom), bz)
		resp.AddAttribute(types.AttributeKeyAction, types.ActionUpdateTaxCap).AddAttribute("denom", v.Denom).AddAttribute("cap", v.Cap.String())
	case *types.OracleUpdateAdmin:
		if _, err := deps.API.AddrValidate(v.Admin); err != nil {
			return nil, err
		}
		deps.Storage.Set(adminKey, []byte(v.Admin))
		resp.AddAttribute(types.AttributeKeyAction, types.ActionUpdateAdmin).AddAttribute(types.AttributeKeyOwner, v.Admin)
	default:
		return nil, types.ErrInvalidMsg.Wrapf("unhandled oracle execute %T", variant)
	}
	return resp, nil
}

func (Contract) Query(deps contractstypes.Deps, env contractstypes.Env, msg []byte) ([]byte, error) {
	var m types.OracleQueryMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	variant, err := m.Variant()
	if err != nil {
		return nil, err
	}

	switch v := variant.(type) {
	case *types.OracleTaxRateQuery:
		rate, err := getTaxRate(deps.Storage)
		if err != nil {
			return nil, err
		}
		return types.EncodeMsg(types.OracleTaxRateResponse{Rate: rate})
	case *types.OracleTaxCapQuery:
		bz := prefix.NewStore(deps.Storage, taxCapPrefix).Get([]byte(v.Denom))
		if bz == nil {
			return nil, types.ErrNotFound.Wrapf("tax cap for %s", v.Denom)
		}
		var taxCap math.Int
		if err := taxCap.Unmarshal(bz); err != nil {
			return nil, fmt.Errorf("oracle: unmarshal cap: %w", err)
		}
		return types.EncodeMsg(types.OracleTaxCapResponse{Cap: taxCap})
	case *types.OracleAdminQuery:
		return types.EncodeMsg(types.OracleAdminResponse{Admin: string(deps.Storage.Get(adminKey))})
	default:
		return nil, types.ErrInvalidMsg.Wrapf("unhandled oracle query %T", variant)
	}
}

func (Contract) Reply(contractstypes.Deps, contractstypes.Env, contractstypes.Reply) (*contractstypes.Response, error) {
	return nil, types.ErrInvalidMsg.Wrap("oracle dispatches no sub-messages with replies")
}

func (Contract) Migrate(contractstypes.Deps, contractstypes.Env, []byte) (*contractstypes.Response, error) {
	return contractstypes.NewResponse(), nil
}

func setTaxRate(store storetypes.KVStore, rate math.LegacyDec) error {
	bz, err := json.Marshal(rate)
	if err != nil {
		return fmt.Errorf("oracle: marshal rate: %w", err)
	}
	store.Set(taxRateKey, bz)
	return nil
}

func getTaxRate(store storetypes.KVStore) (math.LegacyDec, error) {
	var rate math.LegacyDec
	if err := json.Unmarshal(store.Get(taxRateKey), &rate); err != nil {
		return math.LegacyDec{}, fmt.Errorf("oracle: unmarshal rate: %w", err)
	}
	return rate, nil
}
