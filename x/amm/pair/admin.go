package pair

import (
	"strconv"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

func requireAdmin(api contractstypes.API, cfg *Config, sender sdk.AccAddress) error {
	if cfg.Admin == "" {
		return types.ErrUnauthorized.Wrap("pair has no admin")
	}
	admin, err := api.AddrValidate(cfg.Admin)
	if err != nil {
		return err
	}
	if !admin.Equals(sender) {
		return types.ErrUnauthorized.Wrapf("%s is not the pair admin", sender)
	}
	return nil
}

func (Contract) enableWhitelist(deps contractstypes.Deps, info contractstypes.MessageInfo, cfg *Config, m *types.PairEnableWhitelist) (*contractstypes.Response, error) {
	if err := requireAdmin(deps.API, cfg, info.Sender); err != nil {
		return nil, err
	}
	cfg.Whitelisted = m.Status
	if err := saveConfig(deps.Storage, cfg); err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionEnableWhitelist),
		sdk.NewAttribute(types.AttributeKeyStatus, strconv.FormatBool(m.Status)),
	), nil
}

// updateList adds or removes addrs from the trader or provider allow-list.
// Every address is validated before any is written.
func (Contract) updateList(
	deps contractstypes.Deps,
	info contractstypes.MessageInfo,
	cfg *Config,
	listPrefix []byte,
	addrs []string,
	member bool,
	action string,
) (*contractstypes.Response, error) {
	if err := requireAdmin(deps.API, cfg, info.Sender); err != nil {
		return nil, err
	}
	parsed := make([]sdk.AccAddress, 0, len(addrs))
	for _, a := range addrs {
		addr, err := deps.API.AddrValidate(a)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, addr)
	}
	setMembers(deps.Storage, listPrefix, parsed, member)
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, action),
		sdk.NewAttribute(types.AttributeKeyAddresses, strings.Join(addrs, ",")),
	), nil
}

func (Contract) updateOperator(deps contractstypes.Deps, info contractstypes.MessageInfo, cfg *Config, m *types.PairUpdateOperator) (*contractstypes.Response, error) {
	if err := requireAdmin(deps.API, cfg, info.Sender); err != nil {
		return nil, err
	}
	cfg.Operator = ""
	if m.Operator != nil && *m.Operator != "" {
		if _, err := deps.API.AddrValidate(*m.Operator); err != nil {
			return nil, err
		}
		cfg.Operator = *m.Operator
	}
	if err := saveConfig(deps.Storage, cfg); err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionUpdateOperator),
		sdk.NewAttribute(types.AttributeKeyOperator, cfg.Operator),
	), nil
}
