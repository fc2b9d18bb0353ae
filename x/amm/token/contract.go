// Package token implements the fungible token used for liquidity shares and
// for token assets traded in pairs.
package token

import (
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

var _ contractstypes.Contract = Contract{}

// Contract is the token code.
type Contract struct{}

// New returns the token code for upload to the contract host.
func New() Contract {
	return Contract{}
}

func (Contract) Instantiate(deps contractstypes.Deps, env contractstypes.Env, info contractstypes.MessageInfo, msg []byte) (*contractstypes.Response, error) {
	var m types.TokenInstantiateMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	if m.Name == "" || m.Symbol == "" {
		return nil, types.ErrInvalidMsg.Wrap("token name and symbol are required")
	}
	if m.Decimals > 18 {
		return nil, types.ErrInvalidMsg.Wrapf("decimals %d exceeds 18", m.Decimals)
	}

	supply := math.ZeroInt()
	for _, b := range m.InitialBalances {
		addr, err := deps.API.AddrValidate(b.Address)
		if err != nil {
			return nil, err
		}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return nil, types.ErrInvalidMsg.Wrapf("initial balance of %s must be non-negative", b.Address)
		}
		if err := addBalance(deps.Storage, addr, b.Amount); err != nil {
			return nil, err
		}
		supply = supply.Add(b.Amount)
	}
	if err := types.CheckUint128(supply); err != nil {
		return nil, err
	}

	if m.Mint != nil {
		if _, err := deps.API.AddrValidate(m.Mint.Minter); err != nil {
			return nil, err
		}
		if m.Mint.Cap != nil && supply.GT(*m.Mint.Cap) {
			return nil, types.ErrCannotExceedCap.Wrapf("initial supply %s above cap %s", supply, m.Mint.Cap)
		}
	}

	st := tokenState{Name: m.Name, Symbol: m.Symbol, Decimals: m.Decimals, TotalSupply: supply, Mint: m.Mint}
	if err := saveTokenState(deps.Storage, st); err != nil {
		return nil, err
	}
	return contractstypes.NewResponse(), nil
}

func (c Contract) Execute(deps contractstypes.Deps, env contractstypes.Env, info contractstypes.MessageInfo, msg []byte) (*contractstypes.Response, error) {
	var m types.TokenExecuteMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	variant, err := m.Variant()
	if err != nil {
		return nil, err
	}
	if !info.Funds.Empty() {
		return nil, types.ErrInvalidFunds.Wrapf("token calls take no funds, got %s", info.Funds)
	}

	switch v := variant.(type) {
	case *types.TokenTransfer:
		return c.transfer(deps, info, v)
	case *types.TokenSend:
		return c.send(deps, info, v)
	case *types.TokenMint:
		return c.mint(deps, info, v)
	case *types.TokenBurn:
		return c.burn(deps, info.Sender, info.Sender, v.Amount, types.ActionBurn)
	case *types.TokenBurnFrom:
		owner, err := deps.API.AddrValidate(v.Owner)
		if err != nil {
			return nil, err
		}
		if err := deductAllowance(deps.Storage, owner, info.Sender, v.Amount); err != nil {
			return nil, err
		}
		return c.burn(deps, owner, info.Sender, v.Amount, types.ActionBurnFrom)
	case *types.TokenIncreaseAllowance:
		return c.changeAllowance(deps, info, v.Spender, v.Amount, true)
	case *types.TokenDecreaseAllowance:
		return c.changeAllowance(deps, info, v.Spender, v.Amount, false)
	case *types.TokenTransferFrom:
		return c.transferFrom(deps, info, v)
	default:
		return nil, types.ErrInvalidMsg.Wrapf("unhandled token execute %T", variant)
	}
}

func requirePositive(amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidZeroAmount.Wrap("token amount must be positive")
	}
	return nil
}

func (Contract) move(deps contractstypes.Deps, from, to sdk.AccAddress, amount math.Int) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	if err := subBalance(deps.Storage, from, amount); err != nil {
		return err
	}
	return addBalance(deps.Storage, to, amount)
}

func (c Contract) transfer(deps contractstypes.Deps, info contractstypes.MessageInfo, m *types.TokenTransfer) (*contractstypes.Response, error) {
	to, err := deps.API.AddrValidate(m.Recipient)
	if err != nil {
		return nil, err
	}
	if err := c.move(deps, info.Sender, to, m.Amount); err != nil {
		return nil, err
	}
	from, err := deps.API.AddrHumanize(info.Sender)
	if err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionTransfer),
		sdk.NewAttribute(types.AttributeKeyFrom, from),
		sdk.NewAttribute(types.AttributeKeyTo, m.Recipient),
		sdk.NewAttribute(types.AttributeKeyAmount, m.Amount.String()),
	), nil
}

func (c Contract) send(deps contractstypes.Deps, info contractstypes.MessageInfo, m *types.TokenSend) (*contractstypes.Response, error) {
	target, err := deps.API.AddrValidate(m.Contract)
	if err != nil {
		return nil, err
	}
	if err := c.move(deps, info.Sender, target, m.Amount); err != nil {
		return nil, err
	}
	from, err := deps.API.AddrHumanize(info.Sender)
	if err != nil {
		return nil, err
	}
	hook, err := contractstypes.NewWasmExecute(target, types.ReceiveEnvelope{
		Receive: types.Cw20ReceiveMsg{Sender: from, Amount: m.Amount, Msg: m.Msg},
	}, nil)
	if err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionSend),
		sdk.NewAttribute(types.AttributeKeyFrom, from),
		sdk.NewAttribute(types.AttributeKeyTo, m.Contract),
		sdk.NewAttribute(types.AttributeKeyAmount, m.Amount.String()),
	).AddMessage(hook), nil
}

func (Contract) mint(deps contractstypes.Deps, info contractstypes.MessageInfo, m *types.TokenMint) (*contractstypes.Response, error) {
	if err := requirePositive(m.Amount); err != nil {
		return nil, err
	}
	st, err := loadTokenState(deps.Storage)
	if err != nil {
		return nil, err
	}
	sender, err := deps.API.AddrHumanize(info.Sender)
	if err != nil {
		return nil, err
	}
	if st.Mint == nil || st.Mint.Minter != sender {
		return nil, types.ErrUnauthorized.Wrapf("%s is not the minter", sender)
	}

	supply, err := st.TotalSupply.SafeAdd(m.Amount)
	if err != nil {
		return nil, types.ErrOverflow.Wrapf("total supply: %s", err)
	}
	st.TotalSupply = supply
	if st.Mint.Cap != nil && st.TotalSupply.GT(*st.Mint.Cap) {
		return nil, types.ErrCannotExceedCap.Wrapf("supply %s above cap %s", st.TotalSupply, st.Mint.Cap)
	}
	if err := types.CheckUint128(st.TotalSupply); err != nil {
		return nil, err
	}

	to, err := deps.API.AddrValidate(m.Recipient)
	if err != nil {
		return nil, err
	}
	if err := addBalance(deps.Storage, to, m.Amount); err != nil {
		return nil, err
	}
	if err := saveTokenState(deps.Storage, st); err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionMint),
		sdk.NewAttribute(types.AttributeKeyTo, m.Recipient),
		sdk.NewAttribute(types.AttributeKeyAmount, m.Amount.String()),
	), nil
}

func (Contract) burn(deps contractstypes.Deps, owner, by sdk.AccAddress, amount math.Int, action string) (*contractstypes.Response, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	st, err := loadTokenState(deps.Storage)
	if err != nil {
		return nil, err
	}
	if err := subBalance(deps.Storage, owner, amount); err != nil {
		return nil, err
	}
	st.TotalSupply, err = st.TotalSupply.SafeSub(amount)
	if err != nil {
		return nil, types.ErrOverflow.Wrapf("burn %s: %s", amount, err)
	}
	if err := saveTokenState(deps.Storage, st); err != nil {
		return nil, err
	}

	from, err := deps.API.AddrHumanize(owner)
	if err != nil {
		return nil, err
	}
	resp := contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, action),
		sdk.NewAttribute(types.AttributeKeyFrom, from),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	)
	if !owner.Equals(by) {
		spender, err := deps.API.AddrHumanize(by)
		if err != nil {
			return nil, err
		}
		resp.AddAttribute(types.AttributeKeySpender, spender)
	}
	return resp, nil
}

func (Contract) changeAllowance(deps contractstypes.Deps, info contractstypes.MessageInfo, spenderAddr string, amount math.Int, increase bool) (*contractstypes.Response, error) {
	spender, err := deps.API.AddrValidate(spenderAddr)
	if err != nil {
		return nil, err
	}
	if spender.Equals(info.Sender) {
		return nil, types.ErrInvalidMsg.Wrap("cannot set allowance to own account")
	}
	if amount.IsNil() || amount.IsNegative() {
		return nil, types.ErrInvalidMsg.Wrap("allowance change must be non-negative")
	}
	current, err := getAllowance(deps.Storage, info.Sender, spender)
	if err != nil {
		return nil, err
	}

	action := types.ActionIncreaseAllowance
	if increase {
		if current, err = current.SafeAdd(amount); err != nil {
			return nil, types.ErrOverflow.Wrapf("allowance: %s", err)
		}
		if err := types.CheckUint128(current); err != nil {
			return nil, err
		}
	} else {
		action = types.ActionDecreaseAllowance
		current = math.MaxInt(current.Sub(amount), math.ZeroInt())
	}
	if err := setAllowance(deps.Storage, info.Sender, spender, current); err != nil {
		return nil, err
	}

	owner, err := deps.API.AddrHumanize(info.Sender)
	if err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, action),
		sdk.NewAttribute(types.AttributeKeyOwner, owner),
		sdk.NewAttribute(types.AttributeKeySpender, spenderAddr),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	), nil
}

func (c Contract) transferFrom(deps contractstypes.Deps, info contractstypes.MessageInfo, m *types.TokenTransferFrom) (*contractstypes.Response, error) {
	owner, err := deps.API.AddrValidate(m.Owner)
	if err != nil {
		return nil, err
	}
	to, err := deps.API.AddrValidate(m.Recipient)
	if err != nil {
		return nil, err
	}
	if err := deductAllowance(deps.Storage, owner, info.Sender, m.Amount); err != nil {
		return nil, err
	}
	if err := c.move(deps, owner, to, m.Amount); err != nil {
		return nil, err
	}
	by, err := deps.API.AddrHumanize(info.Sender)
	if err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionTransferFrom),
		sdk.NewAttribute(types.AttributeKeyFrom, m.Owner),
		sdk.NewAttribute(types.AttributeKeyTo, m.Recipient),
		sdk.NewAttribute(types.AttributeKeyBy, by),
		sdk.NewAttribute(types.AttributeKeyAmount, m.Amount.String()),
	), nil
}

func (Contract) Query(deps contractstypes.Deps, env contractstypes.Env, msg []byte) ([]byte, error) {
	var m types.TokenQueryMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	variant, err := m.Variant()
	if err != nil {
		return nil, err
	}

	switch v := variant.(type) {
	case *types.TokenBalanceQuery:
		addr, err := deps.API.AddrValidate(v.Address)
		if err != nil {
			return nil, err
		}
		bal, err := getBalance(deps.Storage, addr)
		if err != nil {
			return nil, err
		}
		return types.EncodeMsg(types.TokenBalanceResponse{Balance: bal})
	case *types.TokenInfoQuery:
		st, err := loadTokenState(deps.Storage)
		if err != nil {
			return nil, err
		}
		return types.EncodeMsg(types.TokenInfoResponse{Name: st.Name, Symbol: st.Symbol, Decimals: st.Decimals, TotalSupply: st.TotalSupply})
	case *types.TokenMinterQuery:
		st, err := loadTokenState(deps.Storage)
		if err != nil {
			return nil, err
		}
		if st.Mint == nil {
			return nil, types.ErrNotFound.Wrap("token has no minter")
		}
		return types.EncodeMsg(types.TokenMinterResponse{Minter: st.Mint.Minter, Cap: st.Mint.Cap})
	case *types.TokenAllowanceQuery:
		owner, err := deps.API.AddrValidate(v.Owner)
		if err != nil {
			return nil, err
		}
		spender, err := deps.API.AddrValidate(v.Spender)
		if err != nil {
			return nil, err
		}
		allowance, err := getAllowance(deps.Storage, owner, spender)
		if err != nil {
			return nil, err
		}
		return types.EncodeMsg(types.TokenAllowanceResponse{Allowance: allowance})
	default:
		return nil, types.ErrInvalidMsg.Wrapf("unhandled token query %T", variant)
	}
}

func (Contract) Reply(contractstypes.Deps, contractstypes.Env, contractstypes.Reply) (*contractstypes.Response, error) {
	return nil, types.ErrInvalidMsg.Wrap("token dispatches no sub-messages with replies")
}

func (Contract) Migrate(contractstypes.Deps, contractstypes.Env, []byte) (*contractstypes.Response, error) {
	return contractstypes.NewResponse(), nil
}
