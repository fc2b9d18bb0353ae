package types

import (
	"cosmossdk.io/math"
)

// TokenMinter names the account allowed to mint and an optional supply cap.
type TokenMinter struct {
	Minter string    `json:"minter"`
	Cap    *math.Int `json:"cap,omitempty"`
}

// TokenBalance is an initial balance of a token instance.
type TokenBalance struct {
	Address string   `json:"address"`
	Amount  math.Int `json:"amount"`
}

// TokenInstantiateMsg creates a fungible token instance.
type TokenInstantiateMsg struct {
	Name            string         `json:"name"`
	Symbol          string         `json:"symbol"`
	Decimals        uint8          `json:"decimals"`
	InitialBalances []TokenBalance `json:"initial_balances"`
	Mint            *TokenMinter   `json:"mint,omitempty"`
}

type TokenTransfer struct {
	Recipient string   `json:"recipient"`
	Amount    math.Int `json:"amount"`
}

// TokenSend transfers Amount to Contract and then calls its Receive hook with Msg.
type TokenSend struct {
	Contract string   `json:"contract"`
	Amount   math.Int `json:"amount"`
	Msg      []byte   `json:"msg"`
}

type TokenMint struct {
	Recipient string   `json:"recipient"`
	Amount    math.Int `json:"amount"`
}

type TokenBurn struct {
	Amount math.Int `json:"amount"`
}

type TokenBurnFrom struct {
	Owner  string   `json:"owner"`
	Amount math.Int `json:"amount"`
}

type TokenIncreaseAllowance struct {
	Spender string   `json:"spender"`
	Amount  math.Int `json:"amount"`
}

type TokenDecreaseAllowance struct {
	Spender string   `json:"spender"`
	Amount  math.Int `json:"amount"`
}

type TokenTransferFrom struct {
	Owner     string   `json:"owner"`
	Recipient string   `json:"recipient"`
	Amount    math.Int `json:"amount"`
}

// TokenExecuteMsg is the token execute message set. Exactly one field is set.
type TokenExecuteMsg struct {
	Transfer          *TokenTransfer          `json:"transfer,omitempty"`
	Send              *TokenSend              `json:"send,omitempty"`
	Mint              *TokenMint              `json:"mint,omitempty"`
	Burn              *TokenBurn              `json:"burn,omitempty"`
	BurnFrom          *TokenBurnFrom          `json:"burn_from,omitempty"`
	IncreaseAllowance *TokenIncreaseAllowance `json:"increase_allowance,omitempty"`
	DecreaseAllowance *TokenDecreaseAllowance `json:"decrease_allowance,omitempty"`
	TransferFrom      *TokenTransferFrom      `json:"transfer_from,omitempty"`
}

// TokenExecute is implemented by every token execute variant.
type TokenExecute interface{ isTokenExecute() }

func (*TokenTransfer) isTokenExecute()          {}
func (*TokenSend) isTokenExecute()              {}
func (*TokenMint) isTokenExecute()              {}
func (*TokenBurn) isTokenExecute()              {}
func (*TokenBurnFrom) isTokenExecute()          {}
func (*TokenIncreaseAllowance) isTokenExecute() {}
func (*TokenDecreaseAllowance) isTokenExecute() {}
func (*TokenTransferFrom) isTokenExecute()      {}

// Variant returns the single variant carried by m.
func (m TokenExecuteMsg) Variant() (TokenExecute, error) {
	var set []TokenExecute
	if m.Transfer != nil {
		set = append(set, m.Transfer)
	}
	if m.Send != nil {
		set = append(set, m.Send)
	}
	if m.Mint != nil {
		set = append(set, m.Mint)
	}
	if m.Burn != nil {
		set = append(set, m.Burn)
	}
	if m.BurnFrom != nil {
		set = append(set, m.BurnFrom)
	}
	if m.IncreaseAllowance != nil {
		set = append(set, m.IncreaseAllowance)
	}
	if m.DecreaseAllowance != nil {
		set = append(set, m.DecreaseAllowance)
	}
	if m.TransferFrom != nil {
		set = append(set, m.TransferFrom)
	}
	return exactlyOne("token execute", set)
}

// Cw20ReceiveMsg is delivered to a contract that was sent tokens with TokenSend.
type Cw20ReceiveMsg struct {
	Sender string   `json:"sender"`
	Amount math.Int `json:"amount"`
	Msg    []byte   `json:"msg"`
}

// ReceiveEnvelope wraps the hook so receivers decode it as their "receive" variant.
type ReceiveEnvelope struct {
	Receive Cw20ReceiveMsg `json:"receive"`
}

type TokenBalanceQuery struct {
	Address string `json:"address"`
}

type TokenInfoQuery struct{}

type TokenMinterQuery struct{}

type TokenAllowanceQuery struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

// TokenQueryMsg is the token query message set. Exactly one field is set.
type TokenQueryMsg struct {
	Balance   *TokenBalanceQuery   `json:"balance,omitempty"`
	TokenInfo *TokenInfoQuery      `json:"token_info,omitempty"`
	Minter    *TokenMinterQuery    `json:"minter,omitempty"`
	Allowance *TokenAllowanceQuery `json:"allowance,omitempty"`
}

// TokenQuery is implemented by every token query variant.
type TokenQuery interface{ isTokenQuery() }

func (*TokenBalanceQuery) isTokenQuery()   {}
func (*TokenInfoQuery) isTokenQuery()      {}
func (*TokenMinterQuery) isTokenQuery()    {}
func (*TokenAllowanceQuery) isTokenQuery() {}

func (m TokenQueryMsg) Variant() (TokenQuery, error) {
	var set []TokenQuery
	if m.Balance != nil {
		set = append(set, m.Balance)
	}
	if m.TokenInfo != nil {
		set = append(set, m.TokenInfo)
	}
	if m.Minter != nil {
		set = append(set, m.Minter)
	}
	if m.Allowance != nil {
		set = append(set, m.Allowance)
	}
	return exactlyOne("token query", set)
}

type TokenBalanceResponse struct {
	Balance math.Int `json:"balance"`
}

type TokenInfoResponse struct {
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Decimals    uint8    `json:"decimals"`
	TotalSupply math.Int `json:"total_supply"`
}

type TokenMinterResponse struct {
	Minter string    `json:"minter"`
	Cap    *math.Int `json:"cap,omitempty"`
}

type TokenAllowanceResponse struct {
	Allowance math.Int `json:"allowance"`
}
