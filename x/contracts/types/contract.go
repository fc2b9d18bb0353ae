package types

import (
	"time"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Env describes the block and instance a contract call runs against.
type Env struct {
	BlockHeight int64
	BlockTime   time.Time
	ChainID     string
	Contract    sdk.AccAddress
}

// MessageInfo carries the caller identity and the funds moved to the contract
// before the call.
type MessageInfo struct {
	Sender sdk.AccAddress
	Funds  sdk.Coins
}

// API is the address canonicalization and validation service offered to contracts.
type API interface {
	AddrValidate(addr string) (sdk.AccAddress, error)
	AddrHumanize(addr sdk.AccAddress) (string, error)
}

// Querier lets a contract read other contracts and native balances. Queries
// never observe writes made by the query itself.
type Querier interface {
	QuerySmart(contract sdk.AccAddress, msg []byte) ([]byte, error)
	QueryBalance(addr sdk.AccAddress, denom string) sdk.Coin
}

// Deps groups everything a contract may touch during a call.
type Deps struct {
	Storage storetypes.KVStore
	API     API
	Querier Querier
	Logger  log.Logger
}

// Contract is implemented by every code uploaded to the host. Messages are
// opaque JSON; each contract decodes its own message set.
type Contract interface {
	Instantiate(deps Deps, env Env, info MessageInfo, msg []byte) (*Response, error)
	Execute(deps Deps, env Env, info MessageInfo, msg []byte) (*Response, error)
	Query(deps Deps, env Env, msg []byte) ([]byte, error)
	Reply(deps Deps, env Env, reply Reply) (*Response, error)
	Migrate(deps Deps, env Env, msg []byte) (*Response, error)
}

// ContractInfo is the host-side record of an instance.
type ContractInfo struct {
	CodeID  uint64 `json:"code_id"`
	Creator string `json:"creator"`
	Admin   string `json:"admin,omitempty"`
	Label   string `json:"label"`
}
