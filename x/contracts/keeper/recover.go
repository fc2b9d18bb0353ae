package keeper

import (
	"runtime/debug"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/contracts/types"
)

// callContract runs one entry point of contract code. A panic is logged with
// its stack and returned as ErrContractPanic, so the caller's cache context
// is dropped like for any failed call.
func callContract[T any](ctx sdk.Context, entry string, contract sdk.AccAddress, fn func() (T, error)) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctx.Logger().Error("contract panicked",
				"module", "x/"+types.ModuleName,
				"entry", entry,
				"contract", contract.String(),
				"panic", r,
				"stack", string(debug.Stack()),
			)
			var zero T
			res = zero
			err = types.ErrContractPanic.Wrapf("%s %s: %v", entry, contract, r)
		}
	}()
	return fn()
}
