package keeper

import (
	"cosmossdk.io/core/address"
	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/contracts/types"
)

var (
	_ types.API     = addressAPI{}
	_ types.Querier = contractQuerier{}
)

type addressAPI struct {
	codec address.Codec
}

func (a addressAPI) AddrValidate(addr string) (sdk.AccAddress, error) {
	if addr == "" {
		return nil, types.ErrInvalidAddress.Wrap("empty address")
	}
	bz, err := a.codec.StringToBytes(addr)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("%s: %s", addr, err)
	}
	if err := sdk.VerifyAddressFormat(bz); err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("%s: %s", addr, err)
	}
	return sdk.AccAddress(bz), nil
}

func (a addressAPI) AddrHumanize(addr sdk.AccAddress) (string, error) {
	s, err := a.codec.BytesToString(addr)
	if err != nil {
		return "", types.ErrInvalidAddress.Wrapf("%X: %s", addr.Bytes(), err)
	}
	return s, nil
}

// contractQuerier answers queries issued by a contract during a call.
type contractQuerier struct {
	keeper Keeper
	ctx    sdk.Context
}

func (q contractQuerier) QuerySmart(contract sdk.AccAddress, msg []byte) ([]byte, error) {
	res, err := q.keeper.QuerySmart(q.ctx, contract, msg)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "query %s", contract)
	}
	return res, nil
}

func (q contractQuerier) QueryBalance(addr sdk.AccAddress, denom string) sdk.Coin {
	return q.keeper.bankKeeper.GetBalance(q.ctx, addr, denom)
}
