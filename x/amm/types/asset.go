package types

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/cosmos/cosmos-sdk/types/bech32"

	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

// MaxUint128 is the largest amount an Asset may carry.
var MaxUint128 = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

const (
	assetTagNative byte = 0x00
	assetTagToken  byte = 0x01
)

// TokenAssetInfo identifies a fungible token contract.
type TokenAssetInfo struct {
	ContractAddr string `json:"contract_addr"`
}

// NativeAssetInfo identifies a native currency denom.
type NativeAssetInfo struct {
	Denom string `json:"denom"`
}

// AssetInfo is either a native denom or a token contract. Exactly one of the
// two fields is set.
type AssetInfo struct {
	Token       *TokenAssetInfo  `json:"token,omitempty"`
	NativeToken *NativeAssetInfo `json:"native_token,omitempty"`
}

// NativeAsset returns the AssetInfo of a native denom.
func NativeAsset(denom string) AssetInfo {
	return AssetInfo{NativeToken: &NativeAssetInfo{Denom: denom}}
}

// TokenAsset returns the AssetInfo of a token contract.
func TokenAsset(contractAddr string) AssetInfo {
	return AssetInfo{Token: &TokenAssetInfo{ContractAddr: contractAddr}}
}

func (a AssetInfo) IsNative() bool {
	return a.NativeToken != nil
}

// Denom returns the native denom, or the empty string for tokens.
func (a AssetInfo) Denom() string {
	if a.NativeToken == nil {
		return ""
	}
	return a.NativeToken.Denom
}

// ContractAddr returns the token contract address, or the empty string for natives.
func (a AssetInfo) ContractAddr() string {
	if a.Token == nil {
		return ""
	}
	return a.Token.ContractAddr
}

func (a AssetInfo) String() string {
	if a.IsNative() {
		return a.Denom()
	}
	return a.ContractAddr()
}

// Validate checks that exactly one variant is set and that it is well formed.
// Token addresses are checked against api.
func (a AssetInfo) Validate(api contractstypes.API) error {
	switch {
	case a.Token != nil && a.NativeToken != nil:
		return ErrInvalidAssetInfo.Wrap("both token and native_token set")
	case a.NativeToken != nil:
		if err := sdk.ValidateDenom(a.NativeToken.Denom); err != nil {
			return ErrInvalidAssetInfo.Wrapf("denom %q: %s", a.NativeToken.Denom, err)
		}
		return nil
	case a.Token != nil:
		if _, err := api.AddrValidate(a.Token.ContractAddr); err != nil {
			return ErrInvalidAssetInfo.Wrapf("token %q: %s", a.Token.ContractAddr, err)
		}
		return nil
	default:
		return ErrInvalidAssetInfo.Wrap("neither token nor native_token set")
	}
}

// Equal compares by canonical form, so a token address in upper and lower
// case bech32 is the same asset.
func (a AssetInfo) Equal(b AssetInfo) bool {
	return bytes.Equal(a.rawKey(), b.rawKey())
}

// Compare defines the total order used for canonical pair keys.
func (a AssetInfo) Compare(b AssetInfo) int {
	return bytes.Compare(a.rawKey(), b.rawKey())
}

// rawKey is the tagged canonical byte form: natives by denom, tokens by
// decoded address bytes.
func (a AssetInfo) rawKey() []byte {
	if a.IsNative() {
		return append([]byte{assetTagNative}, a.Denom()...)
	}
	addr := a.ContractAddr()
	if _, bz, err := bech32.DecodeAndConvert(addr); err == nil {
		return append([]byte{assetTagToken}, bz...)
	}
	return append([]byte{assetTagToken}, strings.ToLower(addr)...)
}

// SortAssetInfos returns the two infos in canonical order.
func SortAssetInfos(infos [2]AssetInfo) [2]AssetInfo {
	if infos[0].Compare(infos[1]) > 0 {
		return [2]AssetInfo{infos[1], infos[0]}
	}
	return infos
}

// PairKey derives the order independent key of a two asset pair.
func PairKey(infos [2]AssetInfo) []byte {
	sorted := SortAssetInfos(infos)
	key := address.MustLengthPrefix(sorted[0].rawKey())
	return append(key, address.MustLengthPrefix(sorted[1].rawKey())...)
}

// Asset is an amount of an AssetInfo.
type Asset struct {
	Info   AssetInfo `json:"info"`
	Amount math.Int  `json:"amount"`
}

func NewAsset(info AssetInfo, amount math.Int) Asset {
	return Asset{Info: info, Amount: amount}
}

func (a Asset) String() string {
	return fmt.Sprintf("%s%s", a.Amount, a.Info)
}

// Validate rejects negative or wider than 128 bit amounts.
func (a Asset) Validate(api contractstypes.API) error {
	if a.Amount.IsNil() || a.Amount.IsNegative() {
		return ErrInvalidMsg.Wrapf("asset %s: amount must be non-negative", a.Info)
	}
	if err := CheckUint128(a.Amount); err != nil {
		return err
	}
	return a.Info.Validate(api)
}

// CheckUint128 fails with ErrOverflow when v does not fit in 128 bits.
func CheckUint128(v math.Int) error {
	if v.IsNegative() || v.GT(MaxUint128) {
		return ErrOverflow.Wrapf("%s does not fit in 128 bits", v)
	}
	return nil
}

// FormatAssets renders assets as "100uatom, 200paw1...".
func FormatAssets(assets ...Asset) string {
	parts := make([]string, len(assets))
	for i, a := range assets {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// TransferMsg builds the message that moves this asset from the emitting
// contract to recipient.
func (a Asset) TransferMsg(api contractstypes.API, recipient sdk.AccAddress) (contractstypes.CosmosMsg, error) {
	if a.Info.IsNative() {
		return contractstypes.BankSend{
			ToAddress: recipient,
			Amount:    sdk.NewCoins(sdk.NewCoin(a.Info.Denom(), a.Amount)),
		}, nil
	}
	token, err := api.AddrValidate(a.Info.ContractAddr())
	if err != nil {
		return nil, err
	}
	to, err := api.AddrHumanize(recipient)
	if err != nil {
		return nil, err
	}
	return contractstypes.NewWasmExecute(token, TokenExecuteMsg{
		Transfer: &TokenTransfer{Recipient: to, Amount: a.Amount},
	}, nil)
}

// TransferFromMsg builds the message that pulls this token asset from owner
// to recipient using the emitting contract's allowance.
func (a Asset) TransferFromMsg(api contractstypes.API, owner, recipient sdk.AccAddress) (contractstypes.CosmosMsg, error) {
	if a.Info.IsNative() {
		return nil, ErrInvalidAssetInfo.Wrapf("%s is not a token", a.Info)
	}
	token, err := api.AddrValidate(a.Info.ContractAddr())
	if err != nil {
		return nil, err
	}
	from, err := api.AddrHumanize(owner)
	if err != nil {
		return nil, err
	}
	to, err := api.AddrHumanize(recipient)
	if err != nil {
		return nil, err
	}
	return contractstypes.NewWasmExecute(token, TokenExecuteMsg{
		TransferFrom: &TokenTransferFrom{Owner: from, Recipient: to, Amount: a.Amount},
	}, nil)
}

// IncreaseAllowanceMsg grants spender an allowance of this token asset.
func (a Asset) IncreaseAllowanceMsg(api contractstypes.API, spender sdk.AccAddress) (contractstypes.CosmosMsg, error) {
	if a.Info.IsNative() {
		return nil, ErrInvalidAssetInfo.Wrapf("%s is not a token", a.Info)
	}
	token, err := api.AddrValidate(a.Info.ContractAddr())
	if err != nil {
		return nil, err
	}
	s, err := api.AddrHumanize(spender)
	if err != nil {
		return nil, err
	}
	return contractstypes.NewWasmExecute(token, TokenExecuteMsg{
		IncreaseAllowance: &TokenIncreaseAllowance{Spender: s, Amount: a.Amount},
	}, nil)
}

// NativeFunds collects the native portions of assets as coins.
func NativeFunds(assets ...Asset) sdk.Coins {
	coins := sdk.NewCoins()
	for _, a := range assets {
		if a.Info.IsNative() && a.Amount.IsPositive() {
			coins = coins.Add(sdk.NewCoin(a.Info.Denom(), a.Amount))
		}
	}
	return coins
}
