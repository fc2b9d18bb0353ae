// Package factory implements the pair registry: it spawns pair instances,
// records them under their canonical PairKey and completes each record when
// the spawned pair reports back.
package factory

import (
	"bytes"
	"strings"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

var _ contractstypes.Contract = Contract{}

// Contract is the factory code.
type Contract struct {
	metrics *Metrics
}

// New returns the factory code for upload to the contract host.
func New() Contract {
	return Contract{metrics: NewMetrics()}
}

func (Contract) Instantiate(deps contractstypes.Deps, env contractstypes.Env, info contractstypes.MessageInfo, msg []byte) (*contractstypes.Response, error) {
	var m types.FactoryInstantiateMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	sender, err := deps.API.AddrHumanize(info.Sender)
	if err != nil {
		return nil, err
	}
	cfg := &types.FactoryConfig{
		Owner:          sender,
		Operator:       sender,
		OracleAddr:     m.OracleAddr,
		PairCodeID:     m.PairCodeID,
		TokenCodeID:    m.TokenCodeID,
		CommissionRate: types.DefaultCommissionRate,
		OperatorFee:    types.DefaultOperatorFee,
	}
	if m.Operator != nil {
		cfg.Operator = *m.Operator
	}
	if m.CommissionRate != nil {
		cfg.CommissionRate = *m.CommissionRate
	}
	if m.OperatorFee != nil {
		cfg.OperatorFee = *m.OperatorFee
	}
	if err := validateConfig(deps.API, cfg); err != nil {
		return nil, err
	}
	if err := saveConfig(deps.Storage, cfg); err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttribute(types.AttributeKeyOwner, cfg.Owner), nil
}

func validateConfig(api contractstypes.API, cfg *types.FactoryConfig) error {
	for _, addr := range []string{cfg.Owner, cfg.Operator} {
		if _, err := api.AddrValidate(addr); err != nil {
			return err
		}
	}
	if cfg.OracleAddr != "" {
		if _, err := api.AddrValidate(cfg.OracleAddr); err != nil {
			return err
		}
	}
	commission, err := types.ParseRate(cfg.CommissionRate)
	if err != nil {
		return err
	}
	operatorFee, err := types.ParseRate(cfg.OperatorFee)
	if err != nil {
		return err
	}
	if commission.Add(operatorFee).GT(math.LegacyOneDec()) {
		return types.ErrInvalidRate.Wrapf("commission %s plus operator fee %s exceeds one", commission, operatorFee)
	}
	return nil
}

func (c Contract) Execute(deps contractstypes.Deps, env contractstypes.Env, info contractstypes.MessageInfo, msg []byte) (*contractstypes.Response, error) {
	var m types.FactoryExecuteMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	variant, err := m.Variant()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return nil, err
	}

	switch v := variant.(type) {
	case *types.CreatePair:
		return c.createPair(deps, env, info, cfg, v)
	case *types.FactoryProvideLiquidity:
		return provideLiquidity(deps, env, info, v)
	}

	// everything below is owner-only
	if err := requireOwner(deps.API, cfg, info.Sender); err != nil {
		return nil, err
	}
	if !info.Funds.Empty() {
		return nil, types.ErrInvalidFunds.Wrapf("unexpected funds %s", info.Funds)
	}
	switch v := variant.(type) {
	case *types.UpdateConfig:
		return updateConfig(deps, cfg, v)
	case *types.AddPair:
		return c.addPair(deps, v)
	case *types.MigrateContract:
		return migrateContract(deps, v)
	case *types.RestrictAsset:
		return restrictAsset(deps, v)
	case *types.AddCreator:
		return addCreator(deps, v)
	case *types.RemoveCreator:
		return removeCreator(deps, v)
	default:
		return nil, types.ErrInvalidMsg.Wrapf("unhandled factory execute %T", variant)
	}
}

func requireOwner(api contractstypes.API, cfg *types.FactoryConfig, sender sdk.AccAddress) error {
	owner, err := api.AddrValidate(cfg.Owner)
	if err != nil {
		return err
	}
	if !owner.Equals(sender) {
		return types.ErrUnauthorized.Wrapf("%s is not the factory owner", sender)
	}
	return nil
}

// restrictedPrefixOf returns "a/b" for a native denom "a/b/c..." and false
// for anything with fewer segments.
func restrictedPrefixOf(info types.AssetInfo) (string, bool) {
	if !info.IsNative() {
		return "", false
	}
	parts := strings.Split(info.Denom(), "/")
	if len(parts) <= 2 {
		return "", false
	}
	return parts[0] + "/" + parts[1], true
}

// createPair records a pending pair and spawns its instance. The record is
// completed by Reply.
func (c Contract) createPair(
	deps contractstypes.Deps,
	env contractstypes.Env,
	info contractstypes.MessageInfo,
	cfg *types.FactoryConfig,
	m *types.CreatePair,
) (*contractstypes.Response, error) {
	for _, ai := range m.AssetInfos {
		if err := ai.Validate(deps.API); err != nil {
			return nil, err
		}
	}
	if m.AssetInfos[0].Equal(m.AssetInfos[1]) {
		return nil, types.ErrInvalidAssetInfo.Wrapf("pair of %s with itself", m.AssetInfos[0])
	}
	for _, ai := range m.AssetInfos {
		p, ok := restrictedPrefixOf(ai)
		if ok && isRestricted(deps.Storage, p) && !isCreator(deps.Storage, info.Sender) {
			return nil, types.ErrUnauthorized.Wrapf("%s may not create pairs with %s", info.Sender, ai)
		}
	}
	if hasPair(deps.Storage, types.PairKey(m.AssetInfos)) {
		return nil, types.ErrPairExisted.Wrapf("pair %s", types.PairLabel(m.AssetInfos))
	}
	if m.ProvideLiquidity == nil && !info.Funds.Empty() {
		return nil, types.ErrInvalidFunds.Wrapf("funds %s sent without liquidity parameters", info.Funds)
	}

	self, err := deps.API.AddrHumanize(env.Contract)
	if err != nil {
		return nil, err
	}
	pairAdmin := self
	if m.PairAdmin != nil && *m.PairAdmin != "" {
		if _, err := deps.API.AddrValidate(*m.PairAdmin); err != nil {
			return nil, err
		}
		pairAdmin = *m.PairAdmin
	}
	operator := cfg.Operator
	if m.Operator != nil && *m.Operator != "" {
		if _, err := deps.API.AddrValidate(*m.Operator); err != nil {
			return nil, err
		}
		operator = *m.Operator
	}

	if err := savePair(deps.Storage, types.NewPendingRecord(m.AssetInfos, cfg.OracleAddr, cfg.CommissionRate, cfg.OperatorFee)); err != nil {
		return nil, err
	}

	pairMsg, err := types.EncodeMsg(types.PairInstantiateMsg{
		OracleAddr:     cfg.OracleAddr,
		AssetInfos:     m.AssetInfos,
		TokenCodeID:    cfg.TokenCodeID,
		CommissionRate: &cfg.CommissionRate,
		OperatorFee:    &cfg.OperatorFee,
		Admin:          &pairAdmin,
		Operator:       &operator,
	})
	if err != nil {
		return nil, err
	}

	resp := contractstypes.NewResponse().
		AddAttribute(types.AttributeKeyAction, types.ActionCreatePair).
		AddAttribute(types.AttributeKeyPair, types.PairLabel(m.AssetInfos)).
		AddSubMessage(contractstypes.NewReplyOnSuccess(contractstypes.WasmInstantiate{
			CodeID: cfg.PairCodeID,
			Admin:  env.Contract,
			Label:  "pair " + types.PairLabel(m.AssetInfos),
			Msg:    pairMsg,
		}, types.CreatePairReplyID))

	if p := m.ProvideLiquidity; p != nil {
		msgs, err := seedLiquidity(deps, env, info, m.AssetInfos, p)
		if err != nil {
			return nil, err
		}
		resp.AddMessage(msgs...)
	}

	c.metrics.PairsCreated.Inc()
	return resp, nil
}

// seedLiquidity pulls the token portions of p into the factory and queues
// the self-call that forwards everything to the pair once it is registered.
func seedLiquidity(
	deps contractstypes.Deps,
	env contractstypes.Env,
	info contractstypes.MessageInfo,
	infos [2]types.AssetInfo,
	p *types.ProvideLiquidityParams,
) ([]contractstypes.CosmosMsg, error) {
	for _, a := range p.Assets {
		if err := a.Validate(deps.API); err != nil {
			return nil, err
		}
	}
	if !bytes.Equal(types.PairKey([2]types.AssetInfo{p.Assets[0].Info, p.Assets[1].Info}), types.PairKey(infos)) {
		return nil, types.ErrAssetMismatch.Wrapf("assets %s do not match pair %s",
			types.FormatAssets(p.Assets[0], p.Assets[1]), types.PairLabel(infos))
	}
	if !info.Funds.Equal(types.NativeFunds(p.Assets[0], p.Assets[1])) {
		return nil, types.ErrInvalidFunds.Wrapf("sent %s, declared %s", info.Funds, types.FormatAssets(p.Assets[0], p.Assets[1]))
	}
	receiver, err := deps.API.AddrHumanize(info.Sender)
	if err != nil {
		return nil, err
	}
	if p.Receiver != nil && *p.Receiver != "" {
		if _, err := deps.API.AddrValidate(*p.Receiver); err != nil {
			return nil, err
		}
		receiver = *p.Receiver
	}

	var msgs []contractstypes.CosmosMsg
	for _, a := range p.Assets {
		if a.Info.IsNative() || a.Amount.IsZero() {
			continue
		}
		pull, err := a.TransferFromMsg(deps.API, info.Sender, env.Contract)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, pull)
	}
	forward, err := contractstypes.NewWasmExecute(env.Contract, types.FactoryExecuteMsg{
		ProvideLiquidity: &types.FactoryProvideLiquidity{Assets: p.Assets, Receiver: receiver},
	}, info.Funds)
	if err != nil {
		return nil, err
	}
	return append(msgs, forward), nil
}

// provideLiquidity forwards liquidity held by the factory to a registered
// pair. Only the factory's own address may call it.
func provideLiquidity(deps contractstypes.Deps, env contractstypes.Env, info contractstypes.MessageInfo, m *types.FactoryProvideLiquidity) (*contractstypes.Response, error) {
	if !info.Sender.Equals(env.Contract) {
		return nil, types.ErrUnauthorized.Wrapf("%s may not use the factory passthrough", info.Sender)
	}
	record, err := loadPair(deps.Storage, [2]types.AssetInfo{m.Assets[0].Info, m.Assets[1].Info})
	if err != nil {
		return nil, err
	}
	reg, ok := record.Registration.(types.Registered)
	if !ok {
		return nil, types.ErrNotFound.Wrapf("pair %s is not registered yet", types.PairLabel(record.AssetInfos))
	}
	pairAddr, err := deps.API.AddrValidate(reg.ContractAddr)
	if err != nil {
		return nil, err
	}

	resp := contractstypes.NewResponse()
	for _, a := range m.Assets {
		if a.Info.IsNative() || a.Amount.IsZero() {
			continue
		}
		allow, err := a.IncreaseAllowanceMsg(deps.API, pairAddr)
		if err != nil {
			return nil, err
		}
		resp.AddMessage(allow)
	}
	receiver := m.Receiver
	provide, err := contractstypes.NewWasmExecute(pairAddr, types.PairExecuteMsg{
		ProvideLiquidity: &types.PairProvideLiquidity{Assets: m.Assets, Receiver: &receiver},
	}, types.NativeFunds(m.Assets[0], m.Assets[1]))
	if err != nil {
		return nil, err
	}
	return resp.AddMessage(provide).
		AddAttribute(types.AttributeKeyAction, types.ActionProvideLiquidity).
		AddAttribute(types.AttributeKeyPairContractAddr, reg.ContractAddr), nil
}

func updateConfig(deps contractstypes.Deps, cfg *types.FactoryConfig, m *types.UpdateConfig) (*contractstypes.Response, error) {
	if m.Owner != nil {
		cfg.Owner = *m.Owner
	}
	if m.Operator != nil {
		cfg.Operator = *m.Operator
	}
	if m.OracleAddr != nil {
		cfg.OracleAddr = *m.OracleAddr
	}
	if m.TokenCodeID != nil {
		cfg.TokenCodeID = *m.TokenCodeID
	}
	if m.PairCodeID != nil {
		cfg.PairCodeID = *m.PairCodeID
	}
	if m.CommissionRate != nil {
		cfg.CommissionRate = *m.CommissionRate
	}
	if m.OperatorFee != nil {
		cfg.OperatorFee = *m.OperatorFee
	}
	if err := validateConfig(deps.API, cfg); err != nil {
		return nil, err
	}
	if err := saveConfig(deps.Storage, cfg); err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttribute(types.AttributeKeyAction, types.ActionUpdateConfig), nil
}

// addPair registers an existing pair contract directly as Registered.
func (c Contract) addPair(deps contractstypes.Deps, m *types.AddPair) (*contractstypes.Response, error) {
	pi := m.PairInfo
	for _, ai := range pi.AssetInfos {
		if err := ai.Validate(deps.API); err != nil {
			return nil, err
		}
	}
	for _, addr := range []string{pi.ContractAddr, pi.LiquidityToken} {
		if _, err := deps.API.AddrValidate(addr); err != nil {
			return nil, err
		}
	}
	if hasPair(deps.Storage, types.PairKey(pi.AssetInfos)) {
		return nil, types.ErrPairExisted.Wrapf("pair %s", pi.Label())
	}
	record, err := types.NewPendingRecord(pi.AssetInfos, pi.OracleAddr, pi.CommissionRate, pi.OperatorFee).
		Register(pi.ContractAddr, pi.LiquidityToken)
	if err != nil {
		return nil, err
	}
	if err := savePair(deps.Storage, record); err != nil {
		return nil, err
	}
	c.metrics.PairsRegistered.Inc()
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionAddPair),
		sdk.NewAttribute(types.AttributeKeyPair, pi.Label()),
	), nil
}

func migrateContract(deps contractstypes.Deps, m *types.MigrateContract) (*contractstypes.Response, error) {
	target, err := deps.API.AddrValidate(m.ContractAddr)
	if err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().
		AddAttribute(types.AttributeKeyAction, types.ActionMigrate).
		AddMessage(contractstypes.WasmMigrate{Contract: target, NewCodeID: m.NewCodeID, Msg: m.Msg}), nil
}

func restrictAsset(deps contractstypes.Deps, m *types.RestrictAsset) (*contractstypes.Response, error) {
	if m.Prefix == "" {
		return nil, types.ErrInvalidMsg.Wrap("empty prefix")
	}
	if isRestricted(deps.Storage, m.Prefix) {
		return nil, types.ErrRestrictPrefixExisted.Wrapf("prefix %q", m.Prefix)
	}
	setRestricted(deps.Storage, m.Prefix)
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionRestrictAsset),
		sdk.NewAttribute(types.AttributeKeyPrefix, m.Prefix),
	), nil
}

func addCreator(deps contractstypes.Deps, m *types.AddCreator) (*contractstypes.Response, error) {
	addr, err := deps.API.AddrValidate(m.Address)
	if err != nil {
		return nil, err
	}
	if isCreator(deps.Storage, addr) {
		return nil, types.ErrCreatorAlreadyExists.Wrapf("creator %s", m.Address)
	}
	setCreator(deps.Storage, addr, m.Address)
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionAddCreator),
		sdk.NewAttribute(types.AttributeKeyCreator, m.Address),
	), nil
}

func removeCreator(deps contractstypes.Deps, m *types.RemoveCreator) (*contractstypes.Response, error) {
	addr, err := deps.API.AddrValidate(m.Address)
	if err != nil {
		return nil, err
	}
	if !isCreator(deps.Storage, addr) {
		return nil, types.ErrCreatorNotFound.Wrapf("creator %s", m.Address)
	}
	deleteCreator(deps.Storage, addr)
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionRemoveCreator),
		sdk.NewAttribute(types.AttributeKeyCreator, m.Address),
	), nil
}

// Reply completes the record of a freshly instantiated pair. The address
// comes from the host acknowledgement and the key from querying the pair.
func (c Contract) Reply(deps contractstypes.Deps, env contractstypes.Env, reply contractstypes.Reply) (*contractstypes.Response, error) {
	if reply.ID != types.CreatePairReplyID {
		return nil, types.ErrInvalidMsg.Wrapf("unknown reply id %d", reply.ID)
	}
	ack, err := contractstypes.ParseReplyInstantiateData(reply)
	if err != nil {
		return nil, err
	}
	pairAddr, err := deps.API.AddrValidate(ack.Address)
	if err != nil {
		return nil, err
	}

	query, err := types.EncodeMsg(types.PairQueryMsg{Pair: &types.PairInfoQuery{}})
	if err != nil {
		return nil, err
	}
	bz, err := deps.Querier.QuerySmart(pairAddr, query)
	if err != nil {
		return nil, err
	}
	var pi types.PairInfo
	if err := types.DecodeMsg(bz, &pi); err != nil {
		return nil, err
	}

	record, err := loadPair(deps.Storage, pi.AssetInfos)
	if err != nil {
		return nil, err
	}
	if record, err = record.Register(ack.Address, pi.LiquidityToken); err != nil {
		return nil, err
	}
	if err := savePair(deps.Storage, record); err != nil {
		return nil, err
	}

	c.metrics.PairsRegistered.Inc()
	deps.Logger.Info("pair registered", "pair", pi.Label(), "contract", ack.Address, "liquidity_token", pi.LiquidityToken)
	return contractstypes.NewResponse().AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionRegisterPair),
		sdk.NewAttribute(types.AttributeKeyPairContractAddr, ack.Address),
		sdk.NewAttribute(types.AttributeKeyLiquidityToken, pi.LiquidityToken),
	), nil
}

// Migrate rewrites the set configuration fields.
func (Contract) Migrate(deps contractstypes.Deps, env contractstypes.Env, msg []byte) (*contractstypes.Response, error) {
	var m types.FactoryMigrateMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return nil, err
	}
	if m.PairCodeID != nil {
		cfg.PairCodeID = *m.PairCodeID
	}
	if m.TokenCodeID != nil {
		cfg.TokenCodeID = *m.TokenCodeID
	}
	if m.OracleAddr != nil {
		cfg.OracleAddr = *m.OracleAddr
	}
	if m.CommissionRate != nil {
		cfg.CommissionRate = *m.CommissionRate
	}
	if m.OperatorFee != nil {
		cfg.OperatorFee = *m.OperatorFee
	}
	if err := validateConfig(deps.API, cfg); err != nil {
		return nil, err
	}
	if err := saveConfig(deps.Storage, cfg); err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttribute(types.AttributeKeyAction, types.ActionMigrate), nil
}
