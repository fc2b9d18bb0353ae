package keeper_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/contracts/keeper"
	"github.com/paw-chain/pawswap/x/contracts/types"
)

var errScripted = errors.New("scripted failure")

const spawnReplyID = 99

// scripted is a scriptable contract: each message says what to write, which
// sub-messages to emit and whether to fail afterwards.
type scripted struct {
	log *[]string
}

type scriptedMsg struct {
	Name  string         `json:"name,omitempty"`
	Set   string         `json:"set,omitempty"`
	Fail  bool           `json:"fail,omitempty"`
	Panic bool           `json:"panic,omitempty"`
	Loop  int            `json:"loop,omitempty"`
	Pay   *scriptedPay   `json:"pay,omitempty"`
	Spawn uint64         `json:"spawn,omitempty"`
	Calls []scriptedCall `json:"calls,omitempty"`
}

type scriptedPay struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type scriptedCall struct {
	Contract string        `json:"contract"`
	Msg      scriptedMsg   `json:"msg"`
	ID       uint64        `json:"id,omitempty"`
	ReplyOn  types.ReplyOn `json:"reply_on,omitempty"`
}

type scriptedQuery struct {
	Get string `json:"get"`
}

func (p scripted) Instantiate(deps types.Deps, env types.Env, info types.MessageInfo, msg []byte) (*types.Response, error) {
	return p.Execute(deps, env, info, msg)
}

func (p scripted) Execute(deps types.Deps, env types.Env, _ types.MessageInfo, msg []byte) (*types.Response, error) {
	var m scriptedMsg
	if err := json.Unmarshal(msg, &m); err != nil {
		return nil, err
	}
	*p.log = append(*p.log, "exec:"+m.Name)
	if m.Set != "" {
		deps.Storage.Set([]byte(m.Set), []byte(m.Name))
	}

	resp := types.NewResponse()
	if m.Name != "" {
		resp.AddAttribute("name", m.Name)
	}
	if m.Loop > 0 {
		self, err := types.NewWasmExecute(env.Contract, scriptedMsg{Name: m.Name, Loop: m.Loop - 1}, nil)
		if err != nil {
			return nil, err
		}
		resp.AddMessage(self)
	}
	for _, c := range m.Calls {
		addr, err := deps.API.AddrValidate(c.Contract)
		if err != nil {
			return nil, err
		}
		call, err := types.NewWasmExecute(addr, c.Msg, nil)
		if err != nil {
			return nil, err
		}
		resp.AddSubMessage(types.SubMsg{ID: c.ID, Msg: call, ReplyOn: c.ReplyOn})
	}
	if m.Pay != nil {
		to, err := deps.API.AddrValidate(m.Pay.To)
		if err != nil {
			return nil, err
		}
		coins, err := sdk.ParseCoinsNormalized(m.Pay.Amount)
		if err != nil {
			return nil, err
		}
		resp.AddMessage(types.BankSend{ToAddress: to, Amount: coins})
	}
	if m.Spawn != 0 {
		resp.AddSubMessage(types.NewReplyOnSuccess(types.WasmInstantiate{
			CodeID: m.Spawn,
			Admin:  env.Contract,
			Label:  "child",
			Msg:    []byte(`{"name":"child"}`),
		}, spawnReplyID))
	}
	if m.Panic {
		panic("scripted panic in " + m.Name)
	}
	if m.Fail {
		return nil, errScripted
	}
	return resp, nil
}

func (scripted) Query(deps types.Deps, _ types.Env, msg []byte) ([]byte, error) {
	var q scriptedQuery
	if err := json.Unmarshal(msg, &q); err != nil {
		return nil, err
	}
	return json.Marshal(string(deps.Storage.Get([]byte(q.Get))))
}

func (p scripted) Reply(deps types.Deps, _ types.Env, reply types.Reply) (*types.Response, error) {
	outcome := "ok"
	if reply.Result.Ok == nil {
		outcome = "err"
	}
	*p.log = append(*p.log, fmt.Sprintf("reply:%d:%s", reply.ID, outcome))
	if reply.Result.Ok == nil {
		deps.Storage.Set([]byte(fmt.Sprintf("reply/%d", reply.ID)), []byte(reply.Result.Err))
		return types.NewResponse(), nil
	}
	deps.Storage.Set([]byte(fmt.Sprintf("reply/%d", reply.ID)), []byte(outcome))
	if reply.ID == spawnReplyID {
		ack, err := types.ParseReplyInstantiateData(reply)
		if err != nil {
			return nil, err
		}
		deps.Storage.Set([]byte("child"), []byte(ack.Address))
	}
	return types.NewResponse(), nil
}

func (p scripted) Migrate(deps types.Deps, _ types.Env, _ []byte) (*types.Response, error) {
	*p.log = append(*p.log, "migrate")
	deps.Storage.Set([]byte("migrated"), []byte("yes"))
	return types.NewResponse(), nil
}

type scriptedFixture struct {
	*keepertest.AMMFixture
	code uint64
	log  []string
}

func setupScripted(t *testing.T) *scriptedFixture {
	t.Helper()
	pf := &scriptedFixture{AMMFixture: keepertest.AMMKeeper(t)}
	pf.code = pf.App.ContractKeeper.StoreCode(scripted{log: &pf.log})
	return pf
}

func (pf *scriptedFixture) spawn(t *testing.T, admin sdk.AccAddress) sdk.AccAddress {
	t.Helper()
	return pf.Instantiate(pf.code, keepertest.Addr("creator"), admin, scriptedMsg{})
}

func (pf *scriptedFixture) get(t *testing.T, contract sdk.AccAddress, key string) string {
	t.Helper()
	var v string
	require.NoError(t, pf.Query(contract, scriptedQuery{Get: key}, &v))
	return v
}

func TestSubMessagesRunDepthFirstWithReplies(t *testing.T) {
	pf := setupScripted(t)
	a, b, c := pf.spawn(t, nil), pf.spawn(t, nil), pf.spawn(t, nil)
	pf.log = nil
	pf.ResetEvents()

	pf.MustExecute(a, keepertest.Addr("sender"), scriptedMsg{
		Name: "a",
		Calls: []scriptedCall{
			{
				Contract: pf.Bech32(b), ID: 1, ReplyOn: types.ReplyOnSuccess,
				Msg: scriptedMsg{Name: "b1", Calls: []scriptedCall{{Contract: pf.Bech32(c), Msg: scriptedMsg{Name: "c1"}}}},
			},
			{Contract: pf.Bech32(b), Msg: scriptedMsg{Name: "b2"}},
		},
	})

	require.Equal(t, []string{"exec:a", "exec:b1", "exec:c1", "reply:1:ok", "exec:b2"}, pf.log)
	require.Equal(t, []string{"a", "b1", "c1", "b2"}, keepertest.EventAttrs(pf.Events(), types.EventTypeWasm, "name"))
	require.Equal(t, []string{"1"}, keepertest.EventAttrs(pf.Events(), types.EventTypeReply, types.AttributeKeyReplyID))
	require.Equal(t, "ok", pf.get(t, a, "reply/1"))
}

func TestFailedSubMessageIsDiscardedBeforeErrorReply(t *testing.T) {
	pf := setupScripted(t)
	a, b := pf.spawn(t, nil), pf.spawn(t, nil)
	pf.ResetEvents()

	pf.MustExecute(a, keepertest.Addr("sender"), scriptedMsg{
		Name: "a",
		Set:  "ka",
		Calls: []scriptedCall{{
			Contract: pf.Bech32(b), ID: 2, ReplyOn: types.ReplyOnError,
			Msg: scriptedMsg{Name: "b", Set: "kb", Fail: true},
		}},
	})

	require.Equal(t, "a", pf.get(t, a, "ka"))
	require.Empty(t, pf.get(t, b, "kb"))
	require.Contains(t, pf.get(t, a, "reply/2"), errScripted.Error())
	require.Equal(t, []string{"a"}, keepertest.EventAttrs(pf.Events(), types.EventTypeWasm, "name"))
}

func TestReplyOnErrorSkipsSuccess(t *testing.T) {
	pf := setupScripted(t)
	a, b := pf.spawn(t, nil), pf.spawn(t, nil)

	pf.MustExecute(a, keepertest.Addr("sender"), scriptedMsg{Calls: []scriptedCall{
		{Contract: pf.Bech32(b), ID: 3, ReplyOn: types.ReplyOnError, Msg: scriptedMsg{Name: "b"}},
		{Contract: pf.Bech32(b), ID: 4, ReplyOn: types.ReplyAlways, Msg: scriptedMsg{Name: "b"}},
	}})
	require.Empty(t, pf.get(t, a, "reply/3"))
	require.Equal(t, "ok", pf.get(t, a, "reply/4"))
}

func TestUncaughtFailureRevertsWholeCall(t *testing.T) {
	for _, replyOn := range []types.ReplyOn{types.ReplyNever, types.ReplyOnSuccess} {
		t.Run(replyOn.String(), func(t *testing.T) {
			pf := setupScripted(t)
			a, b := pf.spawn(t, nil), pf.spawn(t, nil)
			sender := keepertest.Addr("sender")
			pf.Fund(sender, sdk.NewInt64Coin("upaw", 10))

			err := pf.Execute(a, sender, scriptedMsg{
				Name: "a",
				Set:  "ka",
				Calls: []scriptedCall{{
					Contract: pf.Bech32(b), ID: 5, ReplyOn: replyOn,
					Msg: scriptedMsg{Name: "b", Fail: true},
				}},
			}, sdk.NewInt64Coin("upaw", 10))
			require.ErrorIs(t, err, errScripted)

			require.Empty(t, pf.get(t, a, "ka"))
			require.Empty(t, pf.get(t, a, "reply/5"))
			require.Equal(t, "10", pf.Balance(sender, "upaw").String())
		})
	}
}

func TestCallDepthIsBounded(t *testing.T) {
	pf := setupScripted(t)
	a := pf.spawn(t, nil)

	require.NoError(t, pf.Execute(a, keepertest.Addr("sender"), scriptedMsg{Name: "loop", Loop: 5}))
	err := pf.Execute(a, keepertest.Addr("sender"), scriptedMsg{Name: "loop", Loop: keeper.MaxCallDepth + 4})
	require.ErrorIs(t, err, types.ErrMaxCallDepth)
}

func TestBankSendMovesContractFunds(t *testing.T) {
	pf := setupScripted(t)
	a := pf.spawn(t, nil)
	sender, payee := keepertest.Addr("sender"), keepertest.Addr("payee")
	pf.Fund(sender, sdk.NewInt64Coin("upaw", 10))

	pf.MustExecute(a, sender, scriptedMsg{Pay: &scriptedPay{To: pf.Bech32(payee), Amount: "4upaw"}}, sdk.NewInt64Coin("upaw", 10))
	require.Equal(t, "4", pf.Balance(payee, "upaw").String())
	require.Equal(t, "6", pf.Balance(a, "upaw").String())

	err := pf.Execute(a, sender, scriptedMsg{Pay: &scriptedPay{To: pf.Bech32(payee), Amount: "7upaw"}})
	require.Error(t, err)
	require.Equal(t, "6", pf.Balance(a, "upaw").String())
}

func TestInstantiateAddressesAreDeterministic(t *testing.T) {
	pf := setupScripted(t)
	first := pf.spawn(t, nil)
	second := pf.spawn(t, nil)

	require.Equal(t, keeper.ContractAddress(pf.code, 1), first)
	require.Equal(t, keeper.ContractAddress(pf.code, 2), second)
	require.NotEqual(t, first, second)

	info, err := pf.App.ContractKeeper.GetContractInfo(pf.Ctx, first)
	require.NoError(t, err)
	require.Equal(t, pf.code, info.CodeID)
	require.Equal(t, pf.Bech32(keepertest.Addr("creator")), info.Creator)
	require.Empty(t, info.Admin)
}

func TestSpawnedInstanceIsReportedInReply(t *testing.T) {
	pf := setupScripted(t)
	parent := pf.spawn(t, nil)

	pf.MustExecute(parent, keepertest.Addr("sender"), scriptedMsg{Spawn: pf.code})

	child := pf.get(t, parent, "child")
	require.NotEmpty(t, child)
	info, err := pf.App.ContractKeeper.GetContractInfo(pf.Ctx, pf.MustAddr(child))
	require.NoError(t, err)
	require.Equal(t, pf.Bech32(parent), info.Admin)
	require.Equal(t, pf.Bech32(parent), info.Creator)
	require.Equal(t, "child", info.Label)
}

func TestMigrateRequiresAdmin(t *testing.T) {
	pf := setupScripted(t)
	admin := keepertest.Addr("admin")
	withAdmin, withoutAdmin := pf.spawn(t, admin), pf.spawn(t, nil)
	next := pf.App.ContractKeeper.StoreCode(scripted{log: &pf.log})

	_, err := pf.App.ContractKeeper.Migrate(pf.Ctx, withAdmin, keepertest.Addr("intruder"), next, []byte(`{}`))
	require.ErrorIs(t, err, types.ErrUnauthorized)
	_, err = pf.App.ContractKeeper.Migrate(pf.Ctx, withoutAdmin, admin, next, []byte(`{}`))
	require.ErrorIs(t, err, types.ErrUnauthorized)
	_, err = pf.App.ContractKeeper.Migrate(pf.Ctx, withAdmin, admin, 999, []byte(`{}`))
	require.ErrorIs(t, err, types.ErrNoSuchCode)

	_, err = pf.App.ContractKeeper.Migrate(pf.Ctx, withAdmin, admin, next, []byte(`{}`))
	require.NoError(t, err)
	info, err := pf.App.ContractKeeper.GetContractInfo(pf.Ctx, withAdmin)
	require.NoError(t, err)
	require.Equal(t, next, info.CodeID)
	require.Equal(t, "yes", pf.get(t, withAdmin, "migrated"))
}

func TestUnknownTargets(t *testing.T) {
	pf := setupScripted(t)
	_, _, err := pf.App.ContractKeeper.Instantiate(pf.Ctx, 999, keepertest.Addr("creator"), nil, "x", []byte(`{}`), nil)
	require.ErrorIs(t, err, types.ErrNoSuchCode)

	_, err = pf.App.ContractKeeper.Execute(pf.Ctx, keepertest.Addr("nobody"), keepertest.Addr("sender"), []byte(`{}`), nil)
	require.ErrorIs(t, err, types.ErrNoSuchContract)

	_, err = pf.App.ContractKeeper.QuerySmart(pf.Ctx, keepertest.Addr("nobody"), []byte(`{}`))
	require.ErrorIs(t, err, types.ErrNoSuchContract)
}

func TestContractPanicFailsOnlyTheCall(t *testing.T) {
	pf := setupScripted(t)
	a, b := pf.spawn(t, nil), pf.spawn(t, nil)
	sender := keepertest.Addr("sender")
	pf.Fund(sender, sdk.NewInt64Coin("upaw", 10))

	err := pf.Execute(a, sender, scriptedMsg{Name: "a", Set: "ka", Panic: true}, sdk.NewInt64Coin("upaw", 10))
	require.ErrorIs(t, err, types.ErrContractPanic)
	require.Contains(t, err.Error(), "scripted panic in a")
	require.Empty(t, pf.get(t, a, "ka"))
	require.Equal(t, "10", pf.Balance(sender, "upaw").String())

	// a panicking sub-message is reported to the caller's reply like any error
	pf.MustExecute(a, sender, scriptedMsg{
		Name: "a",
		Set:  "ka",
		Calls: []scriptedCall{{
			Contract: pf.Bech32(b), ID: 6, ReplyOn: types.ReplyOnError,
			Msg: scriptedMsg{Name: "b", Set: "kb", Panic: true},
		}},
	})
	require.Equal(t, "a", pf.get(t, a, "ka"))
	require.Empty(t, pf.get(t, b, "kb"))
	require.Contains(t, pf.get(t, a, "reply/6"), "contract panicked")

	_, _, err = pf.App.ContractKeeper.Instantiate(pf.Ctx, pf.code, sender, nil, "x", []byte(`{"name":"i","panic":true}`), nil)
	require.ErrorIs(t, err, types.ErrContractPanic)

	pf.MustExecute(a, sender, scriptedMsg{Name: "after"})
	require.Contains(t, pf.log, "exec:after")
}
