package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cometbft/cometbft/crypto"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
)

// Bootstrap records the instances created by init.
type Bootstrap struct {
	ChainID string      `json:"chain_id"`
	Owner   string      `json:"owner"`
	Oracle  string      `json:"oracle"`
	Factory string      `json:"factory"`
	Codes   app.CodeIDs `json:"codes"`
}

func bootstrapPath(home string) string {
	return filepath.Join(home, "config", "bootstrap.json")
}

func readBootstrap(home string) (Bootstrap, error) {
	var b Bootstrap
	bz, err := os.ReadFile(bootstrapPath(home))
	if err != nil {
		return b, fmt.Errorf("read bootstrap (run init first): %w", err)
	}
	if err := json.Unmarshal(bz, &b); err != nil {
		return b, fmt.Errorf("decode bootstrap: %w", err)
	}
	return b, nil
}

func writeBootstrap(home string, b Bootstrap) error {
	bz, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(bootstrapPath(home), bz, 0o644)
}

// node is an App opened over the on-disk database of one home directory.
type node struct {
	cli *cliContext
	db  dbm.DB
	app *app.App
}

func openNode(cmd *cobra.Command) (*node, error) {
	cc, err := getCLIContext(cmd)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir(cc.Home), 0o755); err != nil {
		return nil, err
	}
	db, err := dbm.NewDB("application", dbm.BackendType(cc.Config.DBBackend), dataDir(cc.Home))
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cc.Config.DBBackend, err)
	}
	a, err := app.New(db, cc.Logger, cc.Config.AppConfig())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &node{cli: cc, db: db, app: a}, nil
}

// Close flushes pending spans and closes the database.
func (n *node) Close() error {
	if n.cli.shutdownTracing != nil {
		if err := n.cli.shutdownTracing(context.Background()); err != nil {
			n.cli.Logger.Error("flush traces", "error", err)
		}
	}
	return n.db.Close()
}

// txResult is printed after every committed transaction.
type txResult struct {
	Height   int64            `json:"height"`
	Contract string           `json:"contract,omitempty"`
	Data     []byte           `json:"data,omitempty"`
	Events   sdk.StringEvents `json:"events"`
}

// runTx executes fn against a cached context and commits only when fn
// succeeds.
func (n *node) runTx(fn func(ctx sdk.Context) (txResult, error)) (txResult, error) {
	ctx := n.app.NewContext()
	cacheCtx, write := ctx.CacheContext()
	res, err := fn(cacheCtx)
	if err != nil {
		return txResult{}, err
	}
	write()
	id := n.app.Commit()
	res.Height = id.Version
	res.Events = sdk.StringifyEvents(ctx.EventManager().ABCIEvents())
	return res, nil
}

// resolveAddress accepts a bech32 address or a development account name,
// which maps to the same address on every run.
func (n *node) resolveAddress(s string) (sdk.AccAddress, error) {
	if s == "" {
		return nil, fmt.Errorf("address must not be empty")
	}
	if addr, err := n.app.ContractKeeper.AddressCodec().StringToBytes(s); err == nil {
		return addr, nil
	}
	return sdk.AccAddress(crypto.AddressHash([]byte(s))), nil
}

func (n *node) bech32(addr sdk.AccAddress) (string, error) {
	return n.app.ContractKeeper.AddressCodec().BytesToString(addr)
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
