package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

// InitCmd returns a command that writes app.toml and bootstraps state with
// a tax oracle and a factory owned by --from.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and bootstrap the oracle and factory",
		Long: `Write app.toml, create the application database and instantiate the tax
oracle and the pair factory.

Example:
  pawswapd init --chain-id pawswap-devnet --from admin --home ~/.pawswap
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			if _, err := os.Stat(configPath(cc.Home)); err == nil && !overwrite {
				return fmt.Errorf("%s already exists; use --%s to reinitialize", configPath(cc.Home), flagOverwrite)
			}
			if overwrite {
				if err := os.RemoveAll(dataDir(cc.Home)); err != nil {
					return err
				}
			}
			if err := writeConfig(cc.Home, cc.Config); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			n, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()

			from, _ := cmd.Flags().GetString(flagFrom)
			owner, err := n.resolveAddress(from)
			if err != nil {
				return err
			}
			ownerAddr, err := n.bech32(owner)
			if err != nil {
				return err
			}

			boot := Bootstrap{
				ChainID: cc.Config.ChainID,
				Owner:   ownerAddr,
				Codes:   n.app.Codes,
			}
			_, err = n.runTx(func(ctx sdk.Context) (txResult, error) {
				oracleMsg, err := json.Marshal(ammtypes.OracleInstantiateMsg{Admin: &ownerAddr})
				if err != nil {
					return txResult{}, err
				}
				oracleAddr, _, err := n.app.ContractKeeper.Instantiate(ctx, n.app.Codes.Oracle, owner, owner, "oracle", oracleMsg, nil)
				if err != nil {
					return txResult{}, fmt.Errorf("instantiate oracle: %w", err)
				}
				if boot.Oracle, err = n.bech32(oracleAddr); err != nil {
					return txResult{}, err
				}

				factoryMsg, err := json.Marshal(ammtypes.FactoryInstantiateMsg{
					PairCodeID:     n.app.Codes.Pair,
					TokenCodeID:    n.app.Codes.Token,
					OracleAddr:     boot.Oracle,
					CommissionRate: &cc.Config.CommissionRate,
					OperatorFee:    &cc.Config.OperatorFee,
				})
				if err != nil {
					return txResult{}, err
				}
				factoryAddr, _, err := n.app.ContractKeeper.Instantiate(ctx, n.app.Codes.Factory, owner, owner, "factory", factoryMsg, nil)
				if err != nil {
					return txResult{}, fmt.Errorf("instantiate factory: %w", err)
				}
				if boot.Factory, err = n.bech32(factoryAddr); err != nil {
					return txResult{}, err
				}
				return txResult{Contract: boot.Factory}, nil
			})
			if err != nil {
				return err
			}
			if err := writeBootstrap(cc.Home, boot); err != nil {
				return fmt.Errorf("write bootstrap: %w", err)
			}
			cc.Logger.Info("initialized", "chain_id", boot.ChainID, "factory", boot.Factory, "oracle", boot.Oracle)
			return printJSON(cmd, boot)
		},
	}

	cmd.Flags().Bool(flagOverwrite, false, "overwrite the existing configuration and discard state")
	cmd.Flags().String(flagFrom, "admin", "owner of the oracle and factory (bech32 address or account name)")
	return cmd
}
