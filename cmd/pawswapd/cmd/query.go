package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

// QueryCmd returns the read-only commands.
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Query contracts and balances",
	}
	cmd.AddCommand(
		SmartQueryCmd(),
		PairsCmd(),
		BalanceCmd(),
	)
	return cmd
}

// SmartQueryCmd runs a JSON query against a contract.
func SmartQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smart [contract] [json]",
		Short: "Run a smart query against a contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := jsonArg(args[1])
			if err != nil {
				return err
			}
			n, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()

			contract, err := n.app.ContractKeeper.AddressCodec().StringToBytes(args[0])
			if err != nil {
				return fmt.Errorf("contract address: %w", err)
			}
			res, err := n.app.ContractKeeper.QuerySmart(n.app.NewContext(), contract, msg)
			if err != nil {
				return err
			}
			return printJSON(cmd, json.RawMessage(res))
		},
	}
}

// PairsCmd pages through the pairs registered on the factory.
func PairsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "List pairs registered on the factory",
		Long: `List pairs in key order. --start-after takes the two asset infos of the last
pair of the previous page.

Example:
  pawswapd query pairs --limit 5 --start-after '[{"native_token":{"denom":"upaw"}},{"native_token":{"denom":"uusdc"}}]'
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			factory, _ := cmd.Flags().GetString(flagFactory)
			if factory == "" {
				boot, err := readBootstrap(cc.Home)
				if err != nil {
					return err
				}
				factory = boot.Factory
			}

			query := ammtypes.FactoryPairsQuery{}
			if s, _ := cmd.Flags().GetString(flagStartAfter); s != "" {
				var infos [2]ammtypes.AssetInfo
				if err := json.Unmarshal([]byte(s), &infos); err != nil {
					return fmt.Errorf("start-after: %w", err)
				}
				query.StartAfter = &infos
			}
			if cmd.Flags().Changed(flagLimit) {
				limit, _ := cmd.Flags().GetUint32(flagLimit)
				query.Limit = &limit
			}
			msg, err := json.Marshal(ammtypes.FactoryQueryMsg{Pairs: &query})
			if err != nil {
				return err
			}

			n, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()

			contract, err := n.app.ContractKeeper.AddressCodec().StringToBytes(factory)
			if err != nil {
				return fmt.Errorf("factory address: %w", err)
			}
			bz, err := n.app.ContractKeeper.QuerySmart(n.app.NewContext(), contract, msg)
			if err != nil {
				return err
			}
			var res ammtypes.PairsResponse
			if err := json.Unmarshal(bz, &res); err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().String(flagFactory, "", "factory address (defaults to the one created by init)")
	cmd.Flags().String(flagStartAfter, "", "asset infos of the last pair already seen, as json")
	cmd.Flags().Uint32(flagLimit, 0, "page size (factory default 10, max 30)")
	return cmd
}

// BalanceCmd prints the native balances of an account.
func BalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Show native balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()

			addr, err := n.resolveAddress(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, n.app.BankKeeper.GetAllBalances(n.app.NewContext(), addr))
		},
	}
}
