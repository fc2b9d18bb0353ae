package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// TxCmd returns the transaction commands. Each one commits a block.
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Execute or instantiate contracts and commit the result",
	}
	cmd.AddCommand(
		ExecuteCmd(),
		InstantiateCmd(),
	)
	return cmd
}

// ExecuteCmd calls a contract with a JSON message.
func ExecuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute [contract] [json]",
		Short: "Execute a contract",
		Long: `Execute a contract with a JSON message, attaching native funds if given.

Example:
  pawswapd tx execute paw1... '{"create_pair":{"asset_infos":[{"native_token":{"denom":"upaw"}},{"native_token":{"denom":"uusdc"}}]}}' --from alice
`,
		Args: cobra.ExactArgs(2),
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
			sender, funds, err := senderAndFunds(cmd, n)
			if err != nil {
				return err
			}

			res, err := n.runTx(func(ctx sdk.Context) (txResult, error) {
				data, err := n.app.ContractKeeper.Execute(ctx, contract, sender, msg, funds)
				return txResult{Contract: args[0], Data: data}, err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().String(flagFrom, "", "sender (bech32 address or account name)")
	cmd.Flags().String(flagFunds, "", "native coins to attach, e.g. 100upaw,50uusdc")
	_ = cmd.MarkFlagRequired(flagFrom)
	return cmd
}

// InstantiateCmd creates a contract instance from an uploaded code.
func InstantiateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instantiate [code-id] [json]",
		Short: "Instantiate a contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codeID, err := cast.ToUint64E(args[0])
			if err != nil || codeID == 0 {
				return fmt.Errorf("invalid code id %q", args[0])
			}
			msg, err := jsonArg(args[1])
			if err != nil {
				return err
			}
			n, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()

			sender, funds, err := senderAndFunds(cmd, n)
			if err != nil {
				return err
			}
			var admin sdk.AccAddress
			if s, _ := cmd.Flags().GetString(flagAdmin); s != "" {
				if admin, err = n.resolveAddress(s); err != nil {
					return err
				}
			}
			label, _ := cmd.Flags().GetString(flagLabel)
			if label == "" {
				label = "instance-" + uuid.NewString()
			}

			res, err := n.runTx(func(ctx sdk.Context) (txResult, error) {
				addr, data, err := n.app.ContractKeeper.Instantiate(ctx, codeID, sender, admin, label, msg, funds)
				if err != nil {
					return txResult{}, err
				}
				contract, err := n.bech32(addr)
				return txResult{Contract: contract, Data: data}, err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().String(flagFrom, "", "creator (bech32 address or account name)")
	cmd.Flags().String(flagFunds, "", "native coins to attach")
	cmd.Flags().String(flagLabel, "", "instance label (random when empty)")
	cmd.Flags().String(flagAdmin, "", "address allowed to migrate the instance")
	_ = cmd.MarkFlagRequired(flagFrom)
	return cmd
}

func senderAndFunds(cmd *cobra.Command, n *node) (sdk.AccAddress, sdk.Coins, error) {
	from, _ := cmd.Flags().GetString(flagFrom)
	sender, err := n.resolveAddress(from)
	if err != nil {
		return nil, nil, err
	}
	s, _ := cmd.Flags().GetString(flagFunds)
	funds, err := sdk.ParseCoinsNormalized(s)
	if err != nil {
		return nil, nil, fmt.Errorf("funds: %w", err)
	}
	return sender, funds, nil
}

func jsonArg(s string) ([]byte, error) {
	bz := []byte(s)
	if !json.Valid(bz) {
		return nil, errors.New("message is not valid json")
	}
	return bz, nil
}
