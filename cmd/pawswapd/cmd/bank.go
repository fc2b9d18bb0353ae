package cmd

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
)

// BankCmd groups the native balance helpers.
func BankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Native balance helpers for development",
	}
	cmd.AddCommand(MintCmd())
	return cmd
}

// MintCmd mints native coins to an account through the faucet module.
func MintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mint [address] [coins]",
		Short: "Mint native coins to an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coins, err := sdk.ParseCoinsNormalized(args[1])
			if err != nil {
				return err
			}
			if coins.IsZero() {
				return fmt.Errorf("nothing to mint")
			}
			n, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()

			to, err := n.resolveAddress(args[0])
			if err != nil {
				return err
			}
			res, err := n.runTx(func(ctx sdk.Context) (txResult, error) {
				return txResult{}, n.app.Mint(ctx, to, coins)
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}
