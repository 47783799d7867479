package cli

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// GetTxCmd returns the commands that build dex messages. Messages are
// validated and printed as amino JSON for signing elsewhere.
func GetTxCmd() *cobra.Command {
	dexTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Build dex messages",
		SuggestionsMinimumDistance: 2,
	}

	dexTxCmd.AddCommand(
		CmdAddLiquidity(),
		CmdRemoveLiquidity(),
		CmdSwapExactIn(),
		CmdSwapExactOut(),
		CmdBootstrapContribute(),
		CmdBootstrapEnd(),
		CmdBootstrapClaim(),
		CmdBootstrapRefund(),
	)

	return dexTxCmd
}

type validatable interface {
	ValidateBasic() error
}

func printMsg(cmd *cobra.Command, msg validatable) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	bz, err := types.ModuleCdc.MarshalJSONIndent(msg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return nil
}

func addSenderFlags(cmd *cobra.Command, withDeadline bool) {
	cmd.Flags().String(FlagFrom, "", "bech32 address of the sender")
	_ = cmd.MarkFlagRequired(FlagFrom)
	if withDeadline {
		cmd.Flags().Int64(FlagDeadline, 0, "block height from which the message is rejected")
		_ = cmd.MarkFlagRequired(FlagDeadline)
	}
}

// senderFields reads --from, --deadline and --recipient. The recipient
// defaults to the sender.
func senderFields(cmd *cobra.Command) (from, recipient string, deadline int64, err error) {
	if from, err = cmd.Flags().GetString(FlagFrom); err != nil {
		return
	}
	if cmd.Flags().Lookup(FlagDeadline) != nil {
		if deadline, err = cmd.Flags().GetInt64(FlagDeadline); err != nil {
			return
		}
	}
	recipient = from
	if cmd.Flags().Lookup(FlagRecipient) != nil {
		var r string
		if r, err = cmd.Flags().GetString(FlagRecipient); err != nil {
			return
		}
		if r != "" {
			recipient = r
		}
	}
	return
}

func minAmount(cmd *cobra.Command, flag string) (math.Int, error) {
	raw, err := cmd.Flags().GetString(flag)
	if err != nil {
		return math.Int{}, err
	}
	return parseAmount(flag, raw)
}

// CmdAddLiquidity returns a CLI command building MsgAddLiquidity
func CmdAddLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-liquidity [asset-a] [asset-b] [amount-a] [amount-b]",
		Short: "Deposit into a trading pair",
		Long: `Deposit up to amount-a and amount-b. The pool ratio decides how much of each
side is taken; the minimum flags bound that amount.

Example:
  $ pawswap tx dex add-liquidity uatom uusdt 1000 4000 --from paw1... --deadline 120000`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _, deadline, err := senderFields(cmd)
			if err != nil {
				return err
			}
			amountA, err := parseAmount("amount-a", args[2])
			if err != nil {
				return err
			}
			amountB, err := parseAmount("amount-b", args[3])
			if err != nil {
				return err
			}
			minA, err := minAmount(cmd, FlagAmountAMin)
			if err != nil {
				return err
			}
			minB, err := minAmount(cmd, FlagAmountBMin)
			if err != nil {
				return err
			}

			return printMsg(cmd, &types.MsgAddLiquidity{
				Sender:         from,
				AssetA:         args[0],
				AssetB:         args[1],
				AmountADesired: amountA,
				AmountBDesired: amountB,
				AmountAMin:     minA,
				AmountBMin:     minB,
				Deadline:       deadline,
			})
		},
	}

	addSenderFlags(cmd, true)
	cmd.Flags().String(FlagAmountAMin, "0", "minimum amount of asset a to deposit")
	cmd.Flags().String(FlagAmountBMin, "0", "minimum amount of asset b to deposit")
	return cmd
}

// CmdRemoveLiquidity returns a CLI command building MsgRemoveLiquidity
func CmdRemoveLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-liquidity [asset-a] [asset-b] [liquidity]",
		Short: "Burn LP shares of a trading pair",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, recipient, deadline, err := senderFields(cmd)
			if err != nil {
				return err
			}
			liquidity, err := parseAmount("liquidity", args[2])
			if err != nil {
				return err
			}
			minA, err := minAmount(cmd, FlagAmountAMin)
			if err != nil {
				return err
			}
			minB, err := minAmount(cmd, FlagAmountBMin)
			if err != nil {
				return err
			}

			return printMsg(cmd, &types.MsgRemoveLiquidity{
				Sender:     from,
				AssetA:     args[0],
				AssetB:     args[1],
				Liquidity:  liquidity,
				AmountAMin: minA,
				AmountBMin: minB,
				Recipient:  recipient,
				Deadline:   deadline,
			})
		},
	}

	addSenderFlags(cmd, true)
	cmd.Flags().String(FlagRecipient, "", "account receiving the assets (default: sender)")
	cmd.Flags().String(FlagAmountAMin, "0", "minimum amount of asset a to receive")
	cmd.Flags().String(FlagAmountBMin, "0", "minimum amount of asset b to receive")
	return cmd
}

// CmdSwapExactIn returns a CLI command building MsgSwapExactAssetsForAssets
func CmdSwapExactIn() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-in [amount-in] [amount-out-min] [asset]...",
		Short: "Sell an exact amount along a path",
		Long: `Sell amount-in of the first path asset for at least amount-out-min of the last.

Example:
  $ pawswap tx dex swap-exact-in 100 85 uatom uusdt uosmo --from paw1... --deadline 120000`,
		Args: cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, recipient, deadline, err := senderFields(cmd)
			if err != nil {
				return err
			}
			amountIn, err := parseAmount("amount-in", args[0])
			if err != nil {
				return err
			}
			minOut, err := parseAmount("amount-out-min", args[1])
			if err != nil {
				return err
			}

			return printMsg(cmd, &types.MsgSwapExactAssetsForAssets{
				Sender:       from,
				AmountIn:     amountIn,
				AmountOutMin: minOut,
				Path:         args[2:],
				Recipient:    recipient,
				Deadline:     deadline,
			})
		},
	}

	addSenderFlags(cmd, true)
	cmd.Flags().String(FlagRecipient, "", "account receiving the output (default: sender)")
	return cmd
}

// CmdSwapExactOut returns a CLI command building MsgSwapAssetsForExactAssets
func CmdSwapExactOut() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-out [amount-out] [amount-in-max] [asset]...",
		Short: "Buy an exact amount at the end of a path",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, recipient, deadline, err := senderFields(cmd)
			if err != nil {
				return err
			}
			amountOut, err := parseAmount("amount-out", args[0])
			if err != nil {
				return err
			}
			maxIn, err := parseAmount("amount-in-max", args[1])
			if err != nil {
				return err
			}

			return printMsg(cmd, &types.MsgSwapAssetsForExactAssets{
				Sender:      from,
				AmountOut:   amountOut,
				AmountInMax: maxIn,
				Path:        args[2:],
				Recipient:   recipient,
				Deadline:    deadline,
			})
		},
	}

	addSenderFlags(cmd, true)
	cmd.Flags().String(FlagRecipient, "", "account receiving the output (default: sender)")
	return cmd
}

// CmdBootstrapContribute returns a CLI command building MsgBootstrapContribute
func CmdBootstrapContribute() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap-contribute [asset-a] [asset-b] [amount-a] [amount-b]",
		Short: "Pledge assets to a running bootstrap",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _, deadline, err := senderFields(cmd)
			if err != nil {
				return err
			}
			amountA, err := parseAmount("amount-a", args[2])
			if err != nil {
				return err
			}
			amountB, err := parseAmount("amount-b", args[3])
			if err != nil {
				return err
			}

			return printMsg(cmd, &types.MsgBootstrapContribute{
				Sender:   from,
				AssetA:   args[0],
				AssetB:   args[1],
				AmountA:  amountA,
				AmountB:  amountB,
				Deadline: deadline,
			})
		},
	}

	addSenderFlags(cmd, true)
	return cmd
}

// CmdBootstrapEnd returns a CLI command building MsgBootstrapEnd
func CmdBootstrapEnd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap-end [asset-a] [asset-b]",
		Short: "Convert a qualified bootstrap into a trading pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _, _, err := senderFields(cmd)
			if err != nil {
				return err
			}
			return printMsg(cmd, &types.MsgBootstrapEnd{Sender: from, AssetA: args[0], AssetB: args[1]})
		},
	}

	addSenderFlags(cmd, false)
	return cmd
}

// CmdBootstrapClaim returns a CLI command building MsgBootstrapClaim
func CmdBootstrapClaim() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap-claim [asset-a] [asset-b]",
		Short: "Claim LP shares and rewards of an ended bootstrap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, recipient, deadline, err := senderFields(cmd)
			if err != nil {
				return err
			}
			return printMsg(cmd, &types.MsgBootstrapClaim{
				Sender:    from,
				Recipient: recipient,
				AssetA:    args[0],
				AssetB:    args[1],
				Deadline:  deadline,
			})
		},
	}

	addSenderFlags(cmd, true)
	cmd.Flags().String(FlagRecipient, "", "account receiving the LP shares (default: sender)")
	return cmd
}

// CmdBootstrapRefund returns a CLI command building MsgBootstrapRefund
func CmdBootstrapRefund() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap-refund [asset-a] [asset-b]",
		Short: "Withdraw a contribution to a failed bootstrap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _, _, err := senderFields(cmd)
			if err != nil {
				return err
			}
			return printMsg(cmd, &types.MsgBootstrapRefund{Sender: from, AssetA: args[0], AssetB: args[1]})
		},
	}

	addSenderFlags(cmd, false)
	return cmd
}
