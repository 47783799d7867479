package cli

import (
	"fmt"
	"os"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/x/dex/amm"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// GetToolsCmd returns offline helpers that evaluate the dex formulas without
// a running chain.
func GetToolsCmd() *cobra.Command {
	toolsCmd := &cobra.Command{
		Use:                        "tools",
		Short:                      "Offline dex calculators",
		SuggestionsMinimumDistance: 2,
	}

	toolsCmd.AddCommand(
		CmdQuoteOut(),
		CmdQuoteIn(),
		CmdPairInfo(),
		CmdProtocolFee(),
		CmdValidateGenesis(),
	)

	return toolsCmd
}

func parseAmount(name, raw string) (math.Int, error) {
	amount, ok := math.NewIntFromString(raw)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid %s: %s (must be integer)", name, raw)
	}
	if amount.IsNegative() {
		return math.Int{}, fmt.Errorf("%s must not be negative", name)
	}
	return amount, nil
}

type hopReserves struct {
	in, out math.Int
}

// parseHops reads hops written as reserve-in:reserve-out.
func parseHops(args []string) ([]hopReserves, error) {
	hops := make([]hopReserves, len(args))
	for i, arg := range args {
		parts := strings.Split(arg, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("hop %d: expected reserve-in:reserve-out, got %q", i, arg)
		}
		in, err := parseAmount("reserve-in", parts[0])
		if err != nil {
			return nil, fmt.Errorf("hop %d: %w", i, err)
		}
		out, err := parseAmount("reserve-out", parts[1])
		if err != nil {
			return nil, fmt.Errorf("hop %d: %w", i, err)
		}
		hops[i] = hopReserves{in: in, out: out}
	}
	return hops, nil
}

func printAmounts(cmd *cobra.Command, amounts []math.Int) {
	out := make([]string, len(amounts))
	for i, a := range amounts {
		out[i] = a.String()
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
}

// CmdQuoteOut returns the command quoting an exact-input swap over given reserves
func CmdQuoteOut() *cobra.Command {
	return &cobra.Command{
		Use:   "quote-out [amount-in] [reserve-in:reserve-out]...",
		Short: "Quote the output of selling amount-in along a path of reserves",
		Long: `Quote an exact-input swap. Each hop is given by the reserves of its input
and output asset. The 0.3% pool fee is applied on every hop; the origin fee
is not.

Example:
  $ pawswap tools quote-out 100 1000:1000 1000:1000`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount-in", args[0])
			if err != nil {
				return err
			}
			hops, err := parseHops(args[1:])
			if err != nil {
				return err
			}

			amounts := []math.Int{amount}
			for i, hop := range hops {
				amount, err = amm.GetAmountOut(amount, hop.in, hop.out)
				if err != nil {
					return fmt.Errorf("hop %d: %w", i, err)
				}
				amounts = append(amounts, amount)
			}
			printAmounts(cmd, amounts)
			return nil
		},
	}
}

// CmdQuoteIn returns the command quoting an exact-output swap over given reserves
func CmdQuoteIn() *cobra.Command {
	return &cobra.Command{
		Use:   "quote-in [amount-out] [reserve-in:reserve-out]...",
		Short: "Quote the input needed to buy amount-out at the end of a path of reserves",
		Long: `Quote an exact-output swap. Hops are listed in path order.

Example:
  $ pawswap tools quote-in 90 1000:1000`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount-out", args[0])
			if err != nil {
				return err
			}
			hops, err := parseHops(args[1:])
			if err != nil {
				return err
			}

			amounts := make([]math.Int, len(hops)+1)
			amounts[len(hops)] = amount
			for i := len(hops) - 1; i >= 0; i-- {
				amount, err = amm.GetAmountIn(amount, hops[i].in, hops[i].out)
				if err != nil {
					return fmt.Errorf("hop %d: %w", i, err)
				}
				amounts[i] = amount
			}
			printAmounts(cmd, amounts)
			return nil
		},
	}
}

// CmdPairInfo returns the command describing the accounts of a pair
func CmdPairInfo() *cobra.Command {
	return &cobra.Command{
		Use:   "pair [asset-a] [asset-b]",
		Short: "Show the canonical order, LP denom and reserve account of a pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := types.NewPair(args[0], args[1])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "pair: %s\n", pair)
			fmt.Fprintf(w, "lp_denom: %s\n", pair.LPDenom())
			fmt.Fprintf(w, "reserve_account: %s\n", pair.ReserveAccount())
			return nil
		},
	}
}

// CmdProtocolFee returns the command computing the LP minted as protocol fee
func CmdProtocolFee() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "protocol-fee [reserve0] [reserve1] [total-supply] [k-last]",
		Short: "Compute the LP minted to the fee receiver on the next liquidity event",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := []string{"reserve0", "reserve1", "total-supply", "k-last"}
			values := make([]math.Int, len(args))
			for i, arg := range args {
				v, err := parseAmount(names[i], arg)
				if err != nil {
					return err
				}
				values[i] = v
			}

			feePoint, err := cmd.Flags().GetUint32(FlagFeePoint)
			if err != nil {
				return err
			}
			if feePoint > types.MaxFeePoint {
				return types.ErrInvalidParams.Wrapf("fee point %d above %d", feePoint, types.MaxFeePoint)
			}

			fee, err := amm.ProtocolFee(values[0], values[1], values[2], values[3], feePoint)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fee.String())
			return nil
		},
	}

	cmd.Flags().Uint32(FlagFeePoint, 5, "protocol share of the swap fee, in 30ths")
	return cmd
}

// CmdValidateGenesis returns the command checking a dex genesis file
func CmdValidateGenesis() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-genesis [file]",
		Short: "Validate a dex genesis state encoded as amino JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var genState types.GenesisState
			if err := types.ModuleCdc.UnmarshalJSON(bz, &genState); err != nil {
				return fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
			}
			if err := genState.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pairs, %d contributions\n",
				args[0], len(genState.PairStatuses), len(genState.Contributions))
			return nil
		},
	}
}
