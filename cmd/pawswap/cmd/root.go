package cmd

import (
	"fmt"
	"strings"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/x/dex/client/cli"
)

const (
	// EnvPrefix prefixes environment variables that stand in for flags,
	// e.g. PAWSWAP_FROM for --from.
	EnvPrefix = "PAWSWAP"

	// AccountAddressPrefix is the bech32 prefix of account addresses.
	AccountAddressPrefix = "paw"

	flagConfig = "config"
)

var sdkConfigOnce sync.Once

// NewRootCmd creates the pawswap command tree.
func NewRootCmd() *cobra.Command {
	initSDKConfig()

	v := viper.New()
	rootCmd := &cobra.Command{
		Use:           "pawswap",
		Short:         "PAW dex message builder and calculators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd, v)
		},
	}
	rootCmd.PersistentFlags().String(flagConfig, "", "toml file holding flag defaults")

	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Build transactions",
	}
	txCmd.AddCommand(cli.GetTxCmd())

	rootCmd.AddCommand(txCmd, cli.GetToolsCmd())
	return rootCmd
}

func initSDKConfig() {
	sdkConfigOnce.Do(func() {
		config := sdk.GetConfig()
		config.SetBech32PrefixForAccount(AccountAddressPrefix, AccountAddressPrefix+sdk.PrefixPublic)
	})
}

// bindFlags fills every flag the user did not set from the config file or
// the environment. Flags given on the command line always win.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString(flagConfig); path != "" {
		v.SetConfigType("toml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Changed || f.Name == flagConfig || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprint(v.Get(f.Name))); err != nil {
			bindErr = fmt.Errorf("invalid value for --%s: %w", f.Name, err)
		}
	})
	return bindErr
}
