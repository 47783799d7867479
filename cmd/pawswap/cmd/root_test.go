package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/dex/types"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func decodeSwap(t *testing.T, out string) types.MsgSwapExactAssetsForAssets {
	t.Helper()
	var msg types.MsgSwapExactAssetsForAssets
	require.NoError(t, types.ModuleCdc.UnmarshalJSON([]byte(out), &msg))
	return msg
}

func TestRootCmdUsesPawPrefix(t *testing.T) {
	NewRootCmd()
	require.Equal(t, AccountAddressPrefix, sdk.GetConfig().GetBech32AccountAddrPrefix())

	addr := sdk.AccAddress([]byte("root_prefix_________")).String()
	require.True(t, strings.HasPrefix(addr, "paw1"))
}

func TestRootCmdTree(t *testing.T) {
	root := NewRootCmd()

	txCmd, _, err := root.Find([]string{"tx", "dex", "swap-exact-in"})
	require.NoError(t, err)
	require.Equal(t, "swap-exact-in", txCmd.Name())

	toolsCmd, _, err := root.Find([]string{"tools", "quote-out"})
	require.NoError(t, err)
	require.Equal(t, "quote-out", toolsCmd.Name())
}

func TestFlagsFromEnvironment(t *testing.T) {
	root := NewRootCmd()
	sender := sdk.AccAddress([]byte("root_env_sender_____")).String()
	t.Setenv("PAWSWAP_FROM", sender)
	t.Setenv("PAWSWAP_DEADLINE", "700")

	out, err := execute(t, root, "tx", "dex", "swap-exact-in", "100", "85", "uatom", "uusdt")
	require.NoError(t, err)

	msg := decodeSwap(t, out)
	require.Equal(t, sender, msg.Sender)
	require.Equal(t, sender, msg.Recipient)
	require.Equal(t, int64(700), msg.Deadline)
}

func TestCommandLineBeatsEnvironment(t *testing.T) {
	root := NewRootCmd()
	envSender := sdk.AccAddress([]byte("root_env_sender_____")).String()
	flagSender := sdk.AccAddress([]byte("root_flag_sender____")).String()
	t.Setenv("PAWSWAP_FROM", envSender)

	out, err := execute(t, root, "tx", "dex", "swap-exact-in", "100", "85", "uatom", "uusdt",
		"--from", flagSender, "--deadline", "5")
	require.NoError(t, err)
	require.Equal(t, flagSender, decodeSwap(t, out).Sender)
}

func TestFlagsFromConfigFile(t *testing.T) {
	root := NewRootCmd()
	sender := sdk.AccAddress([]byte("root_file_sender____")).String()

	path := filepath.Join(t.TempDir(), "pawswap.toml")
	config := "from = \"" + sender + "\"\ndeadline = 42\nfee-point = 0\n"
	require.NoError(t, os.WriteFile(path, []byte(config), 0o600))

	out, err := execute(t, root, "tx", "dex", "swap-exact-in", "100", "85", "uatom", "uusdt", "--config", path)
	require.NoError(t, err)
	msg := decodeSwap(t, out)
	require.Equal(t, sender, msg.Sender)
	require.Equal(t, int64(42), msg.Deadline)

	out, err = execute(t, NewRootCmd(), "tools", "protocol-fee", "1100000", "909339", "1000000", "1000000000000", "--config", path)
	require.NoError(t, err)
	require.Equal(t, "0", out)
}

func TestMissingConfigFile(t *testing.T) {
	root := NewRootCmd()
	_, err := execute(t, root, "tools", "pair", "uatom", "uusdt", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorContains(t, err, "failed to read")
}

func TestMissingRequiredFlag(t *testing.T) {
	root := NewRootCmd()
	_, err := execute(t, root, "tx", "dex", "bootstrap-refund", "uatom", "uusdt")
	require.ErrorContains(t, err, "from")
}
