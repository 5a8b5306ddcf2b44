package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

const devnetProject = `
default_network = "devnet"

[networks.devnet]
type = "local"
persist = true
account_count = 3
`

// execute runs domains with args in dir and returns stdout
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)

	rootCmd, closeApp := NewRootCmd()
	defer closeApp()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--non-interactive"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	rootCmd, closeApp := NewRootCmd()
	defer closeApp()

	names := lo.Map(rootCmd.Commands(), func(c *cobra.Command, _ int) string { return c.Name() })
	for _, name := range []string{"deploy", "register", "set-record", "lookup", "list", "price", "withdraw", "balance", "run", "networks", "deployments", "config", "version"} {
		assert.Contains(t, names, name)
	}

	lookup, _, err := rootCmd.Find([]string{"get-address"})
	require.NoError(t, err)
	assert.Equal(t, "lookup", lookup.Name())
}

func TestVersionSkipsInit(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "domains version dev")
}

func TestRunCommand(t *testing.T) {
	t.Run("default scenario", func(t *testing.T) {
		out, err := execute(t, t.TempDir(), "run")
		require.NoError(t, err)
		assert.Contains(t, out, "Contract deployed to: 0x")
		assert.Contains(t, out, "Minted domain twice.mus")
		assert.Contains(t, out, "Owner of domain twice: 0x")
		assert.Contains(t, out, "Contract balance: 0.1")
	})

	t.Run("list", func(t *testing.T) {
		out, err := execute(t, t.TempDir(), "run", "--list")
		require.NoError(t, err)
		assert.Equal(t, "deploy\nnegative\nrun\n", out)
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, err := execute(t, t.TempDir(), "run", "nope")
		assert.ErrorContains(t, err, "neither built in")
	})

	t.Run("failing step keeps earlier output", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(file, []byte(`steps:
  - action: deploy
  - action: register
    name: twice
    value: "0.01"
`), 0644))

		out, err := execute(t, dir, "run", file)
		assert.Error(t, err)
		assert.Contains(t, out, "Contract deployed to: 0x")
	})
}

func TestPersistentNetwork(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "domains.toml"), []byte(devnetProject), 0644))

	_, err := execute(t, dir, "deploy")
	require.NoError(t, err)

	_, err = execute(t, dir, "register", "twice", "--from", "1")
	require.NoError(t, err)

	out, err := execute(t, dir, "lookup", "twice")
	require.NoError(t, err)
	assert.Contains(t, out, "Owner of domain twice: 0x")

	out, err = execute(t, dir, "lookup", "twic")
	require.NoError(t, err)
	assert.Contains(t, out, "twice.mus")

	_, err = execute(t, dir, "withdraw")
	assert.Error(t, err, "non-interactive withdraw needs --yes")

	_, err = execute(t, dir, "withdraw", "--yes")
	require.NoError(t, err)

	out, err = execute(t, dir, "balance", "registry", "--json")
	require.NoError(t, err)
	var balances struct {
		Balances []struct {
			Label string
			Wei   json.Number
		}
	}
	require.NoError(t, json.Unmarshal([]byte(out), &balances))
	require.Len(t, balances.Balances, 1)
	assert.Equal(t, "registry", balances.Balances[0].Label)
	assert.Equal(t, json.Number("0"), balances.Balances[0].Wei)

	out, err = execute(t, dir, "deployments")
	require.NoError(t, err)
	assert.Contains(t, out, "devnet")
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "domains.toml"), []byte(devnetProject), 0644))

	_, err := execute(t, dir, "config", "set", "from", "2")
	require.NoError(t, err)

	out, err := execute(t, dir, "config", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"from": "2"`)

	_, err = execute(t, dir, "config", "set", "network", "nowhere")
	assert.Error(t, err)

	_, err = execute(t, dir, "config", "remove", "from")
	require.NoError(t, err)
}
