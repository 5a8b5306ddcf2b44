package render

import (
	"fmt"
	"io"

	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if result.ProjectFile != "" {
		fmt.Fprintf(r.out, "📦 Project file: %s\n", getRelativePath(result.ProjectFile))
	} else {
		fmt.Fprintln(r.out, "📦 No domains.toml found, using built-in networks")
	}
	fmt.Fprintf(r.out, "🌐 Active network: %s\n", result.Network)
	fmt.Fprintln(r.out)

	if !result.Exists {
		fmt.Fprintln(r.out, "❌ No .domains/config.local.json file found")
		fmt.Fprintln(r.out, "⚠️  Set defaults with 'domains config set network <name>' or 'domains config set from <account>'")
		return nil
	}

	fmt.Fprintln(r.out, "📋 Current config:")
	for _, key := range config.ValidConfigKeys() {
		value := result.Config.Get(key)
		if value == "" {
			value = faintStyle.Sprint("(not set)")
		}
		fmt.Fprintf(r.out, "%-8s %s\n", Title(string(key))+":", value)
	}
	fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))

	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", result.Key, result.Value)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyNetwork:
		fmt.Fprintln(r.out, "✅ Removed network from config (falls back to default_network, then hardhat)")
	case config.ConfigKeyFrom:
		fmt.Fprintln(r.out, "✅ Removed default signer from config (signs with account 0)")
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
