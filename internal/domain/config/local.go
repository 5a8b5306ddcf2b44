package config

import "strings"

// LocalConfig holds per-checkout defaults stored in .domains/config.local.json
type LocalConfig struct {
	// Network is used when --network is not given
	Network string `json:"network,omitempty"`
	// From is the default signer: an account index or address
	From string `json:"from,omitempty"`
}

// ConfigKey names a LocalConfig field
type ConfigKey string

const (
	ConfigKeyNetwork ConfigKey = "network"
	ConfigKeyFrom    ConfigKey = "from"
)

// ValidConfigKeys returns all settable keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{ConfigKeyNetwork, ConfigKeyFrom}
}

// ParseConfigKey accepts a key in any case; "signer" is an alias of from
func ParseConfigKey(s string) (ConfigKey, bool) {
	switch strings.ToLower(s) {
	case "network", "net":
		return ConfigKeyNetwork, true
	case "from", "signer":
		return ConfigKeyFrom, true
	}
	return "", false
}

// Get returns the value stored under key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNetwork:
		return c.Network
	case ConfigKeyFrom:
		return c.From
	}
	return ""
}

// Set stores value under key
func (c *LocalConfig) Set(key ConfigKey, value string) {
	switch key {
	case ConfigKeyNetwork:
		c.Network = value
	case ConfigKeyFrom:
		c.From = value
	}
}
