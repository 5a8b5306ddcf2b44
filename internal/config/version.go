package config

// Build information, set with -ldflags "-X github.com/musdomains/domains/internal/config.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
