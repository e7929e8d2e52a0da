package wizard

import "github.com/imamik/pvelamp/internal/config"

// BuildConfig creates a Config struct from the wizard result. Defaults are
// applied for everything the wizard does not ask about.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		Hostname:     result.Hostname,
		Architecture: result.Architecture,
		Storage:      result.Storage,
		DiskGB:       result.DiskGB,
		Cores:        result.Cores,
		MemoryMB:     result.MemoryMB,
		Network: config.NetworkConfig{
			Bridge: result.Bridge,
			Mode:   result.NetworkMode,
		},
		Database: config.DatabaseConfig{
			Name: result.DatabaseName,
			User: result.DatabaseUser,
		},
	}

	if result.NetworkMode == "static" {
		cfg.Network.Address = result.Address
		cfg.Network.Gateway = result.Gateway
	}

	cfg.ApplyDefaults()
	return cfg
}
