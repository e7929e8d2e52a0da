package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/pvelamp/internal/config"
)

// WriteConfig writes the config to a YAML file with a descriptive header.
func WriteConfig(cfg *config.Config, outputPath string) error {
	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// generateHeader renders the comment block at the top of the written file.
func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# pvelamp provisioning configuration
# Generated by the interactive wizard on %s
#
# Provision the container with:
#   pvelamp provision -c %s
#
# The database password is generated fresh at provisioning time and
# printed in the final summary; it is never stored in this file.
`, time.Now().Format("2006-01-02"), outputPath)
}
