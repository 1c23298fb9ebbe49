package commands

import (
	"strings"

	"github.com/bjornarhem/bips/internal/logging"
	"github.com/bjornarhem/bips/pkg/interfaces"
)

const commandModuleRoot = "bips.commands"

// CommandLogger returns a module-scoped logger for command handlers, enriching it with
// consistent structured fields so command executions stay attributable to the handler
// that produced them.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
