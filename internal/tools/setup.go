package tools

import "github.com/restitch/restitch/internal/config"

// SetupRegistry enables the tool handlers selected by config.
func SetupRegistry(cfg *config.Config) *Registry {
	reg := NewRegistry()
	if cfg.Tools.Read.Enabled {
		reg.Enable(NewReadFileTool(cfg))
	}
	if cfg.Tools.Write.Enabled {
		reg.Enable(NewWriteToFileTool(cfg))
	}
	if cfg.Tools.Replace.Enabled {
		reg.Enable(NewReplaceInFileTool(cfg))
	}
	return reg
}
