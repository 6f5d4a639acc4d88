package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"flowstate/internal/config"
	"flowstate/internal/store"
	"flowstate/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogPath)
	if err != nil {
		fmt.Printf("failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	kv := store.Open(cfg.DBPath, logger.Sugar())
	defer kv.Close()

	if err := ui.Run(kv, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the configured file, or nowhere: stdout belongs to the
// terminal UI.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{path}
	zapConfig.ErrorOutputPaths = []string{path}
	return zapConfig.Build()
}
