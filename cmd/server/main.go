package main

import (
	"log/slog"
	"os"

	"github.com/rahul4469/recipe-browser/internal/config"
	"github.com/rahul4469/recipe-browser/internal/logging"
)

const name = "recipe-browser"

// overridden during build with ldflags
var version = "dev"

func main() {
	cfg := config.MustLoad()
	logging.SetDefaultStructuredLogger(name, version, cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
