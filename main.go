package main

import (
	"github.com/imeelinew/paper-library/internal/config"
	"github.com/imeelinew/paper-library/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
