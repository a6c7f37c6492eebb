// Package main is the entry point for the authverify CLI
package main

import (
	"github.com/bitnames/authverify/cmd"
	"github.com/bitnames/authverify/internal/config"
	"github.com/bitnames/authverify/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	cmd.Execute(cfg)
}
