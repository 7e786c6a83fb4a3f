// cmd/ebb/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/ebb/internal/config"
	"github.com/bethropolis/ebb/internal/editor"
	"github.com/bethropolis/ebb/internal/frontend"
	"github.com/bethropolis/ebb/internal/logger"
	"github.com/bethropolis/ebb/internal/theme"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(config.AppName, os.Stderr)
	files, err := flags.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 1 // the flag package already printed the problem
	}
	if flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return 0
	}

	cfg, err := config.Load("", flags)
	if err != nil {
		stlog.Printf("Error loading configuration: %v", err)
		return 1
	}

	// --- Logger Initialization ---
	logPath := cfg.LogFilePath()
	logFile, err := logger.Open(logPath)
	if err != nil {
		stlog.Printf("Failed to open log file: %v", err)
		return 1
	}
	defer logFile.Close()
	logger.Init(cfg.Logger, logFile)
	cfg.LogWarnings()

	logger.Infof("Starting %s %s...", config.AppName, config.Version)
	logger.Debugf("Log file: %s", logPath)
	if len(files) > 0 {
		logger.Debugf("File path(s) specified: %v", files)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	// --- Create and Run Editor ---
	th := theme.Build(cfg.Theme)
	term, err := frontend.NewTerminal(th.Style(theme.StyleDefault))
	if err != nil {
		logger.Errorf("Error initializing terminal: %v", err)
		stlog.Printf("Error initializing terminal: %v", err)
		return 1
	}
	defer term.Close()

	ed, err := editor.New(editor.Config{
		Frontend: term,
		Settings: cfg,
		Theme:    th,
		Files:    files,
	})
	if err != nil {
		term.Close()
		logger.Errorf("Error initializing editor: %v", err)
		stlog.Printf("Error initializing editor: %v", err)
		return 1
	}

	if err := ed.Run(); err != nil {
		logger.Errorf("Editor exited with error: %v", err)
		return 1
	}
	logger.Infof("%s finished.", config.AppName)
	return 0
}
