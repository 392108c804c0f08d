/*
thumb2sim - CLI launcher.

Copyright 2026
*/

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/thumb2sim/config"
	"github.com/rcornwell/thumb2sim/gdbstub"
	"github.com/rcornwell/thumb2sim/logger"
	"github.com/rcornwell/thumb2sim/monitor"
	"github.com/rcornwell/thumb2sim/sim"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optROM := getopt.StringLong("rom", 'r', "", "ROM image path (overrides config file)")
	optRAM := getopt.StringLong("ram", 'R', "", "RAM image path (overrides config file)")
	optGDB := getopt.StringLong("gdb", 'g', "", "GDB remote socket path (overrides config file)")
	optInteractive := getopt.BoolLong("interactive", 'i', "Drop into the interactive monitor instead of free-running")
	optDebug := getopt.BoolLong("debug", 'd', "Enable debug logging")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := &config.Config{}
	if *optConfig != "" {
		loaded, err := config.Load(*optConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, "thumb2sim: "+err.Error())
			os.Exit(1)
		}
		cfg = loaded
	}
	if *optROM != "" {
		cfg.Hardware.ROMImage = *optROM
	}
	if *optRAM != "" {
		cfg.Hardware.RAMImage = *optRAM
	}
	if *optGDB != "" {
		cfg.GDBSocket = *optGDB
	}
	if *optDebug {
		cfg.Debug = true
	}

	var logFile *os.File
	path := cfg.LogFile
	if *optLogFile != "" {
		path = *optLogFile
	}
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "thumb2sim: creating log file: "+err.Error())
			os.Exit(1)
		}
		logFile = f
	}
	var writer io.Writer
	if logFile != nil {
		writer = logFile
	}
	level := parseLevel(cfg.LogLevel)
	logger.Install(writer, level, cfg.Debug)

	slog.Info("thumb2sim started")

	s, err := sim.New(cfg.Hardware)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	var stub *gdbstub.Server
	if cfg.GDBSocket != "" {
		stub, err = gdbstub.New(cfg.GDBSocket, s)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		go func() {
			if err := stub.Serve(); err != nil {
				slog.Error("gdbstub: " + err.Error())
			}
		}()
		slog.Info("gdb stub listening", "socket", cfg.GDBSocket)
	}

	if *optInteractive {
		monitor.Run(s)
		if stub != nil {
			stub.Stop()
		}
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// With a GDB stub the debugger drives execution, so the simulator does
	// not free-run alongside it.
	done := make(chan struct{})
	if stub == nil {
		go func() {
			s.Run()
			close(done)
		}()
	}

	select {
	case <-sigChan:
		slog.Info("received interrupt, shutting down")
	case <-done:
		slog.Info("emulation ended")
	}

	if stub != nil {
		stub.Stop()
	}
}

func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
