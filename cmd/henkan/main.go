// Package main is the Henkan CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hyperjump/henkan/internal/automation"
	"github.com/hyperjump/henkan/internal/capability"
	"github.com/hyperjump/henkan/internal/config"
	"github.com/hyperjump/henkan/internal/convert"
	"github.com/hyperjump/henkan/internal/extract"
	"github.com/hyperjump/henkan/internal/server"
	"github.com/hyperjump/henkan/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/henkan/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. A missing default config is not an error; built-in defaults
// apply. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "convert":
		runConvert()
	case "formats":
		runFormats()
	case "version", "--version", "-v":
		fmt.Printf("henkan version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// buildExtractor probes the capabilities once and wires the extractor.
func buildExtractor(logger *zap.Logger) *extract.Extractor {
	bridge := automation.NewBridge()
	caps := capability.Detect(bridge)
	for _, c := range capability.All {
		if !caps.Has(c) {
			logger.Info("capability absent", zap.String("capability", string(c)))
		}
	}
	return extract.NewExtractor(caps, bridge)
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	extractor := buildExtractor(logger)
	converter := convert.NewConverter(extractor, cfg.Convert.ScratchDir, cfg.Convert.CleanupOnFailure, logger)
	srv := server.NewServer(converter, extractor, cfg, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runConvert() {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	output := fs.String("output", "", "output filename (defaults to output.txt)")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: henkan convert [flags] <file>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	path := fs.Arg(0)

	logger, err := utils.NewLogger(*debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	extractor := buildExtractor(logger)
	converter := convert.NewConverter(extractor, "", false, logger)
	result, err := converter.Convert(&convert.Upload{Name: filepath.Base(path), Content: content}, *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conversion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(result.Text)
	fmt.Fprintf(os.Stderr, "Saved to %s\n", result.ArtifactPath)
}

func runFormats() {
	logger := zap.NewNop()
	extractor := buildExtractor(logger)
	fmt.Println("Supported formats:")
	for _, f := range extractor.Formats() {
		status := "available"
		if !f.Available {
			status = "unavailable on this platform"
		}
		fmt.Printf("  %-6s %-18s %s\n", f.Extension, f.Capability, status)
	}
}

func printUsage() {
	fmt.Println(`Henkan - extract text from Microsoft Office documents

Usage:
  henkan server [-config path] [-debug]    start the upload/download web UI
  henkan convert [-output name] <file>     convert one file and print its text
  henkan formats                           list supported formats
  henkan version                           print version
  henkan help                              show this help

Supported formats: .docx, .xlsx, .pptx and, where host application
automation is available, .doc, .xls, .ppt.`)
}
