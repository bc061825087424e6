package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/edgetone-mcp/internal/config"
	"github.com/ironsheep/edgetone-mcp/internal/logger"
	"github.com/ironsheep/edgetone-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("edgetone-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("edgetone-mcp - MCP server for multi-scale edge and contrast analysis")
			fmt.Println()
			fmt.Println("Usage: edgetone-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=<file>      TOML file with server defaults\n", config.EnvConfigFile)
			fmt.Printf("  %s=debug    Log level (debug, info, warn, error)\n", config.EnvLogLevel)
			fmt.Printf("  %s=13      Default largest edge kernel size\n", config.EnvMaxKernel)
			fmt.Printf("  %s=0.1      Default edge magnitude threshold\n", config.EnvThreshold)
			fmt.Printf("  %s=0          Concurrent edge scales (0 = all CPUs)\n", config.EnvWorkers)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "edgetone-mcp: %v\n", err)
		os.Exit(2)
	}

	// Log to stderr (stdout is for MCP protocol)
	log := logger.New(os.Stderr, cfg.LogLevel)
	log.Debug("main", "starting", map[string]interface{}{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
		"max_kernel": cfg.Edges.MaxKernelSize,
		"threshold":  cfg.Edges.Threshold,
		"workers":    cfg.Edges.Workers,
	})

	srv := server.New(cfg, log, Version)
	if err := srv.Run(); err != nil {
		log.Error("main", fmt.Errorf("server error: %w", err), nil)
		os.Exit(1)
	}
}
