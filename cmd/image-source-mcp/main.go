package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-source-mcp/internal/config"
	"github.com/ironsheep/image-source-mcp/internal/logging"
	"github.com/ironsheep/image-source-mcp/internal/server"
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
			fmt.Printf("image-source-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-source-mcp - MCP server that decodes images from files or base64 buffers")
			fmt.Println()
			fmt.Println("Usage: image-source-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from .env):")
			fmt.Println("  IMAGE_MCP_LOG_LEVEL=info           trace, debug, info, warn, error")
			fmt.Println("  IMAGE_MCP_LOG_FORMAT=console       console or json")
			fmt.Println("  IMAGE_MCP_DEFAULT_MODE=color       Decode mode when a call omits \"mode\"")
			fmt.Println("  IMAGE_MCP_MAX_REQUEST_BYTES=33554432  Largest accepted request line")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout is for MCP protocol
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}

	// Validate in config.Load has already rejected an unparsable mode
	mode, _ := cfg.Mode()

	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Stringer("default_mode", mode).
		Msg("image source MCP server starting")

	srv := server.New(
		server.WithLogger(log.Logger),
		server.WithDefaultMode(mode),
		server.WithMaxRequestBytes(cfg.MaxRequestBytes),
	)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
