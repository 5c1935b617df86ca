package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagServerConfig string
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tetris SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a game picker menu.
History is stored per-server (all users share the same play log);
pass a redis:// URL to --db to share it between servers.

Settings come from --server-config (YAML) or the environment:
  TETRIS_SSH_ADDR, TETRIS_HOST_KEY, TETRIS_HISTORY,
  TETRIS_IDLE_TIMEOUT, TETRIS_LOG_LEVEL
Flags given on the command line take precedence.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tetris/host_key

Examples:
  tetris serve                           # Listen on :23234 with auto-generated key
  tetris serve --ssh :2222               # Listen on port 2222
  tetris serve --host-key ./my_host_key  # Use specific host key
  tetris serve --db redis://cache:6379/0 # Share history through Redis

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServerConfig, "server-config", "", "Path to server config YAML")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := serverConfig(cmd)
	if err != nil {
		fatal("%v", err)
	}

	if !cmd.Flags().Changed("log-level") {
		flagLogLevel = cfg.LogLevel
	}
	logger, err := newLogger("serve", os.Stderr)
	if err != nil {
		fatal("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := tui.NewSSHServer(ctx, cfg, gameConfig.Keys, logger)
	if err != nil {
		fatal("creating server: %v", err)
	}

	logger.Info("starting tetris SSH server", "address", cfg.Address, "history", cfg.HistoryDSN)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fatal("server: %v", err)
	}
	logger.Info("server stopped")
}

// serverConfig loads the server settings and applies explicit flags on top.
func serverConfig(cmd *cobra.Command) (config.ServerConfig, error) {
	cfg, err := config.LoadServer(flagServerConfig)
	if err != nil {
		return config.ServerConfig{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if flags.Changed("db") {
		cfg.HistoryDSN = flagDBPath
	}
	return cfg, nil
}
