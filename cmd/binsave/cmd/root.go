/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/binsave/pkg/codec"
	"github.com/ssargent/binsave/pkg/config"
	"github.com/ssargent/binsave/pkg/di"
	"github.com/ssargent/binsave/pkg/store"
)

type contextKey string

const (
	sessionKey contextKey = "session"
	configKey  contextKey = "config"

	// commands annotated with skipSession run without a loaded record
	skipSession = "skip-session"
)

var container *di.Container

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "binsave",
	Short: "binsave - fixed-schema binary records",
	Long: `binsave stores a set of named, typed fields in one flat little-endian
byte buffer laid out by a schema, and persists it to a file or a pebble
database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := cmd.Annotations[skipSession]; ok {
			return nil
		}

		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("%w (run 'binsave init' first)", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}

		logger, err := newLogger(cfg.Logging.Level)
		if err != nil {
			return err
		}
		installLogger(logger)

		schema, err := cfg.CompileSchema()
		if err != nil {
			return err
		}

		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}
		session, err := container.GetSessionFactory().CreateSession(cfg.Target(), schema)
		if err != nil {
			return fmt.Errorf("failed to open record: %w", err)
		}

		// Store in command context
		ctx := context.WithValue(cmd.Context(), configKey, cfg)
		cmd.SetContext(context.WithValue(ctx, sessionKey, session))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		defer func() { _ = codec.Logger().Sync() }()

		session, ok := cmd.Context().Value(sessionKey).(*store.Session)
		if !ok {
			return nil
		}
		return session.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: OS-specific location)")
}

// sessionFrom returns the session opened by the root command
func sessionFrom(cmd *cobra.Command) (*store.Session, error) {
	session, ok := cmd.Context().Value(sessionKey).(*store.Session)
	if !ok {
		return nil, fmt.Errorf("record session not found in context")
	}
	return session, nil
}

// configFrom returns the configuration loaded by the root command
func configFrom(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configKey).(*config.Config)
	if !ok {
		return nil, fmt.Errorf("config not found in context")
	}
	return cfg, nil
}

// persist writes the session back and logs where it went
func persist(session *store.Session) error {
	if err := session.Persist(); err != nil {
		return fmt.Errorf("failed to persist record: %w", err)
	}
	codec.Logger().Debug("record saved", zap.Stringer("target", session.Target()))
	return nil
}
