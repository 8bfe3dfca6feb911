/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/binsave/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration with a sample schema",
	Long: `Create a binsave configuration file with a sample schema and a generated
API key for the REST server. Edit the schema section to describe your record.

Examples:
  binsave init
  binsave init --config ./binsave.yaml --record ./data/settings.bin`,
	Annotations: map[string]string{skipSession: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		recordPath, _ := cmd.Flags().GetString("record")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to overwrite.\n", configPath)
			return nil
		}

		cfg, err := config.BootstrapConfig(configPath, recordPath)
		if err != nil {
			return fmt.Errorf("failed to bootstrap config: %w", err)
		}

		cmd.Printf("✅ Configuration created at %s\n", configPath)
		cmd.Printf("Record: %s (%s)\n", cfg.Storage.Path, cfg.Storage.Backend)
		cmd.Printf("API key: %s\n", cfg.Server.APIKey)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("record", "", "Path of the record file (default: ./data/record.bin)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}
