// Package cli implements the sqlgate command-line client.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		host    string
		output  string
		profile string
	)

	rootCmd := &cobra.Command{
		Use:           "sqlgate",
		Short:         "SQL gateway CLI",
		Long:          "Command-line interface for the sqlgate query execution API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "API host URL")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Config profile to use")

	client := NewClient(host)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		// Precedence: flag > env > profile > default.
		cfg, err := LoadUserConfig()
		if err != nil {
			cfg = &UserConfig{CurrentProfile: "default", Profiles: map[string]Profile{}}
		}
		p := cfg.ActiveProfile(profile)

		if !cmd.Flags().Changed("host") {
			if v := os.Getenv("SQLGATE_HOST"); v != "" {
				host = v
			} else if p.Host != "" {
				host = p.Host
			}
		}
		if !cmd.Flags().Changed("output") {
			if v := os.Getenv("SQLGATE_OUTPUT"); v != "" {
				output = v
			} else if p.Output != "" {
				output = p.Output
			}
		}

		if output != "table" && output != "json" {
			return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
		}

		client.BaseURL = host
		return nil
	}

	rootCmd.AddCommand(newQueryCmd(client, &output))
	rootCmd.AddCommand(newDatabasesCmd(client, &output))
	rootCmd.AddCommand(newTablesCmd(client, &output))
	rootCmd.AddCommand(newRowsCmd(client, &output))
	rootCmd.AddCommand(newCredentialsCmd(client, &output))
	rootCmd.AddCommand(newSavedCmd(client, &output))
	rootCmd.AddCommand(newHistoryCmd(client, &output))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
