// Motovision is a fleet management console for motorcycle rental yards.
//
// It talks to the MotoVision REST API and provides both an interactive
// terminal UI and direct subcommands for scripting. Credentials are stored
// locally; vehicle and yard data always comes from the server.
//
// Usage:
//
//	motovision [command] [flags]
//
// Running without arguments launches the interactive console.
// See 'motovision --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/motovision/motovision/internal/logging"
	"github.com/motovision/motovision/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "motovision",
	Short: "MotoVision Fleet Console",
	Long: `A terminal client for the MotoVision motorcycle fleet API.

Manages vehicles and yards: listing grouped by yard, status filtering,
registration, editing and removal. Credentials are kept in a local
configuration file.

If no command is specified, the interactive console will launch.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsole(cmd, args)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("motovision %s\n", version.Full())
	},
}
