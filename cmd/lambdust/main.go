package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:          "lambdust",
	Short:        "Assemble, optimize, and execute Lambdust bytecode",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("no-color") || os.Getenv("NO_COLOR") != "" || !isTerminalIO() {
			color.NoColor = true
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.ToLower(viper.GetString("output")) == "json" {
			info, err := json.MarshalIndent(map[string]any{
				"version": version,
				"commit":  commit,
				"date":    date,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(info))
			return nil
		}
		fmt.Println(version)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info)")
	rootCmd.PersistentFlags().StringP("code", "c", "", "Assembly code to process")
	rootCmd.PersistentFlags().Bool("stdin", false, "Read assembly code from stdin")
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	versionCmd.Flags().StringP("output", "o", "", "Output format (json, text)")
	viper.BindPFlag("output", versionCmd.Flags().Lookup("output"))

	viper.SetEnvPrefix("LAMBDUST")
	viper.AutomaticEnv()

	rootCmd.AddCommand(runCmd, disCmd, checkCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
