package main

import (
	"gemscout/internal/structures"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"os"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "gemscout",
	Short: "GemScout - find underserved app-store opportunities",
	Long: `GemScout aggregates app-store catalog data, scores listings with weighted
heuristics and classifies them into low-rated, solo-developer, niche,
trending and hidden-gem opportunities.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the yaml config")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "debug logging to console")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
