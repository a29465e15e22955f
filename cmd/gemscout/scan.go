package main

import (
	"context"
	"fmt"
	"gemscout/internal/di"
	"gemscout/internal/services"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

var scanCategory string

var scanCmd = &cobra.Command{
	Use:   "scan <classifier>",
	Short: "Run one classifier and print its opportunities as JSON",
	Long: fmt.Sprintf(`Run one classifier with default options and print the ranked
opportunities as JSON. Classifiers: %s.`, strings.Join(services.ClassifierNames(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := di.InitService(&flags)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		results, err := services.RunClassifier(ctx, svc, args[0], strings.ToUpper(scanCategory))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d opportunities\n", len(results))
		return printJSON(results)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List store categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := di.InitService(&flags)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		defer cleanup()
		return printJSON(svc.Categories())
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanCategory, "category", "", "store category id (default from config)")
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(categoriesCmd)
}
