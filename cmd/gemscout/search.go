package main

import (
	"context"
	"fmt"
	"gemscout/internal/di"
	"gemscout/internal/models"
	"github.com/spf13/cobra"
	"strings"
)

var (
	searchCount int
	searchPrice string
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch searchPrice {
		case models.PriceAll, models.PriceFree, models.PricePaid:
		default:
			return fmt.Errorf("invalid --price %q, want all, free or paid", searchPrice)
		}

		svc, cleanup, err := di.InitService(&flags)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		defer cleanup()

		results, err := svc.Search(context.Background(), models.SearchQuery{
			Term:  strings.Join(args, " "),
			Count: searchCount,
			Price: searchPrice,
		})
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return printJSON(results)
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchCount, "count", "n", 30, "number of results")
	searchCmd.Flags().StringVar(&searchPrice, "price", models.PriceAll, "all, free or paid")
	rootCmd.AddCommand(searchCmd)
}
