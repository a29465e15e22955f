package services

import (
	"context"
	"fmt"
	"gemscout/internal/models"
)

var classifierNames = []string{ClassifierLowRated, ClassifierSoloDev, ClassifierNiche, ClassifierTrending, ClassifierGems}

func ClassifierNames() []string {
	return append([]string(nil), classifierNames...)
}

// RunClassifier dispatches by classifier name with default options for the
// given category. An empty category falls through to the service default.
func RunClassifier(ctx context.Context, svc OpportunityServiceInterface, name, category string) ([]*models.Opportunity, error) {
	switch name {
	case ClassifierLowRated:
		return svc.LowRated(ctx, LowRatedOptions{Category: category}), nil
	case ClassifierSoloDev:
		return svc.SoloDev(ctx, SoloDevOptions{Category: category}), nil
	case ClassifierNiche:
		return svc.NicheProfitable(ctx, NicheOptions{Category: category}), nil
	case ClassifierTrending:
		return svc.Trending(ctx, TrendingOptions{Category: category}), nil
	case ClassifierGems:
		return svc.Gems(ctx, GemOptions{Category: category}), nil
	default:
		return nil, fmt.Errorf("unknown classifier %q, want one of %v", name, classifierNames)
	}
}
