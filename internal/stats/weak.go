package stats

import "github.com/sin1227488801/rct/internal/model"

// SnippetWeights turns per-snippet aggregates into selection weights: the
// lower a snippet's historical accuracy, the more often it comes up. The
// factor scales how strong the bias is; factor 0 keeps selection uniform.
func SnippetWeights(aggs []model.SnippetAggregate, factor float64) map[string]float64 {
	if len(aggs) == 0 || factor <= 0 {
		return nil
	}
	weights := make(map[string]float64, len(aggs))
	for _, agg := range aggs {
		weights[agg.StudyItemID] = 1.0 + (1.0-snippetAccuracy(agg))*factor
	}
	return weights
}

func snippetAccuracy(agg model.SnippetAggregate) float64 {
	if agg.Total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(agg.Total)
}
