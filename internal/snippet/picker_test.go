package snippet

import (
	"math/rand"
	"testing"

	"github.com/sin1227488801/rct/internal/model"
)

func testItems() []model.StudyItem {
	return []model.StudyItem{
		{ID: "a", Lang: "go", Text: "a"},
		{ID: "b", Lang: "go", Text: "b"},
		{ID: "c", Lang: "go", Text: "c"},
	}
}

func TestPickEmpty(t *testing.T) {
	p := newPickerWithSource(rand.NewSource(1))
	if got := p.Pick(nil); got.ID != "" {
		t.Fatalf("expected zero item for empty input, got %+v", got)
	}
}

func TestPickWeightedBias(t *testing.T) {
	p := newPickerWithSource(rand.NewSource(42))
	items := testItems()
	weights := map[string]float64{"b": 100}
	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		counts[p.PickWeighted(items, weights).ID]++
	}
	if counts["b"] <= counts["a"] || counts["b"] <= counts["c"] {
		t.Fatalf("expected heavy bias toward b, got %v", counts)
	}
}

func TestPickWeightedNoWeightsFallsBackToUniform(t *testing.T) {
	p := newPickerWithSource(rand.NewSource(7))
	items := testItems()
	counts := map[string]int{}
	for i := 0; i < 3000; i++ {
		counts[p.PickWeighted(items, nil).ID]++
	}
	for _, item := range items {
		if counts[item.ID] == 0 {
			t.Fatalf("expected every item to be picked, got %v", counts)
		}
	}
}
