package snippet

import (
	"math/rand"
	"time"

	"github.com/sin1227488801/rct/internal/model"
)

// Picker selects the next study item to practice.
type Picker struct {
	rnd *rand.Rand
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker() *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// newPickerWithSource is used by tests for deterministic selection.
func newPickerWithSource(src rand.Source) *Picker {
	return &Picker{rnd: rand.New(src)}
}

// Pick selects a study item uniformly at random.
func (p *Picker) Pick(items []model.StudyItem) model.StudyItem {
	if len(items) == 0 {
		return model.StudyItem{}
	}
	return items[p.rnd.Intn(len(items))]
}

// PickWeighted selects a study item with a bias toward the given weights,
// keyed by item id. Items without a weight keep the base weight 1.
func (p *Picker) PickWeighted(items []model.StudyItem, weights map[string]float64) model.StudyItem {
	if len(items) == 0 {
		return model.StudyItem{}
	}
	if len(weights) == 0 {
		return p.Pick(items)
	}
	total := 0.0
	for _, item := range items {
		total += weightFor(weights, item.ID)
	}
	r := p.rnd.Float64() * total
	acc := 0.0
	for _, item := range items {
		acc += weightFor(weights, item.ID)
		if r <= acc {
			return item
		}
	}
	return items[len(items)-1]
}

func weightFor(weights map[string]float64, id string) float64 {
	if w, ok := weights[id]; ok && w > 0 {
		return w
	}
	return 1.0
}
