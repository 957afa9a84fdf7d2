package rubric

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed rubric.yaml
var rubricYAML []byte

// Rubric holds the grading weights and the fixed breakpoints that map scores
// to performance and proficiency tiers. Loaded once at startup and injected
// into the usecases, never read from package state.
type Rubric struct {
	Weights          Weights `yaml:"weights"`
	PerformanceTiers []Tier  `yaml:"performance_tiers"`
	ProficiencyTiers []Tier  `yaml:"proficiency_tiers"`
}

type Weights struct {
	Accuracy int `yaml:"accuracy"`
	Coverage int `yaml:"coverage"`
	Clarity  int `yaml:"clarity"`
	Depth    int `yaml:"depth"`
}

type Tier struct {
	Min     float64 `yaml:"min"`
	Level   string  `yaml:"level"`
	Label   string  `yaml:"label"`
	Message string  `yaml:"message"`
}

func Load() (Rubric, error) {
	var r Rubric
	if err := yaml.Unmarshal(rubricYAML, &r); err != nil {
		return Rubric{}, fmt.Errorf("parse rubric: %w", err)
	}
	if len(r.PerformanceTiers) == 0 || len(r.ProficiencyTiers) == 0 {
		return Rubric{}, fmt.Errorf("rubric missing tier tables")
	}
	if r.Weights.Accuracy+r.Weights.Coverage+r.Weights.Clarity+r.Weights.Depth != 100 {
		return Rubric{}, fmt.Errorf("rubric weights must sum to 100")
	}
	// Highest breakpoint first so lookup is a single scan.
	sort.Slice(r.PerformanceTiers, func(i, j int) bool {
		return r.PerformanceTiers[i].Min > r.PerformanceTiers[j].Min
	})
	sort.Slice(r.ProficiencyTiers, func(i, j int) bool {
		return r.ProficiencyTiers[i].Min > r.ProficiencyTiers[j].Min
	})
	return r, nil
}

// PerformanceTier maps an overall score to its tier. Lower bounds are
// inclusive: 85.0 is excellent, 84.9 is good.
func (r Rubric) PerformanceTier(score float64) Tier {
	return pick(r.PerformanceTiers, score)
}

// ProficiencyLevel maps a per-skill average to weak/moderate/strong.
func (r Rubric) ProficiencyLevel(score float64) string {
	return pick(r.ProficiencyTiers, score).Level
}

func pick(tiers []Tier, score float64) Tier {
	for _, t := range tiers {
		if score >= t.Min {
			return t
		}
	}
	return tiers[len(tiers)-1]
}
