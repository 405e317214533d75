package prescription

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var profilesYAML []byte

// Weights are the scoring term weights. Penalties are negative.
type Weights struct {
	GoalAlignment      float64 `yaml:"goalAlignment"`
	CompoundPreference float64 `yaml:"compoundPreference"`
	RecoveryPenalty24h float64 `yaml:"recoveryPenalty24h"`
	RecoveryPenalty48h float64 `yaml:"recoveryPenalty48h"`
	FitnessLevelMatch  float64 `yaml:"fitnessLevelMatch"`
	MuscleCoverageGap  float64 `yaml:"muscleCoverageGap"`
}

// GoalProfile describes how one training goal shapes selection and volume.
type GoalProfile struct {
	PreferredPatterns []MovementPattern `yaml:"preferredPatterns"`
	PrefersCompound   bool              `yaml:"prefersCompound"`
	RestMultiplier    float64           `yaml:"restMultiplier"`
	Sets              int               `yaml:"sets"`
	Reps              int               `yaml:"reps"`
}

func (p GoalProfile) prefersPattern(pattern MovementPattern) bool {
	for _, preferred := range p.PreferredPatterns {
		if preferred == pattern {
			return true
		}
	}
	return false
}

// FitnessBand is the inclusive difficulty range matching a fitness level.
type FitnessBand struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// VolumeDefaults apply when no requested goal has a profile.
type VolumeDefaults struct {
	Sets           int     `yaml:"sets"`
	Reps           int     `yaml:"reps"`
	RestMultiplier float64 `yaml:"restMultiplier"`
}

// Profiles is the full solver tuning configuration.
type Profiles struct {
	Weights      Weights                      `yaml:"weights"`
	RestPriority []Goal                       `yaml:"restPriority"`
	Goals        map[Goal]GoalProfile         `yaml:"goals"`
	FitnessBands map[FitnessLevel]FitnessBand `yaml:"fitnessBands"`
	Defaults     VolumeDefaults               `yaml:"defaults"`
}

// LoadProfiles parses the embedded profiles.yaml.
func LoadProfiles() (*Profiles, error) {
	var profiles Profiles
	if err := yaml.Unmarshal(profilesYAML, &profiles); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if len(profiles.Goals) == 0 {
		return nil, fmt.Errorf("parse profiles: no goal profiles defined")
	}
	return &profiles, nil
}

// restMultiplier resolves the rest multiplier for a goal set. The first goal
// in the priority list that appears in goals wins; without a match the
// default multiplier applies.
func (p *Profiles) restMultiplier(goals []Goal) float64 {
	for _, priority := range p.RestPriority {
		for _, goal := range goals {
			if goal == priority {
				if profile, ok := p.Goals[goal]; ok {
					return profile.RestMultiplier
				}
			}
		}
	}
	return p.Defaults.RestMultiplier
}

// volumeFor resolves the set and rep scheme for a goal set. The first
// requested goal with a profile wins.
func (p *Profiles) volumeFor(goals []Goal) (sets, reps int) {
	for _, goal := range goals {
		if profile, ok := p.Goals[goal]; ok {
			return profile.Sets, profile.Reps
		}
	}
	return p.Defaults.Sets, p.Defaults.Reps
}

// band returns the difficulty band for a level, or ok=false when the level is
// unknown or empty, in which case no fitness term applies.
func (p *Profiles) band(level FitnessLevel) (FitnessBand, bool) {
	band, ok := p.FitnessBands[level]
	return band, ok
}
