package prescription

import "testing"

func TestUpdateCoverage(t *testing.T) {
	t.Parallel()

	rowing := Exercise{
		ID:             "row",
		Activations:    map[string]float64{"lats": 80, "biceps": 45},
		PrimaryMuscles: []string{"lats"},
	}
	curl := Exercise{
		ID:             "curl",
		Activations:    map[string]float64{"biceps": 90},
		PrimaryMuscles: []string{"biceps"},
	}

	coverage := map[string]MuscleCoverage{}
	updateCoverage(coverage, rowing, 3)

	if got := coverage["lats"]; got.Level != ActivationPrimary || got.TotalSets != 3 {
		t.Errorf("lats coverage = %+v, want primary with 3 sets", got)
	}
	if got := coverage["biceps"]; got.Level != ActivationSecondary || got.TotalSets != 3 {
		t.Errorf("biceps coverage = %+v, want secondary with 3 sets", got)
	}

	// A later exercise upgrades biceps and accumulates sets.
	updateCoverage(coverage, curl, 4)
	if got := coverage["biceps"]; got.Level != ActivationPrimary || got.TotalSets != 7 {
		t.Errorf("biceps coverage after curl = %+v, want primary with 7 sets", got)
	}

	// Another secondary hit never downgrades.
	updateCoverage(coverage, rowing, 2)
	if got := coverage["biceps"]; got.Level != ActivationPrimary || got.TotalSets != 9 {
		t.Errorf("biceps coverage after second row = %+v, want primary with 9 sets", got)
	}
	if len(coverage) != 2 {
		t.Errorf("coverage has %d entries, want 2", len(coverage))
	}
}

func TestUpdateCoverageThresholdPromotes(t *testing.T) {
	t.Parallel()

	// Activation at the primary threshold promotes even without the flag.
	press := Exercise{
		ID:          "press",
		Activations: map[string]float64{"front_delts": 60},
	}
	coverage := map[string]MuscleCoverage{}
	updateCoverage(coverage, press, 3)
	if got := coverage["front_delts"]; got.Level != ActivationPrimary {
		t.Errorf("front_delts level = %q, want primary", got.Level)
	}
}
