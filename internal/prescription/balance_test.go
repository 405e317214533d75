package prescription

import (
	"strings"
	"testing"
)

func TestCheckBalance(t *testing.T) {
	t.Parallel()

	push := PrescribedExercise{ExerciseID: "push", Pattern: PatternPush}
	pull := PrescribedExercise{ExerciseID: "pull", Pattern: PatternPull}
	squat := PrescribedExercise{ExerciseID: "squat", Pattern: PatternSquat}
	core := PrescribedExercise{ExerciseID: "core", Pattern: PatternCore}

	tests := []struct {
		name       string
		selected   []PrescribedExercise
		wantIssues []string
	}{
		{
			name:       "too few exercises skips the diagnostic",
			selected:   []PrescribedExercise{push, push},
			wantIssues: nil,
		},
		{
			name:     "all pushing flags push and upper skew",
			selected: []PrescribedExercise{push, push, push},
			wantIssues: []string{
				"pushing volume far exceeds pulling volume",
				"upper-body volume far exceeds lower-body volume",
			},
		},
		{
			name:       "balanced session is clean",
			selected:   []PrescribedExercise{push, pull, squat},
			wantIssues: nil,
		},
		{
			name:       "neutral patterns count for neither ratio",
			selected:   []PrescribedExercise{core, core, core},
			wantIssues: nil,
		},
		{
			name:       "mild imbalance within the ratio limit",
			selected:   []PrescribedExercise{push, push, pull, squat},
			wantIssues: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := checkBalance(tt.selected)
			if len(got) != len(tt.wantIssues) {
				t.Fatalf("checkBalance() = %v, want %v", got, tt.wantIssues)
			}
			for i, want := range tt.wantIssues {
				if !strings.Contains(got[i], want) {
					t.Errorf("issue[%d] = %q, want %q", i, got[i], want)
				}
			}
		})
	}
}
