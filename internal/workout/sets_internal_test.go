package workout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToggleSet(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		log      ExerciseLog
		setIndex int
		want     SetLog
	}{
		{
			name: "pending completes at target reps",
			log: ExerciseLog{
				TargetReps: 12,
				Sets:       []SetLog{{RepsCompleted: 0, Weight: 40, Completed: false}},
			},
			setIndex: 0,
			want:     SetLog{RepsCompleted: 12, Weight: 40, Completed: true},
		},
		{
			name: "full credit drops one rep",
			log: ExerciseLog{
				TargetReps: 12,
				Sets:       []SetLog{{RepsCompleted: 12, Weight: 40, Completed: true}},
			},
			setIndex: 0,
			want:     SetLog{RepsCompleted: 11, Weight: 40, Completed: true},
		},
		{
			name: "partial credit keeps dropping",
			log: ExerciseLog{
				TargetReps: 12,
				Sets:       []SetLog{{RepsCompleted: 5, Weight: 40, Completed: true}},
			},
			setIndex: 0,
			want:     SetLog{RepsCompleted: 4, Weight: 40, Completed: true},
		},
		{
			name: "one rep left returns to pending",
			log: ExerciseLog{
				TargetReps: 12,
				Sets:       []SetLog{{RepsCompleted: 1, Weight: 40, Completed: true}},
			},
			setIndex: 0,
			want:     SetLog{RepsCompleted: 0, Weight: 40, Completed: false},
		},
		{
			name: "single rep target cycles in two toggles",
			log: ExerciseLog{
				TargetReps: 1,
				Sets:       []SetLog{{RepsCompleted: 1, Weight: 40, Completed: true}},
			},
			setIndex: 0,
			want:     SetLog{RepsCompleted: 0, Weight: 40, Completed: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ToggleSet(tt.log, tt.setIndex)
			if diff := cmp.Diff(tt.want, got.Sets[tt.setIndex]); diff != "" {
				t.Errorf("ToggleSet() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToggleSet_cycleClosure(t *testing.T) {
	t.Parallel()
	for _, targetReps := range []int{1, 2, 5, 12} {
		log := ExerciseLog{
			TargetReps: targetReps,
			Sets:       []SetLog{{RepsCompleted: 0, Weight: 30, Completed: false}},
		}

		// A full cycle is targetReps+1 toggles; every intermediate state must
		// stay completed.
		current := log
		for i := range targetReps + 1 {
			current = ToggleSet(current, 0)
			if i < targetReps && !current.Sets[0].Completed {
				t.Errorf("targetReps=%d: toggle %d left the cycle early: %+v",
					targetReps, i+1, current.Sets[0])
			}
		}

		if diff := cmp.Diff(log, current); diff != "" {
			t.Errorf("targetReps=%d: %d toggles did not close the cycle (-want +got):\n%s",
				targetReps, targetReps+1, diff)
		}
	}
}

func TestToggleSet_outOfRangeIsNoop(t *testing.T) {
	t.Parallel()
	log := ExerciseLog{
		TargetReps: 12,
		Sets:       []SetLog{{RepsCompleted: 0, Weight: 40, Completed: false}},
	}

	for _, idx := range []int{-1, 1, 99} {
		if got := ToggleSet(log, idx); !cmp.Equal(log, got) {
			t.Errorf("ToggleSet(%d) modified the log", idx)
		}
	}
}

func TestAdjustWeight(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		sets        []SetLog
		delta       float64
		wantWeights []float64
	}{
		{
			name: "nudges active set and everything after it",
			sets: []SetLog{
				{Weight: 40, Completed: true},
				{Weight: 40, Completed: false},
				{Weight: 40, Completed: false},
			},
			delta:       2.5,
			wantWeights: []float64{40, 42.5, 42.5},
		},
		{
			name: "all sets completed targets the last set",
			sets: []SetLog{
				{Weight: 40, Completed: true},
				{Weight: 40, Completed: true},
			},
			delta:       -2.5,
			wantWeights: []float64{40, 37.5},
		},
		{
			name: "weight clamps at zero",
			sets: []SetLog{
				{Weight: 1, Completed: false},
			},
			delta:       -5,
			wantWeights: []float64{0},
		},
		{
			name:        "no sets is a no-op",
			sets:        nil,
			delta:       2.5,
			wantWeights: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := AdjustWeight(ExerciseLog{TargetReps: 12, Sets: tt.sets}, tt.delta)
			if len(got.Sets) != len(tt.wantWeights) {
				t.Fatalf("got %d sets, want %d", len(got.Sets), len(tt.wantWeights))
			}
			for i, want := range tt.wantWeights {
				if got.Sets[i].Weight != want {
					t.Errorf("set %d weight = %v, want %v", i, got.Sets[i].Weight, want)
				}
			}
		})
	}
}

func TestOverloadReady(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		log  ExerciseLog
		want bool
	}{
		{
			name: "all sets at target",
			log: ExerciseLog{TargetReps: 12, Sets: []SetLog{
				{RepsCompleted: 12, Completed: true},
				{RepsCompleted: 12, Completed: true},
			}},
			want: true,
		},
		{
			name: "partial set blocks overload",
			log: ExerciseLog{TargetReps: 12, Sets: []SetLog{
				{RepsCompleted: 12, Completed: true},
				{RepsCompleted: 11, Completed: true},
			}},
			want: false,
		},
		{
			name: "pending set blocks overload",
			log: ExerciseLog{TargetReps: 12, Sets: []SetLog{
				{RepsCompleted: 12, Completed: true},
				{RepsCompleted: 0, Completed: false},
			}},
			want: false,
		},
		{
			name: "no sets",
			log:  ExerciseLog{TargetReps: 12},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := OverloadReady(tt.log); got != tt.want {
				t.Errorf("OverloadReady() = %v, want %v", got, tt.want)
			}
		})
	}
}
