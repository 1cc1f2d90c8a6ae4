package rating

import (
	"testing"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   int
	}{
		{"single score", []int{7}, 7},
		{"exact mean", []int{6, 8}, 7},
		{"half rounds up to even", []int{7, 8}, 8},
		{"half rounds down to even", []int{4, 5}, 4},
		{"high scores", []int{9, 10, 10}, 10},
		{"all ones", []int{1, 1, 1}, 1},
		{"mixed", []int{1, 10}, 6}, // 5.5 rounds to 6
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.scores)
			if got == nil {
				t.Fatalf("Aggregate(%v) = nil, want %d", tt.scores, tt.want)
			}
			if *got != tt.want {
				t.Errorf("Aggregate(%v) = %d, want %d", tt.scores, *got, tt.want)
			}
		})
	}
}

func TestAggregateNoScores(t *testing.T) {
	if got := Aggregate(nil); got != nil {
		t.Errorf("Aggregate(nil) = %d, want nil", *got)
	}
	if got := Aggregate([]int{}); got != nil {
		t.Errorf("Aggregate(empty) = %d, want nil", *got)
	}
}
