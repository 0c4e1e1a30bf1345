package composer

import (
	"testing"
	"time"
)

func TestClockEvaluatorPatterns(t *testing.T) {
	tests := []struct {
		condition string
		hour      int
		want      bool
	}{
		{"before 10am", 8, true},
		{"before 10am", 11, false},
		{"after 6pm", 19, true},
		{"after 6pm", 17, false},
		{"at 3pm", 15, true},
		{"at 3pm", 14, false},
		{"at 9am", 9, true},
		{"At 12pm", 12, true},
		{"morning", 5, true},
		{"morning", 12, false},
		{"afternoon", 13, true},
		{"afternoon", 17, false},
		{"evening", 20, true},
		{"evening", 21, false},
		{"night", 23, true},
		{"night", 3, true},
		{"night", 12, false},
		{"whenever mercury is in retrograde", 12, false},
		{"", 12, true},
	}

	eval := ClockEvaluator{}
	for _, tt := range tests {
		now := time.Date(2025, time.June, 1, tt.hour, 30, 0, 0, time.UTC)
		if got := eval.Active(tt.condition, now); got != tt.want {
			t.Errorf("Active(%q, hour=%d) = %v, want %v", tt.condition, tt.hour, got, tt.want)
		}
	}
}
