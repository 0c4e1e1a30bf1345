package composer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ClockEvaluator is the default ConditionEvaluator: best-effort
// natural-language matching of temporal predicates against the wall clock.
// It is deliberately heuristic, not a formal DSL; a condition matching none
// of the known patterns is treated as never active.
type ClockEvaluator struct{}

var (
	beforePattern = regexp.MustCompile(`before\s+(\d{1,2})\s*am`)
	afterPattern  = regexp.MustCompile(`after\s+(\d{1,2})\s*pm`)
	atPattern     = regexp.MustCompile(`at\s+(\d{1,2})\s*(am|pm)`)
)

// Active reports whether the predicate holds at now.
func (ClockEvaluator) Active(condition string, now time.Time) bool {
	cond := strings.ToLower(strings.TrimSpace(condition))
	if cond == "" {
		return true
	}
	hour := now.Hour()

	if m := beforePattern.FindStringSubmatch(cond); m != nil {
		n, err := strconv.Atoi(m[1])
		return err == nil && hour < n
	}
	if m := afterPattern.FindStringSubmatch(cond); m != nil {
		n, err := strconv.Atoi(m[1])
		return err == nil && hour > n+12
	}
	if m := atPattern.FindStringSubmatch(cond); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return false
		}
		if m[2] == "pm" && n < 12 {
			n += 12
		}
		return hour == n
	}

	switch {
	case strings.Contains(cond, "morning"):
		return hour >= 5 && hour < 12
	case strings.Contains(cond, "afternoon"):
		return hour >= 12 && hour < 17
	case strings.Contains(cond, "evening"):
		return hour >= 17 && hour < 21
	case strings.Contains(cond, "night"):
		return hour >= 21 || hour < 5
	}

	return false
}
