package memory

import (
	"regexp"
	"strings"
	"time"

	"github.com/ariahq/aria/internal/domain"
)

// NaturalParser is the default QueryParser: regex-based extraction of coarse
// date ranges and tags from a free-text memory query. Matched phrases are
// stripped from the residual text used for similarity scoring.
type NaturalParser struct{}

var (
	hashtagPattern  = regexp.MustCompile(`#(\w+)`)
	aboutPattern    = regexp.MustCompile(`(?i)\babout\s+(\w+)`)
	lastWeekPattern = regexp.MustCompile(`(?i)\blast\s+week\b`)
)

var weekdayIndex = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

// Parse implements ports.QueryParser.
func (NaturalParser) Parse(text string, now time.Time) domain.MemoryQuery {
	q := domain.MemoryQuery{}
	residual := text

	for _, m := range hashtagPattern.FindAllStringSubmatch(residual, -1) {
		q.Tags = append(q.Tags, strings.ToLower(m[1]))
	}
	residual = hashtagPattern.ReplaceAllString(residual, "")

	if m := aboutPattern.FindStringSubmatch(residual); m != nil {
		q.Tags = append(q.Tags, strings.ToLower(m[1]))
		residual = aboutPattern.ReplaceAllString(residual, "")
	}

	lower := strings.ToLower(residual)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case strings.Contains(lower, "yesterday"):
		q.Start = dayStart.AddDate(0, 0, -1)
		q.End = dayStart
		residual = stripPhrase(residual, "yesterday")
	case lastWeekPattern.MatchString(residual):
		q.Start = dayStart.AddDate(0, 0, -7)
		q.End = now
		residual = lastWeekPattern.ReplaceAllString(residual, "")
	default:
		for name, weekday := range weekdayIndex {
			if !strings.Contains(lower, name) {
				continue
			}
			// Most recent past occurrence; "monday" said on a Monday
			// means a week ago.
			back := int(now.Weekday()-weekday+7) % 7
			if back == 0 {
				back = 7
			}
			q.Start = dayStart.AddDate(0, 0, -back)
			q.End = q.Start.AddDate(0, 0, 1)
			residual = stripPhrase(residual, name)
			break
		}
	}

	q.Text = strings.Join(strings.Fields(residual), " ")
	return q
}

func stripPhrase(text, phrase string) string {
	pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
	return pattern.ReplaceAllString(text, "")
}
