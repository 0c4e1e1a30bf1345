package memory

import (
	"regexp"
	"strings"

	"github.com/ariahq/aria/internal/domain"
)

var (
	capitalizedPattern = regexp.MustCompile(`\b[A-Z][a-z]{2,}\b`)
	emailPattern       = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	numericDatePattern = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\b`)
)

// sentenceStarters are capitalized words that carry no entity meaning.
var sentenceStarters = map[string]struct{}{
	"The": {}, "This": {}, "That": {}, "There": {}, "Then": {},
	"What": {}, "How": {}, "Why": {}, "When": {}, "Where": {}, "Who": {},
	"Can": {}, "Could": {}, "Would": {}, "Should": {}, "Please": {},
	"And": {}, "But": {}, "For": {}, "With": {}, "From": {},
	"You": {}, "Your": {}, "Yes": {}, "Not": {}, "Let": {},
}

var weekdayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
}

// topicVocabulary is the fixed keyword set mapped straight to tags.
var topicVocabulary = []string{
	"project", "meeting", "birthday", "appointment", "deadline",
	"work", "family", "travel", "health", "food", "movie", "music",
	"book", "weather", "shopping",
}

// ClassifyIntent derives the coarse intent of a user input. First match wins,
// in priority order: reminder, question, gratitude, help request, then the
// general-statement fallback.
func ClassifyIntent(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "remind") || strings.Contains(lower, "don't forget"):
		return domain.IntentReminder
	case strings.Contains(text, "?") || hasQuestionPrefix(lower):
		return domain.IntentQuestion
	case strings.Contains(lower, "thank") || strings.Contains(lower, "appreciate"):
		return domain.IntentGratitude
	case strings.Contains(lower, "help") || strings.Contains(lower, "can you") || strings.Contains(lower, "could you"):
		return domain.IntentHelpRequest
	default:
		return domain.IntentGeneralStatement
	}
}

func hasQuestionPrefix(lower string) bool {
	for _, prefix := range []string{"what ", "how ", "why ", "when ", "where ", "who "} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// DeriveTags extracts keyword tags from a completed turn: capitalized-word
// entities, an email-address detector, a date/weekday/month detector, and
// the fixed topic vocabulary. Tags are lowercased and deduplicated in
// discovery order.
func DeriveTags(userInput, assistantReply string) []string {
	combined := userInput + " " + assistantReply
	lower := strings.ToLower(combined)

	var tags []string
	seen := make(map[string]struct{})
	add := func(tag string) {
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	for _, word := range capitalizedPattern.FindAllString(combined, -1) {
		if _, skip := sentenceStarters[word]; skip {
			continue
		}
		add(strings.ToLower(word))
	}

	if emailPattern.MatchString(combined) {
		add("email")
	}

	dated := numericDatePattern.MatchString(combined) ||
		strings.Contains(lower, "today") || strings.Contains(lower, "tomorrow") ||
		strings.Contains(lower, "yesterday")
	for _, day := range weekdayNames {
		if strings.Contains(lower, day) {
			add(day)
			dated = true
		}
	}
	for _, month := range monthNames {
		if containsWord(lower, month) {
			add(month)
			dated = true
		}
	}
	if dated {
		add("date")
	}

	for _, topic := range topicVocabulary {
		if strings.Contains(lower, topic) {
			add(topic)
		}
	}

	return tags
}

// containsWord avoids substring hits like "may" inside "maybe".
func containsWord(lower, word string) bool {
	for _, tok := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		if tok == word {
			return true
		}
	}
	return false
}
