package insight

import "regexp"

const maxFollowUps = 3

// followUpChecks is evaluated in fixed priority order: a question is asked
// only when its pattern finds no trace of the topic in the query.
var followUpChecks = []struct {
	covered  *regexp.Regexp
	question string
}{
	{
		covered:  regexp.MustCompile(`(?i)under|below|less|budget|above|over|\d`),
		question: "What budget range should I target for you?",
	},
	{
		covered:  regexp.MustCompile(`(?i)brand|apple|samsung|nike|hp|lenovo|infinix|tecno`),
		question: "Do you prefer any specific brand?",
	},
	{
		covered:  regexp.MustCompile(`(?i)size|inch|gb|tb|ram|color|battery|camera`),
		question: "Any required specs like size, storage, or performance?",
	},
}

// FollowUps builds up to three deterministic follow-up questions about the
// dimensions the query left unspecified.
func FollowUps(query string) []string {
	var questions []string
	for _, check := range followUpChecks {
		if !check.covered.MatchString(query) {
			questions = append(questions, check.question)
		}
		if len(questions) == maxFollowUps {
			break
		}
	}
	return questions
}
