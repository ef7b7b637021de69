package streak

import "strings"

// MinimumWords is the daily word count that keeps a streak alive.
const MinimumWords = 750

// WordCount counts runs of non-whitespace. Punctuation is part of a word.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// GoalMet reports whether a word count reaches MinimumWords.
func GoalMet(words int) bool {
	return words >= MinimumWords
}
