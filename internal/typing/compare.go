package typing

// Comparison is the outcome of a position-indexed text comparison.
type Comparison struct {
	Total   int
	Correct int
}

// Compare scores typed against target with strict positional rune equality.
// Total is the rune length of target. Runes typed beyond the target are
// ignored; target runes that were never typed stay unmatched. The same
// function scores both live prefixes and the final text, so the live view
// and the recorded result can never disagree.
func Compare(typed, target string) Comparison {
	typedRunes := []rune(typed)
	targetRunes := []rune(target)

	limit := len(typedRunes)
	if len(targetRunes) < limit {
		limit = len(targetRunes)
	}
	correct := 0
	for i := 0; i < limit; i++ {
		if typedRunes[i] == targetRunes[i] {
			correct++
		}
	}
	return Comparison{Total: len(targetRunes), Correct: correct}
}
