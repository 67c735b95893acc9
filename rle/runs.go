package rle

// Run is a single run of one symbol value.
type Run[S comparable] struct {
	// Symbol is the repeated value.
	Symbol S
	// Count is the number of times Symbol occurs in the run. A valid run always
	// has Count >= 1.
	Count int
}

// Runs groups data into runs of identical consecutive symbols.
//
// When maxRun is positive, longer runs are split into maxRun-sized pieces
// followed by the remainder; maxRun <= 0 leaves runs unbounded.
func Runs[S comparable](data []S, maxRun int) []Run[S] {
	if len(data) == 0 {
		return nil
	}

	runs := make([]Run[S], 0, 16)
	current := Run[S]{Symbol: data[0], Count: 1}
	for _, s := range data[1:] {
		if s == current.Symbol && (maxRun <= 0 || current.Count < maxRun) {
			current.Count++
			continue
		}
		runs = append(runs, current)
		current = Run[S]{Symbol: s, Count: 1}
	}

	return append(runs, current)
}
