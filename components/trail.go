package components

// Trail holds a creature's position history and its sampled body segments.
// History is a fixed-capacity ring ordered most-recent-first.
type Trail struct {
	history  []Position
	head     int // Index of the most recent sample
	n        int
	Segments []Position
}

// NewTrail creates a trail with the given history capacity.
func NewTrail(capacity int) Trail {
	if capacity < 1 {
		capacity = 1
	}
	return Trail{history: make([]Position, capacity)}
}

// Push records a new most-recent position, dropping the oldest when full.
func (t *Trail) Push(p Position) {
	if len(t.history) == 0 {
		t.history = make([]Position, 1)
	}
	t.head--
	if t.head < 0 {
		t.head = len(t.history) - 1
	}
	t.history[t.head] = p
	if t.n < len(t.history) {
		t.n++
	}
}

// At returns the i-th most recent position. ok is false past the recorded history.
func (t *Trail) At(i int) (Position, bool) {
	if i < 0 || i >= t.n {
		return Position{}, false
	}
	return t.history[(t.head+i)%len(t.history)], true
}

// Len returns the number of recorded positions.
func (t *Trail) Len() int { return t.n }

// Cap returns the history capacity.
func (t *Trail) Cap() int { return len(t.history) }

// Reset clears history and segments.
func (t *Trail) Reset() {
	t.head = 0
	t.n = 0
	t.Segments = t.Segments[:0]
}
