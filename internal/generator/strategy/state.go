package strategy

// StateKey type addresses the shared state slot of one generator kind on
// one column.
type StateKey struct {
	Kind   Kind
	Column string
}

// ColumnState type is the cross-chunk memory of a column: the resume
// point for sequential generators and the set of values already emitted
// for unique columns.
type ColumnState struct {
	LastValue any
	LastIndex int
	DType     string
	Unique    map[any]struct{}
}

// SharedState type holds column states for the lifetime of one
// generation run. It is threaded through every chunk so streaming output
// stays continuous and globally unique.
type SharedState struct {
	columns map[StateKey]*ColumnState
}

func NewSharedState() *SharedState {
	return &SharedState{columns: make(map[StateKey]*ColumnState)}
}

// Get returns the state slot for key, creating it on first use.
func (s *SharedState) Get(key StateKey) *ColumnState {
	cs, ok := s.columns[key]
	if !ok {
		cs = &ColumnState{Unique: make(map[any]struct{})}
		s.columns[key] = cs
	}

	return cs
}

// Has reports whether a resume point was recorded for key.
func (s *SharedState) Has(key StateKey) bool {
	_, ok := s.columns[key]

	return ok
}

// Len returns the number of tracked column states.
func (s *SharedState) Len() int {
	return len(s.columns)
}
