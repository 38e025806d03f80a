package strategy

// deleteStrategy blanks out the rows it is applied to. Combined with a
// mask it nullifies a subset of the column, without one it clears the
// whole column. The column itself stays in the output.
type deleteStrategy struct {
	base
}

var _ Strategy = (*deleteStrategy)(nil)

func (s *deleteStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	return nil
}

func (s *deleteStrategy) GenerateChunk(count int) ([]any, error) {
	return make([]any, count), nil
}
