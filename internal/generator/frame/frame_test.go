package frame

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureColumnNullFill(t *testing.T) {
	f := New(3, []string{"a"})

	require.Equal(t, 3, f.Len())
	require.True(t, f.Has("a"))

	values := f.EnsureColumn("b")
	require.Len(t, values, 3)

	for i := range values {
		require.Nil(t, f.Value("b", i))
	}

	require.Equal(t, []string{"a", "b"}, f.Columns())
}

func TestSetColumnLengthMismatch(t *testing.T) {
	f := New(2, nil)

	err := f.SetColumn("a", []any{1, 2, 3})
	require.Error(t, err)

	require.NoError(t, f.SetColumn("a", []any{1, 2}))
	require.Equal(t, 1, f.Value("a", 0))
}

func TestDropIntermediate(t *testing.T) {
	f := New(2, []string{"keep", "tmp"})
	require.NoError(t, f.SetColumn("keep", []any{1, 2}))
	require.NoError(t, f.SetColumn("tmp", []any{3, 4}))

	f.MarkIntermediate("tmp")
	require.Equal(t, []string{"tmp"}, f.IntermediateColumns())

	f.DropIntermediate()
	require.Equal(t, []string{"keep"}, f.Columns())
	require.False(t, f.Has("tmp"))
}

func TestShuffleKeepsRowsAligned(t *testing.T) {
	f := New(10, []string{"id", "twice"})

	ids := make([]any, 10)
	twice := make([]any, 10)

	for i := range ids {
		ids[i] = i
		twice[i] = i * 2
	}

	require.NoError(t, f.SetColumn("id", ids))
	require.NoError(t, f.SetColumn("twice", twice))
	f.MarkIntermediate("twice")

	f.Shuffle(rand.New(rand.NewSource(1)))

	for i := 0; i < 10; i++ {
		id, ok := f.Value("id", i).(int)
		require.True(t, ok)
		require.Equal(t, id*2, f.Value("twice", i))
	}

	// column-scoped metadata survives the reorder
	require.Equal(t, []string{"twice"}, f.IntermediateColumns())
}

func TestSlice(t *testing.T) {
	f := New(5, []string{"n", "tmp"})

	values := make([]any, 5)
	for i := range values {
		values[i] = i
	}

	require.NoError(t, f.SetColumn("n", values))
	f.MarkIntermediate("tmp")

	part := f.Slice(1, 3)
	require.Equal(t, 2, part.Len())
	require.Equal(t, []any{1, 2}, part.Column("n"))
	require.Equal(t, []string{"n", "tmp"}, part.Columns())
	require.True(t, part.IsIntermediate("tmp"))

	// slices copy, mutations don't leak back
	part.SetAt("n", 0, 99)
	require.Equal(t, 1, f.Value("n", 1))
}

func TestRow(t *testing.T) {
	f := New(1, []string{"x"})
	f.SetAt("x", 0, 7)

	require.Equal(t, map[string]any{"x": 7}, f.Row(0))
}
