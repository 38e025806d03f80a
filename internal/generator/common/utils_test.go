package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnyToStruct(t *testing.T) {
	type target struct {
		Name  string `yaml:"name"`
		Count int    `yaml:"count"`
	}

	res, err := AnyToStruct[target](map[string]any{"name": "a", "count": 3})
	require.NoError(t, err)
	require.Equal(t, "a", res.Name)
	require.Equal(t, 3, res.Count)

	_, err = AnyToStruct[target](map[string]any{"name": "a", "unknown": true})
	require.Error(t, err)

	res, err = AnyToStructLenient[target](map[string]any{"name": "a", "unknown": true})
	require.NoError(t, err)
	require.Equal(t, "a", res.Name)

	res, err = AnyToStruct[target](nil)
	require.NoError(t, err)
	require.Equal(t, "", res.Name)
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "", FormatValue(nil))
	require.Equal(t, "42", FormatValue(int64(42)))
	require.Equal(t, "1.5", FormatValue(1.5))
	require.Equal(t, "abc", FormatValue("abc"))
	require.Equal(t, "true", FormatValue(true))
}

func TestStrftimeLayout(t *testing.T) {
	cases := map[string]string{
		"%Y-%m-%d":          "2006-01-02",
		"%H:%M:%S":          "15:04:05",
		"%d/%m/%Y %H:%M":    "02/01/2006 15:04",
		"%Y-%m-%dT%H:%M:%S": "2006-01-02T15:04:05",
		"100%%":             "100%",
	}

	for format, layout := range cases {
		require.Equal(t, layout, StrftimeLayout(format), format)
	}
}
