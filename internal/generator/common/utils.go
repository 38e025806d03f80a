package common

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func Filter[T any](arr []T, f func(T) bool) []T {
	filtered := make([]T, 0)

	for _, v := range arr {
		if f(v) {
			filtered = append(filtered, v)
		}
	}

	return filtered
}

// AnyToStruct converts map or struct to selected struct, rejecting unknown keys.
func AnyToStruct[T any](data any) (*T, error) {
	return decodeStruct[T](data, true)
}

// AnyToStructLenient converts map or struct to selected struct,
// ignoring keys the target struct doesn't declare instead of failing.
func AnyToStructLenient[T any](data any) (*T, error) {
	return decodeStruct[T](data, false)
}

func decodeStruct[T any](data any, strict bool) (*T, error) {
	var res T

	if data == nil {
		return &res, nil
	}

	bytesData, err := yaml.Marshal(data)
	if err != nil {
		return &res, errors.New(err.Error())
	}

	decoder := yaml.NewDecoder(bytes.NewReader(bytesData))
	decoder.KnownFields(strict)

	err = decoder.Decode(&res)
	if err != nil {
		return &res, errors.New(err.Error())
	}

	return &res, nil
}

// FormatValue renders any generated value the way writers and concatenation
// expect to see it: integers without exponent, floats trimmed, nil as empty.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

var strftimeReplacements = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'b': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'f': "000000",
	'z': "-0700",
	'Z': "MST",
}

// StrftimeLayout converts a strftime-style format string to a Go time layout.
// Unknown directives are kept verbatim without the percent sign.
func StrftimeLayout(format string) string {
	var sb strings.Builder

	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i == len(format)-1 {
			sb.WriteByte(format[i])

			continue
		}

		i++

		if format[i] == '%' {
			sb.WriteByte('%')

			continue
		}

		if layout, ok := strftimeReplacements[format[i]]; ok {
			sb.WriteString(layout)
		} else {
			sb.WriteByte(format[i])
		}
	}

	return sb.String()
}
