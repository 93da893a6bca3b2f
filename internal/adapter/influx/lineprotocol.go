package influx

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/euanh/inforad/internal/app"
)

// EncodeLine renders one sample as an influx v1 line protocol line with a
// nanosecond timestamp. The series key is written verbatim, so callers are
// free to carry tags in it ("CA,priority=Blocker").
func EncodeLine(s app.Sample) (string, error) {
	if s.Series == "" {
		return "", errors.New("sample has empty series key")
	}
	if containsUnescapedWhitespace(s.Series) {
		return "", fmt.Errorf("series key %q contains unescaped whitespace", s.Series)
	}
	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return "", fmt.Errorf("series %s has non-finite value", s.Series)
	}

	var b strings.Builder
	b.WriteString(s.Series)
	b.WriteString(" value=")
	b.WriteString(strconv.FormatFloat(s.Value, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatInt(s.Time.UnixNano(), 10))

	return b.String(), nil
}

// EncodeBatch renders a batch as newline separated lines.
func EncodeBatch(samples []app.Sample) (string, error) {
	lines := make([]string, 0, len(samples))
	for _, s := range samples {
		line, err := EncodeLine(s)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), nil
}

// EscapeTagValue escapes characters with special meaning in series keys, for
// callers building tags from external names.
func EscapeTagValue(v string) string {
	r := strings.NewReplacer(",", `\,`, "=", `\=`, " ", `\ `)

	return r.Replace(v)
}

// containsUnescapedWhitespace reports whether the series key holds
// whitespace outside of a backslash escape. Keys built with EscapeTagValue
// carry spaces as `\ ` and stay valid.
func containsUnescapedWhitespace(key string) bool {
	escaped := false
	for i := 0; i < len(key); i++ {
		switch {
		case escaped:
			escaped = false
		case key[i] == '\\':
			escaped = true
		case key[i] == ' ' || key[i] == '\t' || key[i] == '\n':
			return true
		}
	}
	return false
}
