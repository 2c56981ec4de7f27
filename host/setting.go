package host

import (
	"fmt"
	"strconv"
	"strings"
)

// Setting assigns a value to one control of one or more rack stages.
//
// Stage is either a zero-based stage index or a plugin label; a label
// applies to every stage running that plugin. Key is matched against
// control names by [ControlKey].
type Setting struct {
	Stage string
	Key   string
	Value float64
}

// ParseSetting parses "stage.key=value", e.g. "softclip.drive=6" or
// "0.balance=0.25".
func ParseSetting(s string) (Setting, error) {
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok {
		return Setting{}, fmt.Errorf("host: setting %q: missing '='", s)
	}

	stage, key, ok := strings.Cut(strings.TrimSpace(lhs), ".")
	if !ok || stage == "" || key == "" {
		return Setting{}, fmt.Errorf("host: setting %q: want stage.key=value", s)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(rhs), 64)
	if err != nil {
		return Setting{}, fmt.Errorf("host: setting %q: %w", s, err)
	}

	return Setting{Stage: stage, Key: ControlKey(key), Value: v}, nil
}

// String formats s the way ParseSetting reads it.
func (s Setting) String() string {
	return s.Stage + "." + s.Key + "=" + strconv.FormatFloat(s.Value, 'g', -1, 64)
}

// ControlKey derives the short key of a control name: lower case, unit
// suffix in parentheses dropped, spaces replaced by dashes.
// "Drive (dB)" becomes "drive".
func ControlKey(name string) string {
	if i := strings.Index(name, " ("); i >= 0 {
		name = name[:i]
	}

	name = strings.ToLower(strings.TrimSpace(name))

	return strings.ReplaceAll(name, " ", "-")
}
