package docgen

import "strings"

// Maybe wraps a string that may be absent. It makes every defaulting decision
// explicit at the call site instead of hiding it in string concatenation.
type Maybe struct {
	value   string
	present bool
}

// StringOf wraps s; blank strings count as absent.
func StringOf(s string) Maybe {
	trimmed := strings.TrimSpace(s)
	return Maybe{value: trimmed, present: trimmed != ""}
}

// Present reports whether a value is set.
func (m Maybe) Present() bool {
	return m.present
}

// Or returns the wrapped value, or def when absent.
func (m Maybe) Or(def string) string {
	if m.present {
		return m.value
	}
	return def
}
