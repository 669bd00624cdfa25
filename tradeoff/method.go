package tradeoff

import "strings"

// Method is the set of knockout reporting transforms, combinable as bit
// flags. The raw post-knockout growth rates are reported when no flag is
// set. When both flags are set the change transform applies first and the
// division still uses the pre-transform baseline row, i.e. relative change.
type Method uint8

const (
	// MethodRaw reports the post-knockout growth rates unchanged.
	MethodRaw Method = 0

	// MethodChange reports new − old.
	MethodChange Method = 1 << iota

	// MethodRelative divides by the baseline row (new/old, or
	// (new−old)/old combined with MethodChange).
	MethodRelative
)

// Has reports whether flag is set.
func (m Method) Has(flag Method) bool { return m&flag != 0 }

// String implements fmt.Stringer.
func (m Method) String() string {
	var parts []string
	if m.Has(MethodChange) {
		parts = append(parts, "change")
	}
	if m.Has(MethodRelative) {
		parts = append(parts, "relative")
	}
	if len(parts) == 0 {
		return "raw"
	}
	return strings.Join(parts, ",")
}

// ParseMethod parses a comma-separated method string ("change",
// "relative", "change,relative", "raw" or empty for raw). Unrecognized
// flags are rejected with ErrUnknownMethod rather than silently ignored.
func ParseMethod(s string) (Method, error) {
	m := MethodRaw
	for _, tok := range strings.Split(s, ",") {
		switch strings.TrimSpace(tok) {
		case "", "raw":
			// no-op
		case "change":
			m |= MethodChange
		case "relative":
			m |= MethodRelative
		default:
			return MethodRaw, ErrUnknownMethod
		}
	}
	return m, nil
}
