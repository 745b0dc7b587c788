package hermes

import (
	"strings"
	"unicode"
)

const (
	SubjectDistrictIndexComputed = "rural.district.index.computed"

	StreamName   = "RURAL_PRIORITY_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

var streamSubjects = []string{"rural.>"}

func SubjectDistrictAlert(district string) string {
	return "rural.district." + Token(district) + ".alert"
}

// Token turns a label into a single NATS subject token: lower case, with
// anything other than letters (any script, with their combining marks),
// digits, '-' and '_' replaced by '_'.
func Token(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "_"
	}
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
