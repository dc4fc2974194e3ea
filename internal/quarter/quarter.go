// Package quarter handles the Q<1-4>.<YY> calendar quarter token.
package quarter

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Placeholder is shown when a study has no quarter.
const Placeholder = "Q?.??"

var (
	tokenPattern = regexp.MustCompile(`Q[1-4]\.([0-9]{2})`)
	exactPattern = regexp.MustCompile(`^Q[1-4]\.[0-9]{2}$`)
)

// Year returns 2000+YY for a token containing Q<1-4>.<YY>.
func Year(token string) (int, bool) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return 0, false
	}
	yy, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return 2000 + yy, true
}

// YearString is Year formatted as a four digit string, or "" when unparsable.
func YearString(token string) string {
	y, ok := Year(token)
	if !ok {
		return ""
	}
	return strconv.Itoa(y)
}

// Valid reports whether token is exactly Q<1-4>.<YY>.
func Valid(token string) bool {
	return exactPattern.MatchString(token)
}

// Of returns the token for the quarter containing t.
func Of(t time.Time) string {
	m := int(t.Month())
	q := 4
	switch {
	case m <= 3:
		q = 1
	case m <= 6:
		q = 2
	case m <= 9:
		q = 3
	}
	return fmt.Sprintf("Q%d.%02d", q, t.Year()%100)
}

// Current returns the token for the current local date.
func Current() string {
	return Of(time.Now())
}
