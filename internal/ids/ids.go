// Package ids allocates study identifiers of the form M-<typeDigit>-<NNN>.
package ids

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/models"
)

// DefaultDigit is used for type codes without an A_<digit>. prefix.
const DefaultDigit = "0"

// Digit returns the type digit of an initiative type code, or DefaultDigit.
func Digit(typeCode string) string {
	if d, ok := catalog.TypeDigit(typeCode); ok {
		return d
	}
	return DefaultDigit
}

// Format renders an id for a digit and sequence, padding to three digits.
func Format(digit string, seq int) string {
	return fmt.Sprintf("M-%s-%03d", digit, seq)
}

// NextID returns M-<digit>-<max+1> where max is the largest sequence among
// ids sharing the digit, past 999 included. It must be recomputed for every
// creation.
func NextID(studies []models.Study, typeCode string) string {
	digit := Digit(typeCode)
	pattern := regexp.MustCompile(`^M-` + regexp.QuoteMeta(digit) + `-([0-9]{3,})$`)

	max := 0
	for i := range studies {
		m := pattern.FindStringSubmatch(studies[i].ID)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return Format(digit, max+1)
}

// HasDigit reports whether id was minted for the given type code's digit.
func HasDigit(id, typeCode string) bool {
	return len(id) > 4 && id[:4] == "M-"+Digit(typeCode)+"-"
}
