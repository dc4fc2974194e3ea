package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platformbuilds/studygraph/internal/models"
)

func studies(ids ...string) []models.Study {
	out := make([]models.Study, len(ids))
	for i, id := range ids {
		out[i] = models.Study{ID: id}
	}
	return out
}

func TestNextID(t *testing.T) {
	assert.Equal(t, "M-6-002", NextID(studies("M-6-001"), "A_6.001"))
	assert.Equal(t, "M-0-001", NextID(nil, "A_0.001"))
	assert.Equal(t, "M-0-010", NextID(studies("M-0-009", "M-6-050", "M-0-002"), "A_0.001"))
}

func TestNextIDIgnoresForeignShapes(t *testing.T) {
	got := NextID(studies("M-2-07", "X-2-900", "M-2-004 ", "M-3-500"), "A_2.001")
	assert.Equal(t, "M-2-001", got)
}

func TestNextIDSeesSequencesPast999(t *testing.T) {
	assert.Equal(t, "M-2-1201", NextID(studies("M-2-1200", "M-2-999"), "A_2.001"))
	assert.Equal(t, "M-0-1001", NextID(studies("M-0-999", "M-0-1000"), "A_0.001"))
}

func TestNextIDDefaultsDigit(t *testing.T) {
	assert.Equal(t, "M-0-002", NextID(studies("M-0-001"), "garbage"))
}

func TestNextIDOverflowsPadding(t *testing.T) {
	assert.Equal(t, "M-4-1000", NextID(studies("M-4-999"), "A_4.001"))
}

func TestHasDigit(t *testing.T) {
	assert.True(t, HasDigit("M-6-001", "A_6.001"))
	assert.False(t, HasDigit("M-0-001", "A_6.001"))
	assert.False(t, HasDigit("M-0", "A_0.001"))
}
