package suppress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceLen(t *testing.T) {
	n, ok := sourceLen(0)
	assert.True(t, ok)
	assert.Zero(t, n)

	_, ok = sourceLen(-1)
	assert.False(t, ok)

	if math.MaxInt > math.MaxUint32 {
		limit := uint64(math.MaxUint32)
		n, ok = sourceLen(int(limit))
		assert.True(t, ok)
		assert.Equal(t, uint32(math.MaxUint32), n)

		_, ok = sourceLen(int(limit + 1))
		assert.False(t, ok)
	}
}

func TestBuildEmptySource(t *testing.T) {
	set := Build(nil, nil)
	assert.NotNil(t, set)
	assert.Empty(t, set.Lint())
}
