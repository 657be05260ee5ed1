package football

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNameBasic(t *testing.T) {
	assert.Equal(t, "manchester_united", NormalizeName("Manchester United"))
	assert.Equal(t, "ab_c", NormalizeName("Ab  -- C"))
}

func TestNormalizeNameAmpersand(t *testing.T) {
	assert.Equal(t, "a_and", NormalizeName("& And"))
}

func TestNormalizeNameIdempotent(t *testing.T) {
	once := NormalizeName("Newcastle United F.C.!!")
	twice := NormalizeName(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeNameEmpty(t *testing.T) {
	assert.Equal(t, "", NormalizeName(""))
	assert.Equal(t, "", NormalizeName("---"))
}
