package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLocales()
	assert.Equal("3 trits", From("%v trits", 3))
	assert.Equal("'x' missing", From("'%v' missing", "x"))

	SetLocales("en-GB", FALLBACK_LOCALE)
	assert.Equal("line 7", From("line %d", 7))
}
