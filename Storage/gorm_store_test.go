package Storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "gr-4401", escapeLike("gr-4401"))
	assert.Equal(t, `gr\%4401`, escapeLike("gr%4401"))
	assert.Equal(t, `gr\_4401`, escapeLike("gr_4401"))
	assert.Equal(t, `\\\%\_`, escapeLike(`\%_`))
}
