package attachment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAltText(t *testing.T) {
	assert.Equal(t, "0:00:07 cat", AltText("0:00:07 <b>cat</b>"))
	assert.Equal(t, "Tom &amp; Jerry", AltText("Tom & Jerry"))
}
