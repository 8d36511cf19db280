package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	defer func(v, h string) { Version, GitHash = v, h }(Version, GitHash)

	Version, GitHash = "v1.2.0", "None"
	assert.Equal(t, "v1.2.0", GetVersion())

	GitHash = "0123456789abcdef"
	assert.Equal(t, "v1.2.0-0123456", GetVersion())

	var buf bytes.Buffer
	Fprint(&buf)
	assert.Contains(t, buf.String(), "v1.2.0-0123456")
	assert.Contains(t, buf.String(), "Git Branch:")
}
