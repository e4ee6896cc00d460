package pkg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinedWriter(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	cw := NewCombinedWriter(&buf1, &buf2)

	n, err := cw.Write([]byte("hello there"))
	require.NoError(t, err)

	assert.Equal(t, len("hello there"), n)
	assert.Equal(t, "hello there", buf1.String())
	assert.Equal(t, "hello there", buf2.String())
}
