package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunker_Validation(t *testing.T) {
	_, err := NewChunker(0, 0)
	assert.Error(t, err)

	_, err = NewChunker(100, 100)
	assert.Error(t, err)

	_, err = NewChunker(100, 150)
	assert.Error(t, err)

	_, err = NewChunker(100, -1)
	assert.Error(t, err)

	_, err = NewChunker(100, 0)
	assert.NoError(t, err)
}

func TestChunker_EmptyContent(t *testing.T) {
	c, err := NewChunker(1000, 200)
	require.NoError(t, err)

	assert.Empty(t, c.Split(""))
}

func TestChunker_ShortContent(t *testing.T) {
	c, err := NewChunker(1000, 200)
	require.NoError(t, err)

	chunks := c.Split("short text")
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestChunker_OverlapBoundaries(t *testing.T) {
	c, err := NewChunker(1000, 200)
	require.NoError(t, err)

	content := strings.Repeat("abcdefghij", 250) // 2500 chars
	chunks := c.Split(content)

	// ceil((2500-200)/(1000-200)) = 3
	require.Len(t, chunks, 3)

	for i, chunk := range chunks[:len(chunks)-1] {
		assert.Len(t, chunk, 1000, "non-final chunk %d must be full size", i)
		// consecutive chunks share exactly the overlap at the boundary
		assert.Equal(t, chunk[1000-200:], chunks[i+1][:200])
	}
}

func TestChunker_Reconstruction(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		overlap int
		length  int
	}{
		{"exact multiple", 10, 3, 100},
		{"with remainder", 10, 3, 95},
		{"single chunk", 50, 10, 30},
		{"no overlap", 10, 0, 47},
		{"large overlap", 10, 9, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewChunker(tc.size, tc.overlap)
			require.NoError(t, err)

			content := makeContent(tc.length)
			chunks := c.Split(content)
			require.NotEmpty(t, chunks)

			var rebuilt strings.Builder
			rebuilt.WriteString(chunks[0])
			for _, chunk := range chunks[1:] {
				rebuilt.WriteString(chunk[tc.overlap:])
			}
			assert.Equal(t, content, rebuilt.String())
		})
	}
}

func TestChunker_CountFormula(t *testing.T) {
	size, overlap := 100, 20
	c, err := NewChunker(size, overlap)
	require.NoError(t, err)

	for _, length := range []int{1, 19, 20, 21, 99, 100, 101, 180, 181, 500, 1234} {
		chunks := c.Split(makeContent(length))

		expected := 1
		if length > overlap {
			step := size - overlap
			expected = (length - overlap + step - 1) / step
		}
		assert.Len(t, chunks, expected, "length %d", length)
	}
}

func TestChunker_MultibyteRuneBoundaries(t *testing.T) {
	c, err := NewChunker(1000, 200)
	require.NoError(t, err)

	// 3-byte runes, 2400 bytes total; 1000 is not a multiple of 3 so a
	// naive byte cut would land inside a rune
	content := strings.Repeat("大学入試", 200)
	chunks := c.Split(content)
	require.GreaterOrEqual(t, len(chunks), 2)

	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d is not valid UTF-8", i)
		assert.NotEmpty(t, chunk)
	}
	assert.True(t, strings.HasPrefix(content, chunks[0]))
	assert.True(t, strings.HasSuffix(content, chunks[len(chunks)-1]))
}

func TestChunker_MixedASCIIAndMultibyte(t *testing.T) {
	c, err := NewChunker(10, 3)
	require.NoError(t, err)

	content := strings.Repeat("essay déjà vu résumé 大学 naïve café ", 5)
	chunks := c.Split(content)
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d is not valid UTF-8", i)
		// chunks are cut from the input at rune boundaries
		assert.Contains(t, content, chunk)
	}
	assert.True(t, strings.HasSuffix(content, chunks[len(chunks)-1]))
}

func TestChunker_Idempotent(t *testing.T) {
	c, err := NewChunker(100, 25)
	require.NoError(t, err)

	content := makeContent(731)
	assert.Equal(t, c.Split(content), c.Split(content))
}

func makeContent(length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	return b.String()
}
