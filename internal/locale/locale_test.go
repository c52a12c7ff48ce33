package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"en", English},
		{"en-US", English},
		{"es-MX", Spanish},
		{"de", German},
		{"ja-JP", Japanese},
		{"zh-CN", Chinese},
		{"ko", Korean},
		{"not a tag!", English},
		{"", English},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLanguage(tt.in), tt.in)
	}
}

func TestLanguage_FlexKey(t *testing.T) {
	assert.Equal(t, "ja-Hrkt", Japanese.FlexKey())
	assert.Equal(t, "zh-Hans", Chinese.FlexKey())
	assert.Equal(t, "en", Language("").FlexKey())
}

func TestDefaultCatalog(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, "able via", c.Text("learn.able", English))
	assert.Equal(t, "fähig", c.Text("learn.able", German))
	// no korean text for the header, falls back to english
	assert.Equal(t, "Could not process your request due to the following problem(s):", c.Text("invalid.header", Korean))
	assert.Equal(t, "missing.key", c.Text("missing.key", English))
	assert.Equal(t, "第I世代", c.Textf("generation", Japanese, "I"))
	assert.True(t, c.Has("location.none"))
}

func TestParseCatalog_RequiresEnglish(t *testing.T) {
	_, err := ParseCatalog([]byte("greeting:\n  de: hallo\n"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("greeting: [1, 2"))
	assert.Error(t, err)
}
