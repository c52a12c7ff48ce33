package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := map[string]string{
		"Mew":          "mew",
		"  KADABRA ":   "kadabra",
		"Mr. Mime":     "mrmime",
		"Fire Red":     "firered",
		"fire-red":     "firered",
		"Flabébé":      "flabebe",
		"Farfetch'd":   "farfetchd",
		"Black 2":      "black2",
		"Porygon-Z":    "porygonz",
		"ＭＥＷ":          "mew",
		"ゲンガー":         "ゲンガー",
		"ミュウ":          "ミュウ",
		"":             "",
		"!!!":          "",
		"Nidoran♀":     "nidoran",
		"Soul  Silver": "soulsilver",
	}
	for in, want := range tests {
		assert.Equal(t, want, Key(in), in)
	}
}

func TestFlexForm(t *testing.T) {
	assert.Equal(t, "mr-mime", FlexForm("Mr. Mime"))
	assert.Equal(t, "fire-red", FlexForm("Fire Red"))
	assert.Equal(t, "flabebe", FlexForm("Flabébé"))
	assert.Equal(t, "porygon-z", FlexForm("Porygon-Z"))
	assert.Equal(t, "black-2", FlexForm("Black 2"))
	assert.Equal(t, "", FlexForm(" . "))
}

func TestProper(t *testing.T) {
	assert.Equal(t, "Fire Red", Proper("fire-red"))
	assert.Equal(t, "Mr Mime", Proper("mr-mime"))
	assert.Equal(t, "Viridian Forest Area", Proper("viridian-forest-area"))
	assert.Equal(t, "Mew", Proper("mew"))
	assert.Equal(t, "", Proper(""))
}

func TestGeneration(t *testing.T) {
	assert.Equal(t, "I", Generation("generation-i"))
	assert.Equal(t, "VII", Generation("generation-vii"))
	assert.Equal(t, "X", Generation("x"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"mew", "red"}, Tokens("mew, red"))
	assert.Equal(t, []string{"mr mime", "fire red"}, Tokens(" mr mime ,fire red,, "))
	assert.Empty(t, Tokens("  "))
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "soul silver", CollapseSpace("  soul \t silver "))
}
