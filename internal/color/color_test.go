package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForType(t *testing.T) {
	s := New()
	assert.Equal(t, 0xF08030, s.ForType("fire"))
	assert.Equal(t, 0xF08030, s.ForType("Fire"))
	assert.Equal(t, Default, s.ForType("shadow"))
}

func TestForVersion(t *testing.T) {
	s := New()
	assert.Equal(t, 0xFF7327, s.ForVersion("fire-red"))
	assert.Equal(t, 0xFF7327, s.ForVersion("firered"))
	assert.Equal(t, 0x00A000, s.ForVersion("Emerald"))
	assert.Equal(t, Default, s.ForVersion("stadium"))
}

func TestColorFor_Deterministic(t *testing.T) {
	s := New()
	assert.Equal(t, 0x6890F0, s.ColorFor("water"))
	assert.Equal(t, 0xFF1111, s.ColorFor("red"))

	a := s.ColorFor("some-unknown-key")
	b := s.ColorFor("Some-Unknown-Key")
	assert.Equal(t, a, b)
	assert.LessOrEqual(t, a, 0xFFFFFF)
}
