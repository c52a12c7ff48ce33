package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_IsError(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindOK, false},
		{KindNoMatch, false},
		{KindArgumentNumber, true},
		{KindInvalidArgument, true},
		{KindFetchError, true},
		{KindTechnical, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.IsError())
			assert.Equal(t, tt.want, New(tt.kind).IsError)
		})
	}
}

func TestResponse_Text(t *testing.T) {
	r := New(KindOK, "**__Mew | #151 | Generation I__**", "second")
	assert.Equal(t, "**__Mew | #151 | Generation I__**\nsecond", r.Text())
	assert.Equal(t, "ok", r.KindStr)
}
