package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"English", "en"},
		{"telugu", "te"},
		{" TA ", "ta"},
		{"bn", "bn"},
		{"Kannada", "kn"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := Lookup(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Code)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("Klingon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Telugu")
}

func TestAll_IsACopy(t *testing.T) {
	all := All()
	all[0].Code = "xx"
	assert.Equal(t, "en", All()[0].Code)
	assert.Len(t, All(), 6)
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "Hindi", LabelFor("hi"))
	assert.Equal(t, "fr", LabelFor("fr"))
}
