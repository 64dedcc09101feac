package catalogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want CanonicalKey
	}{
		{"lowercases", "Cat", "cat"},
		{"trims", "  cat \t", "cat"},
		{"keeps inner spaces", " Long Hair ", "long hair"},
		{"unicode", "ÄRGER", "ärger"},
		{"empty", "", ""},
		{"blank", "   \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}

func TestKeyIsZero(t *testing.T) {
	assert.True(t, Key(" ").IsZero())
	assert.False(t, Key("x").IsZero())
	assert.Equal(t, "x", Key("X").String())
}

func TestSameCategory(t *testing.T) {
	one, otherOne, two := 1, 1, 2
	assert.True(t, SameCategory(nil, nil))
	assert.True(t, SameCategory(&one, &otherOne))
	assert.False(t, SameCategory(&one, &two))
	assert.False(t, SameCategory(&one, nil))
	assert.False(t, SameCategory(nil, &two))
	assert.Equal(t, "none", FormatCategoryID(nil))
	assert.Equal(t, "2", FormatCategoryID(&two))
}
