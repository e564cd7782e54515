package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Rolls":          "rolls",
		"Hot Dishes":     "hot-dishes",
		"  Sushi Sets  ": "sushi-sets",
		"Drinks & Co":    "drinks-co",
		"UPPER":          "upper",
		"a--b":           "a-b",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestToUint(t *testing.T) {
	n, err := ToUint("42")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), n)

	_, err = ToUint("abc")
	assert.Error(t, err)

	_, err = ToUint("-1")
	assert.Error(t, err)
}

func TestPtrString(t *testing.T) {
	assert.Equal(t, "", PtrString(nil))
	assert.Equal(t, "x", PtrString(StrPtr("x")))
}

func TestUserContextRoundTrip(t *testing.T) {
	ctx := SetUserContext(context.Background(), 7, "c@sushi.com", "USER")

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, "c@sushi.com", GetUserEmailFromContext(ctx))
	assert.Equal(t, "USER", GetUserRoleFromContext(ctx))

	_, ok = GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}
