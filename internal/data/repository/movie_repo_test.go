package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "inception", "inception"},
		{"percent escaped", "100%", `100\%`},
		{"underscore escaped", "snake_case", `snake\_case`},
		{"backslash escaped first", `C:\movies`, `C:\\movies`},
		{"mixed metacharacters", `10%_\`, `10\%\_\\`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, escapeLike(tc.input))
		})
	}
}
