package sanitization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingleLine(t *testing.T) {
	tests := map[string]string{
		"  Jane  ":                 "Jane",
		"Hello\r\nBcc: x@evil.com": "Hello Bcc: x@evil.com",
		"a\t\tb":                   "a b",
		"":                         "",
		" \n ":                     "",
		"Already fine":             "Already fine",
	}

	for in, want := range tests {
		assert.Equal(t, want, SingleLine(in), "%q", in)
	}
}
