package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Kavindu Perera", "kavindu perera"},
		{"  Kavindu   Perera  ", "kavindu perera"},
		{"KAVINDU\tPERERA", "kavindu perera"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestParseAuthor(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Author
	}{
		{
			name:     "Name and email",
			raw:      "Kavindu Perera <Kavindu.P@x.com>",
			expected: Author{DisplayName: "kavindu perera", Email: "kavindu.p@x.com", Username: "kavindu.p"},
		},
		{
			name:     "Name only",
			raw:      "Kavindu Perera",
			expected: Author{DisplayName: "kavindu perera"},
		},
		{
			name:     "Email only",
			raw:      "<kp@x.com>",
			expected: Author{Email: "kp@x.com", Username: "kp"},
		},
		{
			name:     "Email without domain",
			raw:      "Kavindu <kavindu>",
			expected: Author{DisplayName: "kavindu", Email: "kavindu", Username: "kavindu"},
		},
		{
			name:     "Unclosed email keeps the name only",
			raw:      "Kavindu <kp@x.com",
			expected: Author{DisplayName: "kavindu"},
		},
		{
			name:     "Empty",
			raw:      "",
			expected: Author{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAuthor(tt.raw))
		})
	}
}

func TestFirstToken(t *testing.T) {
	assert.Equal(t, "kavindu", FirstToken("kavindu perera"))
	assert.Equal(t, "k.", FirstToken("k. perera"))
	assert.Equal(t, "", FirstToken(""))
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "John Smith", DisplayLabel("John  Smith <john@x.com>"))
	assert.Equal(t, "<john@x.com>", DisplayLabel("<john@x.com>"))
	assert.Equal(t, "jsmith", DisplayLabel("jsmith"))
	assert.Equal(t, "Unknown", DisplayLabel("   "))
}
