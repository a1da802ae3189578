package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"Maison à Cocody.JPG", "maison-a-cocody.jpg"},
		{"appart  (2).png", "appart-2-.png"},
		{"éèçü.webp", "eecu.webp"},
		{"++--++", "file"},
		{"", "file"},
		{"UPPER_case.PNG", "upper_case.png"},
		{"trailing---.jpg", "trailing-.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}
