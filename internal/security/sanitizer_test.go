package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Beach day", SanitizeString("  Beach day  "))
	assert.Equal(t, "abc", SanitizeString("a\x00b\x00c"))
	assert.Len(t, SanitizeString(strings.Repeat("x", 2000)), 1000)
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Dinner", SanitizeHTML("<b>Dinner</b>"))
	assert.Equal(t, "", SanitizeHTML("<script>alert(1)</script>"))
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Museum visit", SanitizeText("  <i>Museum visit</i> "))
}

func TestValidatePhoneNumber(t *testing.T) {
	t.Parallel()
	assert.True(t, ValidatePhoneNumber("555-123-4567 89"))
	assert.True(t, ValidatePhoneNumber("+15551234567"))
	assert.False(t, ValidatePhoneNumber("12345"))
	assert.False(t, ValidatePhoneNumber("phone"))
}
