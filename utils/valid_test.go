package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Boss@Palace.FR ")
	assert.NoError(t, err)
	assert.Equal(t, "boss@palace.fr", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)

	_, err = SanitizeEmail("")
	assert.Error(t, err)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Jean Dupont", SanitizeInput("  Jean Dupont\n"))
	assert.NotContains(t, SanitizeInput("<script>alert(1)</script>"), "<script>")
}
