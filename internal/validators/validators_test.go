package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@salon.com", NormalizeEmail("  Ana@Salon.COM "))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana@salon.com"))
	assert.False(t, IsEmail("ana@salon"))
	assert.False(t, IsEmail("Ana <ana@salon.com>"))
	assert.False(t, IsEmail("not-an-email"))
	assert.False(t, IsEmail(""))
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	assert.False(t, IsEmailDomainValid("no-at-sign"))
	assert.False(t, IsEmailDomainValid("trailing@"))
}

func TestBlank(t *testing.T) {
	assert.False(t, Blank("a", "b"))
	assert.True(t, Blank("a", "   "))
	assert.True(t, Blank(""))
	assert.False(t, Blank())
}

func TestIsStrongPassword(t *testing.T) {
	assert.False(t, IsStrongPassword("12345"))
	assert.True(t, IsStrongPassword("123456"))
}
