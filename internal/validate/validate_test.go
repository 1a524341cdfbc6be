package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNIT(t *testing.T) {
	valid := []string{"123-4", "1-K", "987654321-0"}
	for _, c := range valid {
		assert.True(t, NIT(c), "expected %q to be valid", c)
	}

	invalid := []string{"", "123", "123-", "-4", "123-45", "123-k", "12a-4", "123 -4"}
	for _, c := range invalid {
		assert.False(t, NIT(c), "expected %q to be invalid", c)
	}
}

func TestDate(t *testing.T) {
	assert.True(t, Date("10/01/2024"))
	assert.True(t, Date("10/01/2024 22:15"))
	assert.False(t, Date("2024-01-10"))
	assert.False(t, Date("31/02/2024"))
}

func TestPositiveNumber(t *testing.T) {
	assert.True(t, PositiveNumber("3"))
	assert.True(t, PositiveNumber("0.5"))
	assert.False(t, PositiveNumber("0"))
	assert.False(t, PositiveNumber("-1"))
	assert.False(t, PositiveNumber("tres"))
	assert.False(t, PositiveNumber(""))
}
