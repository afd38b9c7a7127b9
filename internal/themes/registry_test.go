// internal/themes/registry_test.go
package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetKnownTheme(t *testing.T) {
	theme := Get("rosa")

	assert.Equal(t, "rosa", theme.ID)
	assert.Equal(t, "#ec4899", theme.ButtonBg)
}

func TestGetFallsBackToLight(t *testing.T) {
	assert.Equal(t, DefaultID, Get("").ID)
	assert.Equal(t, DefaultID, Get("neon").ID)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("cyber"))
	assert.False(t, Known("CYBER"))
	assert.False(t, Known(""))
}

func TestIDsCoversRegistry(t *testing.T) {
	ids := IDs()

	assert.Len(t, ids, 5)
	for _, id := range ids {
		assert.True(t, Known(id))
	}
}

func TestIDsOrderIsStable(t *testing.T) {
	assert.Equal(t, []string{"light", "dark", "cyber", "rosa", "saude"}, IDs())
	assert.Equal(t, IDs(), IDs())
}

func TestIDFromBackgroundExactMatch(t *testing.T) {
	assert.Equal(t, "dark", IDFromBackground("#0b1120"))
	assert.Equal(t, "saude", IDFromBackground("linear-gradient(135deg, #d4fc79 0%, #96e6a1 100%)"))
}

func TestIDFromBackgroundGradientPrefix(t *testing.T) {
	// Stored variant with an extra stop still resolves by prefix.
	legacy := "linear-gradient(135deg, #ffdee9 0%, #fbc2eb 50%, #ffffff 100%)"
	assert.Equal(t, "rosa", IDFromBackground(legacy))
}

func TestIDFromBackgroundUnknownFallsBack(t *testing.T) {
	assert.Equal(t, DefaultID, IDFromBackground(""))
	assert.Equal(t, DefaultID, IDFromBackground("#123456"))
	assert.Equal(t, DefaultID, IDFromBackground("linear-gradient(90deg, #000 0%, #fff 100%)"))
}
