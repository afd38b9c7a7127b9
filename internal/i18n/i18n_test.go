// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslationLookup(t *testing.T) {
	assert.NoError(t, Initialize("./locales"))

	assert.NotEqual(t, KeyAuthLoginSuccess, T("en", KeyAuthLoginSuccess))
	assert.NotEqual(t, KeyAuthLoginSuccess, T("pt_BR", KeyAuthLoginSuccess))
	assert.NotEqual(t, T("en", KeyAuthLoginSuccess), T("pt_BR", KeyAuthLoginSuccess))
}

func TestTranslationFallsBackToEnglish(t *testing.T) {
	assert.NoError(t, Initialize("./locales"))

	// Unknown language falls back to the default.
	assert.Equal(t, T("en", KeyStorefrontSaved), T("fr", KeyStorefrontSaved))
}

func TestUnknownKeyReturnsKey(t *testing.T) {
	assert.NoError(t, Initialize("./locales"))

	assert.Equal(t, "nope.missing", T("en", "nope.missing"))
}
