// internal/services/og_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradientStops(t *testing.T) {
	stops := gradientStops("linear-gradient(135deg, #ffdee9 0%, #fbc2eb 100%)")
	assert.Equal(t, []string{"#ffdee9", "#fbc2eb"}, stops)

	assert.Nil(t, gradientStops("#ffffff"))
	assert.Nil(t, gradientStops(""))
}

func TestSvgColorRejectsCSSFunctions(t *testing.T) {
	assert.Equal(t, "#0f172a", svgColor("#0f172a"))
	assert.Equal(t, "rgba(255,255,255,0.85)", svgColor("rgba(255,255,255,0.85)"))
	assert.Equal(t, "#ffffff", svgColor("linear-gradient(135deg, #000 0%, #fff 100%)"))
}

func TestSvgColorExtractsBorderShorthandColor(t *testing.T) {
	assert.Equal(t, "#e2e8f0", svgColor("1px solid #e2e8f0"))
	assert.Equal(t, "rgba(0,255,255,0.35)", svgColor("1px solid rgba(0,255,255,0.35)"))
	assert.Equal(t, "#ffffff", svgColor("1px solid currentColor"), "shorthand without a usable color falls back")
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "curto", truncateRunes("curto", 10))
	assert.Equal(t, "açaí…", truncateRunes("açaí da maria", 5))
}

func TestProductTagline(t *testing.T) {
	assert.Equal(t, "@maria", productTagline(0, "maria"))
	assert.Equal(t, "1 produto · @maria", productTagline(1, "maria"))
	assert.Equal(t, "3 produtos · @maria", productTagline(3, "maria"))
}
