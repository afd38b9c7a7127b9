// internal/services/public_view_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lojinha/lojinha-backend/internal/models"
)

func TestResolvePublicNetsDiscounts(t *testing.T) {
	hidden := false
	storefront := &models.Storefront{
		Username:        "maria",
		ProfileName:     "Maria",
		WhatsappNumber:  "5511999990000",
		DiscountPercent: 10,
		Theme:           "rosa",
		Products: models.ProductList{
			{
				ID:              "p1",
				Title:           "Brigadeiro",
				DiscountPercent: 20,
				Kits: []models.ProductKit{
					{
						ID:    "k1",
						Label: "6 unidades",
						Price: 20,
						Link:  "https://pay.example.com/k1",
						DiscountLinks: map[string]string{
							"20": "https://pay.example.com/k1-20",
						},
					},
					{
						ID:        "k2",
						Label:     "Oculto",
						Price:     50,
						Link:      "https://pay.example.com/k2",
						IsVisible: &hidden,
					},
				},
			},
			{
				ID:    "p2",
				Title: "Bolo",
				Kits: []models.ProductKit{
					{ID: "k3", Label: "1 unidade", Price: 100, Link: "https://pay.example.com/k3", IgnoreDiscount: true},
				},
			},
		},
	}

	view := ResolvePublic(storefront)

	assert.Equal(t, "maria", view.Username)
	assert.Equal(t, "rosa", view.Theme.ID)
	assert.Equal(t, "https://wa.me/5511999990000", view.WhatsappLink)

	// Product override beats the storefront discount.
	p1 := view.Products[0]
	assert.Equal(t, 20, p1.DiscountPercent)
	assert.Len(t, p1.Kits, 1, "hidden kits are dropped")
	assert.Equal(t, float64(16), p1.Kits[0].FinalPrice)
	assert.Equal(t, "https://pay.example.com/k1-20", p1.Kits[0].CheckoutLink)

	// Discount-exempt kit keeps its full price and plain link.
	p2 := view.Products[1]
	assert.Equal(t, 10, p2.DiscountPercent)
	assert.Equal(t, float64(100), p2.Kits[0].FinalPrice)
	assert.Equal(t, "https://pay.example.com/k3", p2.Kits[0].CheckoutLink)
}

func TestResolvePublicFallsBackToLightTheme(t *testing.T) {
	view := ResolvePublic(&models.Storefront{Username: "joao", Theme: "neon"})

	assert.Equal(t, "light", view.Theme.ID)
	assert.Empty(t, view.Products)
	assert.Empty(t, view.WhatsappLink)
}
