// internal/models/storefront_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool        { return &b }
func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestNormalizeFillsLegacyGaps(t *testing.T) {
	s := &Storefront{
		ProfileImageScale:     340,
		ProfileImagePositionX: -10,
		ProfileImagePositionY: 120,
		DiscountPercent:       150,
		Products: ProductList{
			{ID: "p1", Title: "Brigadeiros"},
		},
	}

	s.Normalize()

	assert.Equal(t, 200, s.ProfileImageScale)
	assert.Equal(t, 0, s.ProfileImagePositionX)
	assert.Equal(t, 100, s.ProfileImagePositionY)
	assert.Equal(t, 100, s.DiscountPercent)
	assert.Equal(t, "light", s.Theme)
	assert.NotNil(t, s.Products[0].Kits)
	assert.Equal(t, 0, s.Products[0].DiscountPercent)
}

func TestNormalizeProductsKitDefaults(t *testing.T) {
	products := NormalizeProducts(ProductList{
		{
			ID: "p1",
			Kits: []ProductKit{
				{ID: "k1", Price: -5},
			},
		},
	})

	kit := products[0].Kits[0]
	assert.Equal(t, float64(0), kit.Price)
	assert.NotNil(t, kit.DiscountLinks)
	if assert.NotNil(t, kit.IsVisible) {
		assert.True(t, *kit.IsVisible)
	}
}

func TestNormalizeProductsNil(t *testing.T) {
	assert.Equal(t, ProductList{}, NormalizeProducts(nil))
}

func TestActiveDiscountProductOverrideWins(t *testing.T) {
	p := &Product{DiscountPercent: 30}
	assert.Equal(t, 30, p.ActiveDiscount(10))

	p.DiscountPercent = 0
	assert.Equal(t, 10, p.ActiveDiscount(10))
}

func TestCheckoutLinkSelection(t *testing.T) {
	kit := &ProductKit{
		Link: "https://pay.example.com/a",
		DiscountLinks: map[string]string{
			"20": "https://pay.example.com/a20",
			"30": "",
		},
	}

	// Discount-specific link wins when present and non-empty.
	assert.Equal(t, "https://pay.example.com/a20", kit.CheckoutLink(20))

	// Empty mapping falls back to the plain link.
	assert.Equal(t, "https://pay.example.com/a", kit.CheckoutLink(30))

	// No mapping at all falls back too.
	assert.Equal(t, "https://pay.example.com/a", kit.CheckoutLink(40))

	// No active discount uses the plain link.
	assert.Equal(t, "https://pay.example.com/a", kit.CheckoutLink(0))
}

func TestCheckoutLinkIgnoreDiscount(t *testing.T) {
	kit := &ProductKit{
		Link:           "https://pay.example.com/full",
		IgnoreDiscount: true,
		DiscountLinks: map[string]string{
			"20": "https://pay.example.com/never",
		},
	}

	assert.Equal(t, "https://pay.example.com/full", kit.CheckoutLink(20))
}

func TestFinalPrice(t *testing.T) {
	kit := &ProductKit{Price: 100}

	assert.Equal(t, float64(100), kit.FinalPrice(0))
	assert.Equal(t, float64(80), kit.FinalPrice(20))

	kit.IgnoreDiscount = true
	assert.Equal(t, float64(100), kit.FinalPrice(20))
}

func TestWhatsAppLink(t *testing.T) {
	s := &Storefront{
		WhatsappNumber:  "+55 (11) 99999-0000",
		WhatsappMessage: "Olá! Quero saber mais",
	}

	assert.Equal(t, "https://wa.me/5511999990000?text=Ol%C3%A1%21+Quero+saber+mais", s.WhatsAppLink())
}

func TestWhatsAppLinkWithoutNumber(t *testing.T) {
	s := &Storefront{WhatsappMessage: "ignored"}
	assert.Equal(t, "", s.WhatsAppLink())
}

func TestWhatsAppLinkWithoutMessage(t *testing.T) {
	s := &Storefront{WhatsappNumber: "5511988887777"}
	assert.Equal(t, "https://wa.me/5511988887777", s.WhatsAppLink())
}

func TestStorefrontApplyPatchShallowMerge(t *testing.T) {
	s := &Storefront{
		ProfileName:     "Maria",
		ProfileBio:      "Doces",
		DiscountPercent: 10,
	}

	s.ApplyPatch(StorefrontPatch{
		ProfileBio:      strPtr("Doces artesanais"),
		DiscountPercent: intPtr(130),
	})

	assert.Equal(t, "Maria", s.ProfileName, "untouched fields survive")
	assert.Equal(t, "Doces artesanais", s.ProfileBio)
	assert.Equal(t, 100, s.DiscountPercent, "out-of-range values clamp")
}

func TestProductApplyPatch(t *testing.T) {
	p := &Product{ID: "p1", Title: "Bolo", DiscountPercent: 5}

	p.ApplyPatch(ProductPatch{
		Title: strPtr("Bolo de pote"),
		Kits:  &[]ProductKit{{ID: "k1", Label: "6 unidades", Price: 30}},
	})

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Bolo de pote", p.Title)
	assert.Equal(t, 5, p.DiscountPercent)
	assert.Len(t, p.Kits, 1)
}

func TestKitApplyPatch(t *testing.T) {
	k := &ProductKit{ID: "k1", Label: "1 unidade", Price: 10}

	k.ApplyPatch(KitPatch{
		Price:     floatPtr(-2),
		IsVisible: boolPtr(false),
	})

	assert.Equal(t, float64(0), k.Price, "negative prices floor at zero")
	if assert.NotNil(t, k.IsVisible) {
		assert.False(t, *k.IsVisible)
	}
	assert.Equal(t, "1 unidade", k.Label)
}
