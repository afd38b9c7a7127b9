// internal/services/public_view.go
package services

import (
	"github.com/lojinha/lojinha-backend/internal/models"
	"github.com/lojinha/lojinha-backend/internal/themes"
)

// PublicStorefront is the resolved, render-ready view of a storefront:
// discounts netted per product, checkout links selected per kit, theme tokens
// attached and the WhatsApp deep link built.
type PublicStorefront struct {
	Username              string          `json:"username"`
	ProfileName           string          `json:"profile_name"`
	ProfileBio            string          `json:"profile_bio"`
	ProfileImage          string          `json:"profile_image"`
	ProfileImageScale     int             `json:"profile_image_scale"`
	ProfileImagePositionX int             `json:"profile_image_position_x"`
	ProfileImagePositionY int             `json:"profile_image_position_y"`
	WhatsappLink          string          `json:"whatsapp_link,omitempty"`
	CouponCode            string          `json:"coupon_code,omitempty"`
	Theme                 themes.Theme    `json:"theme"`
	PixKey                string          `json:"pix_key,omitempty"`
	BookingURL            string          `json:"booking_url,omitempty"`
	MapEmbedURL           string          `json:"map_embed_url,omitempty"`
	Products              []PublicProduct `json:"products"`
}

type PublicProduct struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Image           string      `json:"image"`
	ImageScale      int         `json:"image_scale"`
	ImagePositionX  int         `json:"image_position_x"`
	ImagePositionY  int         `json:"image_position_y"`
	DiscountPercent int         `json:"discount_percent"`
	Kits            []PublicKit `json:"kits"`
}

type PublicKit struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Price        float64 `json:"price"`
	FinalPrice   float64 `json:"final_price"`
	CheckoutLink string  `json:"checkout_link"`
	IsSpecial    bool    `json:"is_special"`
}

// ResolvePublic flattens the aggregate into its public rendering. Hidden kits
// are dropped; the active discount per product nets the per-product override
// against the storefront-level discount.
func ResolvePublic(storefront *models.Storefront) *PublicStorefront {
	view := &PublicStorefront{
		Username:              storefront.Username,
		ProfileName:           storefront.ProfileName,
		ProfileBio:            storefront.ProfileBio,
		ProfileImage:          storefront.ProfileImage,
		ProfileImageScale:     storefront.ProfileImageScale,
		ProfileImagePositionX: storefront.ProfileImagePositionX,
		ProfileImagePositionY: storefront.ProfileImagePositionY,
		WhatsappLink:          storefront.WhatsAppLink(),
		CouponCode:            storefront.CouponCode,
		Theme:                 themes.Get(storefront.Theme),
		PixKey:                storefront.PixKey,
		BookingURL:            storefront.BookingURL,
		MapEmbedURL:           storefront.MapEmbedURL,
		Products:              make([]PublicProduct, 0, len(storefront.Products)),
	}

	for _, product := range storefront.Products {
		active := product.ActiveDiscount(storefront.DiscountPercent)
		publicProduct := PublicProduct{
			ID:              product.ID,
			Title:           product.Title,
			Description:     product.Description,
			Image:           product.Image,
			ImageScale:      product.ImageScale,
			ImagePositionX:  product.ImagePositionX,
			ImagePositionY:  product.ImagePositionY,
			DiscountPercent: active,
			Kits:            make([]PublicKit, 0, len(product.Kits)),
		}

		for _, kit := range product.Kits {
			if kit.IsVisible != nil && !*kit.IsVisible {
				continue
			}
			publicProduct.Kits = append(publicProduct.Kits, PublicKit{
				ID:           kit.ID,
				Label:        kit.Label,
				Price:        kit.Price,
				FinalPrice:   kit.FinalPrice(active),
				CheckoutLink: kit.CheckoutLink(active),
				IsSpecial:    kit.IsSpecial,
			})
		}

		view.Products = append(view.Products, publicProduct)
	}

	return view
}
