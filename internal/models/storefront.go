// internal/models/storefront.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Storefront is the root aggregate for one creator's public page: profile,
// contact channel, global discount and the ordered product catalog. Products
// are stored as a single JSONB document, the way the page editor consumes them.
type Storefront struct {
	BaseModel
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	Username string    `json:"username" gorm:"uniqueIndex;size:30;not null"`

	ProfileName           string `json:"profile_name" gorm:"size:100"`
	ProfileBio            string `json:"profile_bio" gorm:"type:text"`
	ProfileImage          string `json:"profile_image" gorm:"size:500"`
	ProfileImageScale     int    `json:"profile_image_scale" gorm:"default:100"`
	ProfileImagePositionX int    `json:"profile_image_position_x" gorm:"default:50"`
	ProfileImagePositionY int    `json:"profile_image_position_y" gorm:"default:50"`

	WhatsappNumber  string `json:"whatsapp_number" gorm:"size:20"`
	WhatsappMessage string `json:"whatsapp_message" gorm:"size:500"`

	CouponCode      string `json:"coupon_code" gorm:"size:50"`
	DiscountPercent int    `json:"discount_percent" gorm:"default:0"`

	Theme string `json:"theme" gorm:"size:20;default:'light'"`

	// Embeddable widgets
	PixKey      string `json:"pix_key" gorm:"size:140"`
	BookingURL  string `json:"booking_url" gorm:"size:500"`
	MapEmbedURL string `json:"map_embed_url" gorm:"size:500"`

	Products ProductList `json:"products" gorm:"type:jsonb"`

	IsActive bool `json:"is_active" gorm:"default:true"`
}

type Product struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Image           string       `json:"image"`
	ImageScale      int          `json:"image_scale"`
	ImagePositionX  int          `json:"image_position_x"`
	ImagePositionY  int          `json:"image_position_y"`
	DiscountPercent int          `json:"discount_percent"`
	Kits            []ProductKit `json:"kits"`
}

type ProductKit struct {
	ID             string            `json:"id"`
	Label          string            `json:"label"`
	Price          float64           `json:"price"`
	Link           string            `json:"link"`
	DiscountLinks  map[string]string `json:"discount_links,omitempty"`
	IsVisible      *bool             `json:"is_visible,omitempty"`
	IsSpecial      bool              `json:"is_special,omitempty"`
	IgnoreDiscount bool              `json:"ignore_discount,omitempty"`
}

// ProductList stores the ordered product sequence as a JSONB column.
type ProductList []Product

func (p ProductList) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal(ProductList{})
	}
	return json.Marshal(p)
}

func (p *ProductList) Scan(value interface{}) error {
	if value == nil {
		*p = ProductList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported products column type %T", value)
	}

	return json.Unmarshal(bytes, p)
}

// Normalize brings a stored record back to the current shape. Older records
// may omit discount_percent or kit maps entirely; every product must carry an
// explicit discount after load.
func (s *Storefront) Normalize() {
	s.ProfileImageScale = clamp(s.ProfileImageScale, 100, 200)
	s.ProfileImagePositionX = clamp(s.ProfileImagePositionX, 0, 100)
	s.ProfileImagePositionY = clamp(s.ProfileImagePositionY, 0, 100)
	s.DiscountPercent = clamp(s.DiscountPercent, 0, 100)
	if s.Theme == "" {
		s.Theme = "light"
	}
	s.Products = NormalizeProducts(s.Products)
}

func NormalizeProducts(products ProductList) ProductList {
	if products == nil {
		return ProductList{}
	}
	for i := range products {
		p := &products[i]
		p.DiscountPercent = clamp(p.DiscountPercent, 0, 100)
		if p.Kits == nil {
			p.Kits = []ProductKit{}
		}
		for j := range p.Kits {
			k := &p.Kits[j]
			if k.Price < 0 {
				k.Price = 0
			}
			if k.DiscountLinks == nil {
				k.DiscountLinks = map[string]string{}
			}
			if k.IsVisible == nil {
				visible := true
				k.IsVisible = &visible
			}
		}
	}
	return products
}

// ActiveDiscount nets the per-product override against the storefront-level
// discount: a non-zero product discount wins.
func (p *Product) ActiveDiscount(storefrontDiscount int) int {
	if p.DiscountPercent > 0 {
		return p.DiscountPercent
	}
	return storefrontDiscount
}

// CheckoutLink selects the checkout URL for the active discount percentage.
// A discount-specific link takes precedence over the plain one; kits that
// ignore discounts always use the plain link.
func (k *ProductKit) CheckoutLink(activeDiscount int) string {
	if k.IgnoreDiscount || activeDiscount <= 0 {
		return k.Link
	}
	if link, ok := k.DiscountLinks[strconv.Itoa(activeDiscount)]; ok && link != "" {
		return link
	}
	return k.Link
}

// FinalPrice applies the active discount percentage to the kit price.
func (k *ProductKit) FinalPrice(activeDiscount int) float64 {
	if k.IgnoreDiscount || activeDiscount <= 0 {
		return k.Price
	}
	return k.Price * float64(100-activeDiscount) / 100
}

// WhatsAppLink combines number and message into a wa.me deep link.
// Returns empty when no number is configured.
func (s *Storefront) WhatsAppLink() string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s.WhatsappNumber)
	if digits == "" {
		return ""
	}
	link := "https://wa.me/" + digits
	if s.WhatsappMessage != "" {
		link += "?text=" + url.QueryEscape(s.WhatsappMessage)
	}
	return link
}

// StorefrontPatch is a shallow partial update of the aggregate's top level.
// Nil fields are left untouched; last write wins on overlapping keys.
type StorefrontPatch struct {
	ProfileName           *string      `json:"profile_name,omitempty"`
	ProfileBio            *string      `json:"profile_bio,omitempty"`
	ProfileImage          *string      `json:"profile_image,omitempty"`
	ProfileImageScale     *int         `json:"profile_image_scale,omitempty"`
	ProfileImagePositionX *int         `json:"profile_image_position_x,omitempty"`
	ProfileImagePositionY *int         `json:"profile_image_position_y,omitempty"`
	WhatsappNumber        *string      `json:"whatsapp_number,omitempty"`
	WhatsappMessage       *string      `json:"whatsapp_message,omitempty"`
	CouponCode            *string      `json:"coupon_code,omitempty"`
	DiscountPercent       *int         `json:"discount_percent,omitempty"`
	Theme                 *string      `json:"theme,omitempty" validate:"omitempty,theme"`
	PixKey                *string      `json:"pix_key,omitempty"`
	BookingURL            *string      `json:"booking_url,omitempty"`
	MapEmbedURL           *string      `json:"map_embed_url,omitempty"`
	Products              *ProductList `json:"products,omitempty"`
	IsActive              *bool        `json:"is_active,omitempty"`
}

func (s *Storefront) ApplyPatch(patch StorefrontPatch) {
	if patch.ProfileName != nil {
		s.ProfileName = *patch.ProfileName
	}
	if patch.ProfileBio != nil {
		s.ProfileBio = *patch.ProfileBio
	}
	if patch.ProfileImage != nil {
		s.ProfileImage = *patch.ProfileImage
	}
	if patch.ProfileImageScale != nil {
		s.ProfileImageScale = clamp(*patch.ProfileImageScale, 100, 200)
	}
	if patch.ProfileImagePositionX != nil {
		s.ProfileImagePositionX = clamp(*patch.ProfileImagePositionX, 0, 100)
	}
	if patch.ProfileImagePositionY != nil {
		s.ProfileImagePositionY = clamp(*patch.ProfileImagePositionY, 0, 100)
	}
	if patch.WhatsappNumber != nil {
		s.WhatsappNumber = *patch.WhatsappNumber
	}
	if patch.WhatsappMessage != nil {
		s.WhatsappMessage = *patch.WhatsappMessage
	}
	if patch.CouponCode != nil {
		s.CouponCode = *patch.CouponCode
	}
	if patch.DiscountPercent != nil {
		s.DiscountPercent = clamp(*patch.DiscountPercent, 0, 100)
	}
	if patch.Theme != nil {
		s.Theme = *patch.Theme
	}
	if patch.PixKey != nil {
		s.PixKey = *patch.PixKey
	}
	if patch.BookingURL != nil {
		s.BookingURL = *patch.BookingURL
	}
	if patch.MapEmbedURL != nil {
		s.MapEmbedURL = *patch.MapEmbedURL
	}
	if patch.Products != nil {
		s.Products = NormalizeProducts(*patch.Products)
	}
	if patch.IsActive != nil {
		s.IsActive = *patch.IsActive
	}
}

type ProductPatch struct {
	Title           *string       `json:"title,omitempty"`
	Description     *string       `json:"description,omitempty"`
	Image           *string       `json:"image,omitempty"`
	ImageScale      *int          `json:"image_scale,omitempty"`
	ImagePositionX  *int          `json:"image_position_x,omitempty"`
	ImagePositionY  *int          `json:"image_position_y,omitempty"`
	DiscountPercent *int          `json:"discount_percent,omitempty"`
	Kits            *[]ProductKit `json:"kits,omitempty"`
}

func (p *Product) ApplyPatch(patch ProductPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.ImageScale != nil {
		p.ImageScale = *patch.ImageScale
	}
	if patch.ImagePositionX != nil {
		p.ImagePositionX = *patch.ImagePositionX
	}
	if patch.ImagePositionY != nil {
		p.ImagePositionY = *patch.ImagePositionY
	}
	if patch.DiscountPercent != nil {
		p.DiscountPercent = clamp(*patch.DiscountPercent, 0, 100)
	}
	if patch.Kits != nil {
		p.Kits = *patch.Kits
	}
}

type KitPatch struct {
	Label          *string            `json:"label,omitempty"`
	Price          *float64           `json:"price,omitempty"`
	Link           *string            `json:"link,omitempty"`
	DiscountLinks  *map[string]string `json:"discount_links,omitempty"`
	IsVisible      *bool              `json:"is_visible,omitempty"`
	IsSpecial      *bool              `json:"is_special,omitempty"`
	IgnoreDiscount *bool              `json:"ignore_discount,omitempty"`
}

func (k *ProductKit) ApplyPatch(patch KitPatch) {
	if patch.Label != nil {
		k.Label = *patch.Label
	}
	if patch.Price != nil {
		k.Price = *patch.Price
		if k.Price < 0 {
			k.Price = 0
		}
	}
	if patch.Link != nil {
		k.Link = *patch.Link
	}
	if patch.DiscountLinks != nil {
		k.DiscountLinks = *patch.DiscountLinks
	}
	if patch.IsVisible != nil {
		k.IsVisible = patch.IsVisible
	}
	if patch.IsSpecial != nil {
		k.IsSpecial = *patch.IsSpecial
	}
	if patch.IgnoreDiscount != nil {
		k.IgnoreDiscount = *patch.IgnoreDiscount
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
