// internal/models/page.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Page is the richer editor schema: an ordered list of typed components.
type Page struct {
	BaseModel
	UserID   uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Slug     string         `json:"slug" gorm:"uniqueIndex;size:60;not null"`
	Title    string         `json:"title" gorm:"size:120"`
	Theme    string         `json:"theme" gorm:"size:20;default:'light'"`
	Keywords pq.StringArray `json:"keywords" gorm:"type:text[]"`
	IsActive bool           `json:"is_active" gorm:"default:true"`

	Components []PageComponent `json:"components,omitempty" gorm:"foreignKey:PageID"`
}

// PageComponent carries a type tag and a config payload whose shape is
// determined by the tag. OrderIndex values are kept dense per page.
type PageComponent struct {
	BaseModel
	PageID     uuid.UUID     `json:"page_id" gorm:"type:uuid;not null;index"`
	Type       ComponentType `json:"type" gorm:"type:varchar(20);not null"`
	Config     JSONB         `json:"config" gorm:"type:jsonb"`
	OrderIndex int           `json:"order_index" gorm:"not null;default:0"`
	IsVisible  bool          `json:"is_visible" gorm:"default:true"`
}

// Typed component configs, one per tag.

type LinkConfig struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Icon  string `json:"icon,omitempty"`
}

type TextConfig struct {
	Content string `json:"content" validate:"required"`
	Align   string `json:"align,omitempty" validate:"omitempty,oneof=left center right"`
}

type ProductComponentConfig struct {
	ProductID string `json:"product_id" validate:"required"`
	ShowPrice bool   `json:"show_price"`
}

type VideoConfig struct {
	Provider string `json:"provider" validate:"required,oneof=youtube vimeo"`
	URL      string `json:"url" validate:"required,url"`
	Autoplay bool   `json:"autoplay"`
}

type SocialConfig struct {
	Network string `json:"network" validate:"required,oneof=instagram tiktok youtube x facebook linkedin"`
	Handle  string `json:"handle" validate:"required"`
	URL     string `json:"url,omitempty" validate:"omitempty,url"`
}

type ButtonConfig struct {
	Label string `json:"label" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Style string `json:"style,omitempty" validate:"omitempty,oneof=solid outline ghost"`
}

// DecodeComponentConfig checks that a raw config payload matches its type tag
// and returns the typed value. The switch is exhaustive over ComponentType.
func DecodeComponentConfig(componentType ComponentType, config JSONB) (interface{}, error) {
	raw, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode component config: %w", err)
	}

	strict := func(target interface{}) error {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		return dec.Decode(target)
	}

	switch componentType {
	case ComponentTypeLink:
		var c LinkConfig
		if err := strict(&c); err != nil {
			return nil, fmt.Errorf("config does not match component type %q: %w", componentType, err)
		}
		return &c, nil
	case ComponentTypeText:
		var c TextConfig
		if err := strict(&c); err != nil {
			return nil, fmt.Errorf("config does not match component type %q: %w", componentType, err)
		}
		return &c, nil
	case ComponentTypeProduct:
		var c ProductComponentConfig
		if err := strict(&c); err != nil {
			return nil, fmt.Errorf("config does not match component type %q: %w", componentType, err)
		}
		return &c, nil
	case ComponentTypeVideo:
		var c VideoConfig
		if err := strict(&c); err != nil {
			return nil, fmt.Errorf("config does not match component type %q: %w", componentType, err)
		}
		return &c, nil
	case ComponentTypeSocial:
		var c SocialConfig
		if err := strict(&c); err != nil {
			return nil, fmt.Errorf("config does not match component type %q: %w", componentType, err)
		}
		return &c, nil
	case ComponentTypeButton:
		var c ButtonConfig
		if err := strict(&c); err != nil {
			return nil, fmt.Errorf("config does not match component type %q: %w", componentType, err)
		}
		return &c, nil
	default:
		return nil, fmt.Errorf("unknown component type %q", componentType)
	}
}

// ResequenceComponents sorts by order index and reassigns dense indexes
// starting at zero. Call after deletes and reorders.
func ResequenceComponents(components []PageComponent) []PageComponent {
	sort.SliceStable(components, func(i, j int) bool {
		return components[i].OrderIndex < components[j].OrderIndex
	})
	for i := range components {
		components[i].OrderIndex = i
	}
	return components
}
