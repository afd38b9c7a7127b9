// internal/services/page_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lojinha/lojinha-backend/internal/models"
	"github.com/lojinha/lojinha-backend/internal/themes"
	"github.com/lojinha/lojinha-backend/internal/utils"
)

var (
	ErrPageNotFound      = errors.New("page not found")
	ErrComponentNotFound = errors.New("component not found")
)

// PageService manages the richer editor schema: pages owning ordered, typed
// components. Component config payloads are validated against their type tag
// before they touch the database, and order_index values are kept dense.
type PageService struct {
	db *gorm.DB
}

type CreatePageRequest struct {
	Slug     string   `json:"slug" validate:"required,username"`
	Title    string   `json:"title" validate:"required,max=120"`
	Theme    string   `json:"theme,omitempty" validate:"omitempty,theme"`
	Keywords []string `json:"keywords,omitempty"`
}

type UpdatePageRequest struct {
	Title    *string   `json:"title,omitempty" validate:"omitempty,max=120"`
	Theme    *string   `json:"theme,omitempty" validate:"omitempty,theme"`
	Keywords *[]string `json:"keywords,omitempty"`
	IsActive *bool     `json:"is_active,omitempty"`
}

type AddComponentRequest struct {
	Type      models.ComponentType   `json:"type" validate:"required"`
	Config    map[string]interface{} `json:"config" validate:"required"`
	IsVisible *bool                  `json:"is_visible,omitempty"`
}

type UpdateComponentRequest struct {
	Config    map[string]interface{} `json:"config,omitempty"`
	IsVisible *bool                  `json:"is_visible,omitempty"`
}

func NewPageService(db *gorm.DB) *PageService {
	return &PageService{db: db}
}

func (s *PageService) CreatePage(userID uuid.UUID, req *CreatePageRequest) (*models.Page, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.Page
	if err := s.db.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		return nil, errors.New("slug already taken")
	}

	theme := req.Theme
	if theme == "" {
		theme = themes.DefaultID
	}

	page := &models.Page{
		UserID:   userID,
		Slug:     req.Slug,
		Title:    req.Title,
		Theme:    theme,
		Keywords: req.Keywords,
		IsActive: true,
	}
	if err := s.db.Create(page).Error; err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return page, nil
}

func (s *PageService) GetPage(userID, pageID uuid.UUID) (*models.Page, error) {
	return s.ownedPage(userID, pageID)
}

func (s *PageService) ListPages(userID uuid.UUID) ([]models.Page, error) {
	var pages []models.Page
	if err := s.db.Where("user_id = ?", userID).Order("created_at asc").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

func (s *PageService) UpdatePage(userID, pageID uuid.UUID, req *UpdatePageRequest) (*models.Page, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	page, err := s.ownedPage(userID, pageID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Theme != nil {
		page.Theme = *req.Theme
	}
	if req.Keywords != nil {
		page.Keywords = *req.Keywords
	}
	if req.IsActive != nil {
		page.IsActive = *req.IsActive
	}

	if err := s.db.Save(page).Error; err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}
	return page, nil
}

// ListComponents returns a page's components in render order.
func (s *PageService) ListComponents(userID, pageID uuid.UUID) ([]models.PageComponent, error) {
	if _, err := s.ownedPage(userID, pageID); err != nil {
		return nil, err
	}

	var components []models.PageComponent
	if err := s.db.Where("page_id = ?", pageID).Order("order_index asc").Find(&components).Error; err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	return components, nil
}

// AddComponent validates the config against the type tag and appends the
// component at the tail of the render order.
func (s *PageService) AddComponent(userID, pageID uuid.UUID, req *AddComponentRequest) (*models.PageComponent, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.ownedPage(userID, pageID); err != nil {
		return nil, err
	}

	decoded, err := models.DecodeComponentConfig(req.Type, models.JSONB(req.Config))
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(decoded); err != nil {
		return nil, fmt.Errorf("config does not match component type %q: %w", req.Type, err)
	}

	var maxIndex int
	s.db.Model(&models.PageComponent{}).
		Where("page_id = ?", pageID).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxIndex)

	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	component := &models.PageComponent{
		PageID:     pageID,
		Type:       req.Type,
		Config:     models.JSONB(req.Config),
		OrderIndex: maxIndex + 1,
		IsVisible:  visible,
	}
	if err := s.db.Create(component).Error; err != nil {
		return nil, fmt.Errorf("failed to create component: %w", err)
	}
	return component, nil
}

// UpdateComponent merges a partial update into one component. A replacement
// config is re-validated against the component's existing type tag.
func (s *PageService) UpdateComponent(userID, pageID, componentID uuid.UUID, req *UpdateComponentRequest) (*models.PageComponent, error) {
	if _, err := s.ownedPage(userID, pageID); err != nil {
		return nil, err
	}

	component, err := s.pageComponent(pageID, componentID)
	if err != nil {
		return nil, err
	}

	if req.Config != nil {
		decoded, err := models.DecodeComponentConfig(component.Type, models.JSONB(req.Config))
		if err != nil {
			return nil, err
		}
		if err := utils.ValidateStruct(decoded); err != nil {
			return nil, fmt.Errorf("config does not match component type %q: %w", component.Type, err)
		}
		component.Config = models.JSONB(req.Config)
	}
	if req.IsVisible != nil {
		component.IsVisible = *req.IsVisible
	}

	if err := s.db.Save(component).Error; err != nil {
		return nil, fmt.Errorf("failed to update component: %w", err)
	}
	return component, nil
}

// DeleteComponent removes one component and resequences the remainder so
// order_index values stay dense.
func (s *PageService) DeleteComponent(userID, pageID, componentID uuid.UUID) error {
	if _, err := s.ownedPage(userID, pageID); err != nil {
		return err
	}

	component, err := s.pageComponent(pageID, componentID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(component).Error; err != nil {
			return fmt.Errorf("failed to delete component: %w", err)
		}
		return s.resequence(tx, pageID)
	})
}

// ReorderComponents applies a full explicit ordering. Every component of the
// page must appear exactly once; indexes are reassigned densely from zero.
func (s *PageService) ReorderComponents(userID, pageID uuid.UUID, orderedIDs []uuid.UUID) ([]models.PageComponent, error) {
	if _, err := s.ownedPage(userID, pageID); err != nil {
		return nil, err
	}

	var components []models.PageComponent
	if err := s.db.Where("page_id = ?", pageID).Find(&components).Error; err != nil {
		return nil, fmt.Errorf("failed to load components: %w", err)
	}

	if err := validateReorder(components, orderedIDs); err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.PageComponent, len(components))
	for i := range components {
		byID[components[i].ID] = &components[i]
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for index, id := range orderedIDs {
			if err := tx.Model(byID[id]).Update("order_index", index).Error; err != nil {
				return fmt.Errorf("failed to reorder component: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.ListComponents(userID, pageID)
}

// validateReorder checks that orderedIDs names every component of the page
// exactly once. A duplicated id would otherwise pass the length check while
// leaving another component's index stale.
func validateReorder(components []models.PageComponent, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) != len(components) {
		return fmt.Errorf("reorder must list all %d components", len(components))
	}
	known := make(map[uuid.UUID]bool, len(components))
	for i := range components {
		known[components[i].ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] {
			return fmt.Errorf("component %s does not belong to this page", id)
		}
		if seen[id] {
			return fmt.Errorf("component %s listed more than once", id)
		}
		seen[id] = true
	}
	return nil
}

func (s *PageService) ownedPage(userID, pageID uuid.UUID) (*models.Page, error) {
	var page models.Page
	if err := s.db.Where("id = ? AND user_id = ?", pageID, userID).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &page, nil
}

func (s *PageService) pageComponent(pageID, componentID uuid.UUID) (*models.PageComponent, error) {
	var component models.PageComponent
	if err := s.db.Where("id = ? AND page_id = ?", componentID, pageID).First(&component).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &component, nil
}

func (s *PageService) resequence(tx *gorm.DB, pageID uuid.UUID) error {
	var components []models.PageComponent
	if err := tx.Where("page_id = ?", pageID).Order("order_index asc").Find(&components).Error; err != nil {
		return fmt.Errorf("failed to load components for resequencing: %w", err)
	}

	components = models.ResequenceComponents(components)
	for i := range components {
		if err := tx.Model(&components[i]).Update("order_index", components[i].OrderIndex).Error; err != nil {
			return fmt.Errorf("failed to resequence component: %w", err)
		}
	}
	return nil
}
