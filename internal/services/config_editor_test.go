// internal/services/config_editor_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lojinha/lojinha-backend/internal/models"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func testStorefront() *models.Storefront {
	return &models.Storefront{
		Username:        "maria",
		ProfileName:     "Maria",
		ProfileBio:      "Doces artesanais",
		DiscountPercent: 10,
		Theme:           "rosa",
		Products: models.ProductList{
			{
				ID:    "p1",
				Title: "Brigadeiro",
				Kits: []models.ProductKit{
					{ID: "k1", Label: "6 unidades", Price: 20, Link: "https://pay.example.com/k1"},
				},
			},
		},
	}
}

func TestEditorUpdateConfigShallowMerge(t *testing.T) {
	editor := NewConfigEditor(testStorefront(), nil)

	editor.UpdateConfig(models.StorefrontPatch{ProfileBio: strPtr("Bolos e doces")})

	current := editor.Current()
	assert.Equal(t, "Bolos e doces", current.ProfileBio)
	assert.Equal(t, "Maria", current.ProfileName, "untouched fields survive the merge")
	assert.True(t, editor.Dirty())
}

func TestEditorUpdateProduct(t *testing.T) {
	editor := NewConfigEditor(testStorefront(), nil)

	editor.UpdateProduct("p1", models.ProductPatch{Title: strPtr("Brigadeiro gourmet")})

	assert.Equal(t, "Brigadeiro gourmet", editor.Current().Products[0].Title)
	assert.True(t, editor.Dirty())
}

func TestEditorUnknownIDsAreStructuralNoOps(t *testing.T) {
	editor := NewConfigEditor(testStorefront(), nil)
	before := editor.Current()

	editor.UpdateProduct("ghost", models.ProductPatch{Title: strPtr("x")})
	editor.UpdateProductKit("p1", "ghost", models.KitPatch{Price: floatPtr(1)})
	editor.UpdateProductKit("ghost", "k1", models.KitPatch{Price: floatPtr(1)})
	editor.RemoveProduct("ghost")

	assert.Equal(t, before, editor.Current())
	assert.False(t, editor.Dirty())
}

func TestEditorAddAndRemoveProduct(t *testing.T) {
	editor := NewConfigEditor(testStorefront(), nil)

	editor.AddProduct(models.Product{ID: "p2", Title: "Bolo de pote"})
	current := editor.Current()
	assert.Len(t, current.Products, 2)
	assert.Equal(t, "p2", current.Products[1].ID, "new products append at the tail")
	assert.NotNil(t, current.Products[1].Kits, "appended products are normalized")

	editor.RemoveProduct("p1")
	current = editor.Current()
	assert.Len(t, current.Products, 1)
	assert.Equal(t, "p2", current.Products[0].ID)
}

func TestEditorSaveAdoptsCanonicalRecord(t *testing.T) {
	var persisted *models.Storefront
	persist := func(s *models.Storefront) (*models.Storefront, error) {
		persisted = s
		canonical := *s
		canonical.ProfileName = "Maria (normalized)"
		return &canonical, nil
	}

	editor := NewConfigEditor(testStorefront(), persist)
	editor.UpdateConfig(models.StorefrontPatch{DiscountPercent: intPtr(25)})

	assert.NoError(t, editor.Save())
	assert.NotNil(t, persisted)
	assert.Equal(t, 25, persisted.DiscountPercent)

	current := editor.Current()
	assert.Equal(t, "Maria (normalized)", current.ProfileName, "canonical response replaces local state")
	assert.False(t, editor.Dirty())
}

func TestEditorFailedSaveLeavesLocalState(t *testing.T) {
	persist := func(*models.Storefront) (*models.Storefront, error) {
		return nil, errors.New("connection refused")
	}

	editor := NewConfigEditor(testStorefront(), persist)
	editor.UpdateConfig(models.StorefrontPatch{ProfileBio: strPtr("unsaved")})

	err := editor.Save()
	assert.Error(t, err)
	assert.Equal(t, "unsaved", editor.Current().ProfileBio)
	assert.True(t, editor.Dirty(), "state stays dirty so a retry can pick it up")
}

func TestEditorSaveKeepsEditAppliedDuringPersist(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	persist := func(s *models.Storefront) (*models.Storefront, error) {
		close(entered)
		<-release
		canonical := *s
		return &canonical, nil
	}

	editor := NewConfigEditor(testStorefront(), persist)
	editor.UpdateConfig(models.StorefrontPatch{ProfileBio: strPtr("primeira edicao")})

	done := make(chan error, 1)
	go func() { done <- editor.Save() }()

	<-entered
	editor.UpdateConfig(models.StorefrontPatch{ProfileName: strPtr("Maria atualizada")})
	close(release)

	assert.NoError(t, <-done)
	assert.Equal(t, "Maria atualizada", editor.Current().ProfileName, "edit applied during the write survives")
	assert.True(t, editor.Dirty(), "editor stays dirty so the next save carries the edit")
}

func TestEditorSyncIgnoredWhileDirty(t *testing.T) {
	editor := NewConfigEditor(testStorefront(), nil)
	editor.UpdateConfig(models.StorefrontPatch{ProfileName: strPtr("local edit")})

	upstream := testStorefront()
	upstream.ProfileName = "remote"
	editor.Sync(upstream)

	assert.Equal(t, "local edit", editor.Current().ProfileName)
}

func TestEditorSyncAppliesWhenClean(t *testing.T) {
	editor := NewConfigEditor(testStorefront(), nil)

	upstream := testStorefront()
	upstream.ProfileName = "remote"
	editor.Sync(upstream)

	assert.Equal(t, "remote", editor.Current().ProfileName)
}

func TestEditorCurrentReturnsIsolatedCopy(t *testing.T) {
	editor := NewConfigEditor(testStorefront(), nil)

	copy1 := editor.Current()
	copy1.Products[0].Kits[0].Price = 999
	copy1.Products[0].Kits[0].DiscountLinks["20"] = "mutated"

	current := editor.Current()
	assert.Equal(t, float64(20), current.Products[0].Kits[0].Price)
	assert.Empty(t, current.Products[0].Kits[0].DiscountLinks)
}
