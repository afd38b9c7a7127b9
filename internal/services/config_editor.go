// internal/services/config_editor.go
package services

import (
	"sync"

	"github.com/lojinha/lojinha-backend/internal/models"
)

// PersistFunc sends a full storefront aggregate to the persistence boundary
// and returns the canonical stored record, which may differ from what was
// sent (normalized fields, server timestamps).
type PersistFunc func(*models.Storefront) (*models.Storefront, error)

// ConfigEditor holds the in-memory storefront aggregate for one editing
// session and mediates all persistence. Mutations only touch local state and
// mark it dirty; Save pushes the whole aggregate and adopts the canonical
// response. Unknown product or kit ids are silently ignored: the editor UI is
// best-effort and a stale id is not worth failing the whole edit for.
type ConfigEditor struct {
	mu      sync.Mutex
	current *models.Storefront
	dirty   bool
	gen     uint64
	persist PersistFunc
}

func NewConfigEditor(initial *models.Storefront, persist PersistFunc) *ConfigEditor {
	copied := cloneStorefront(initial)
	copied.Normalize()
	return &ConfigEditor{
		current: copied,
		persist: persist,
	}
}

// Current returns a copy of the aggregate, including unsaved edits.
func (e *ConfigEditor) Current() *models.Storefront {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneStorefront(e.current)
}

// Dirty reports whether local edits have not been persisted yet.
func (e *ConfigEditor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// UpdateConfig shallow-merges a partial update into the aggregate's top
// level. Last write wins on overlapping keys. Does not persist.
func (e *ConfigEditor) UpdateConfig(patch models.StorefrontPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current.ApplyPatch(patch)
	e.markDirty()
}

// UpdateProduct merges a partial update into the product with the given id.
// A missing id is a no-op.
func (e *ConfigEditor) UpdateProduct(productID string, patch models.ProductPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.current.Products {
		if e.current.Products[i].ID == productID {
			e.current.Products[i].ApplyPatch(patch)
			e.markDirty()
			return
		}
	}
}

// UpdateProductKit merges a partial update into a kit located by product id
// then kit id. A miss at either level is a no-op.
func (e *ConfigEditor) UpdateProductKit(productID, kitID string, patch models.KitPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.current.Products {
		if e.current.Products[i].ID != productID {
			continue
		}
		kits := e.current.Products[i].Kits
		for j := range kits {
			if kits[j].ID == kitID {
				kits[j].ApplyPatch(patch)
				e.markDirty()
				return
			}
		}
		return
	}
}

// AddProduct appends a product to the end of the display order.
func (e *ConfigEditor) AddProduct(product models.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current.Products = models.NormalizeProducts(append(e.current.Products, product))
	e.markDirty()
}

// RemoveProduct drops the product with the given id. A missing id is a no-op.
func (e *ConfigEditor) RemoveProduct(productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.current.Products {
		if e.current.Products[i].ID == productID {
			e.current.Products = append(e.current.Products[:i], e.current.Products[i+1:]...)
			e.markDirty()
			return
		}
	}
}

// Sync resynchronizes local state to a fresh upstream copy. Ignored while
// local edits are pending, so in-flight input is never discarded by a
// background refresh.
func (e *ConfigEditor) Sync(upstream *models.Storefront) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dirty {
		return
	}
	e.current = cloneStorefront(upstream)
	e.current.Normalize()
}

// Save sends the full aggregate to the persistence boundary. On success the
// canonical stored record replaces local state; on failure local state is
// left exactly as it was and the error is surfaced to the caller. There is no
// retry and no queueing; the session serializes saves.
//
// The mutex is released while the write is in flight so edits keep landing
// during a slow persist. If one does, the snapshot that was written is stale:
// the canonical response is discarded and the editor stays dirty, so the next
// save carries the newer edit.
func (e *ConfigEditor) Save() error {
	e.mu.Lock()
	snapshot := cloneStorefront(e.current)
	gen := e.gen
	e.mu.Unlock()

	canonical, err := e.persist(snapshot)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		return nil
	}
	e.current = cloneStorefront(canonical)
	e.current.Normalize()
	e.dirty = false
	return nil
}

func (e *ConfigEditor) markDirty() {
	e.dirty = true
	e.gen++
}

// cloneStorefront deep-copies the aggregate so callers never share the
// editor's backing slices and maps.
func cloneStorefront(s *models.Storefront) *models.Storefront {
	copied := *s
	copied.Products = make(models.ProductList, len(s.Products))
	for i, product := range s.Products {
		p := product
		p.Kits = make([]models.ProductKit, len(product.Kits))
		for j, kit := range product.Kits {
			k := kit
			if kit.DiscountLinks != nil {
				k.DiscountLinks = make(map[string]string, len(kit.DiscountLinks))
				for key, value := range kit.DiscountLinks {
					k.DiscountLinks[key] = value
				}
			}
			if kit.IsVisible != nil {
				visible := *kit.IsVisible
				k.IsVisible = &visible
			}
			p.Kits[j] = k
		}
		copied.Products[i] = p
	}
	return &copied
}
