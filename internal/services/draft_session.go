// internal/services/draft_session.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lojinha/lojinha-backend/internal/debounce"
	"github.com/lojinha/lojinha-backend/internal/models"
)

// DraftSession is the editing surface for one creator: it buffers rapid
// top-level field edits in a FieldBuffer and coalesces product and kit edits
// into one debounced save. The flow is buffer -> quiet period -> merge into
// the ConfigEditor -> persist; the editor's canonical response then becomes
// local state.
type DraftSession struct {
	editor *ConfigEditor
	buffer *debounce.FieldBuffer
	saver  *debounce.Debouncer[int64]

	mu       sync.Mutex
	revision int64
	lastUsed time.Time
}

func newDraftSession(editor *ConfigEditor, delay time.Duration) *DraftSession {
	session := &DraftSession{
		editor:   editor,
		lastUsed: time.Now(),
	}

	session.buffer = debounce.NewFieldBuffer(nil, session.flushConfigPartial, delay)
	session.saver = debounce.New(int64(0), func(int64) {
		session.save()
	}, delay)

	return session
}

// BufferConfig merges a partial top-level update into the draft. Fields
// edited within one delay window are flushed together as one combined update.
func (s *DraftSession) BufferConfig(partial map[string]interface{}) error {
	// Reject malformed partials up front; the flush callback has no caller
	// left to report to.
	if _, err := patchFromPartial(partial); err != nil {
		return err
	}
	s.touch()
	s.buffer.UpdateFields(partial)
	return nil
}

// UpdateProduct applies a product edit immediately and schedules a debounced
// save. Unknown ids are silently ignored by the editor.
func (s *DraftSession) UpdateProduct(productID string, patch models.ProductPatch) {
	s.touch()
	s.editor.UpdateProduct(productID, patch)
	s.scheduleSave()
}

// UpdateProductKit applies a kit edit immediately and schedules a debounced
// save.
func (s *DraftSession) UpdateProductKit(productID, kitID string, patch models.KitPatch) {
	s.touch()
	s.editor.UpdateProductKit(productID, kitID, patch)
	s.scheduleSave()
}

// AddProduct appends a product and schedules a debounced save.
func (s *DraftSession) AddProduct(product models.Product) {
	s.touch()
	s.editor.AddProduct(product)
	s.scheduleSave()
}

// RemoveProduct drops a product and schedules a debounced save.
func (s *DraftSession) RemoveProduct(productID string) {
	s.touch()
	s.editor.RemoveProduct(productID)
	s.scheduleSave()
}

// Draft returns the current local aggregate including unflushed buffer
// fields.
func (s *DraftSession) Draft() (*models.Storefront, error) {
	s.touch()
	draft := s.editor.Current()
	if s.buffer.Dirty() {
		patch, err := patchFromPartial(s.buffer.Value())
		if err != nil {
			return nil, err
		}
		draft.ApplyPatch(patch)
	}
	return draft, nil
}

// SaveNow flushes any buffered edits and persists immediately. A still-armed
// save timer is left alone: it fires into a clean editor and does nothing.
func (s *DraftSession) SaveNow() error {
	s.touch()
	s.buffer.Flush()
	return s.saveErr()
}

// SyncUpstream resynchronizes the session to a fresh copy of the stored
// record. Ignored while local edits are pending.
func (s *DraftSession) SyncUpstream(upstream *models.Storefront) {
	if s.buffer.Dirty() || s.editor.Dirty() {
		return
	}
	s.editor.Sync(upstream)
}

// Close cancels pending timers without flushing. Unsaved edits are discarded.
func (s *DraftSession) Close() {
	s.buffer.Stop()
	s.saver.Stop()
}

func (s *DraftSession) flushConfigPartial(partial map[string]interface{}) {
	patch, err := patchFromPartial(partial)
	if err != nil {
		// Entries were validated on the way in; reaching this is a bug.
		logrus.WithError(err).Error("Dropping undecodable draft partial")
		return
	}
	s.editor.UpdateConfig(patch)
	s.save()
}

func (s *DraftSession) scheduleSave() {
	s.mu.Lock()
	s.revision++
	rev := s.revision
	s.mu.Unlock()
	s.saver.Set(rev)
}

// save serializes persistence so two debounce timers cannot race a pair of
// overlapping writes.
func (s *DraftSession) save() {
	if err := s.saveErr(); err != nil {
		logrus.WithError(err).Error("Debounced storefront save failed")
	}
}

func (s *DraftSession) saveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editor.Dirty() {
		return nil
	}
	return s.editor.Save()
}

func (s *DraftSession) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

func (s *DraftSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// patchFromPartial decodes a loose JSON object into a typed storefront patch,
// rejecting unknown fields and type mismatches.
func patchFromPartial(partial map[string]interface{}) (models.StorefrontPatch, error) {
	var patch models.StorefrontPatch
	if len(partial) == 0 {
		return patch, nil
	}

	raw, err := json.Marshal(partial)
	if err != nil {
		return patch, fmt.Errorf("failed to encode draft partial: %w", err)
	}
	if err := strictUnmarshal(raw, &patch); err != nil {
		return patch, fmt.Errorf("invalid draft partial: %w", err)
	}
	return patch, nil
}

func strictUnmarshal(raw []byte, target interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}
