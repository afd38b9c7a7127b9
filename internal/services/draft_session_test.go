// internal/services/draft_session_test.go
package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lojinha/lojinha-backend/internal/models"
)

const (
	sessionDelay  = 50 * time.Millisecond
	sessionSettle = 250 * time.Millisecond
)

// persistRecorder is an in-memory persistence boundary that counts writes.
type persistRecorder struct {
	mu    sync.Mutex
	saves int
	last  *models.Storefront
}

func (r *persistRecorder) persist(s *models.Storefront) (*models.Storefront, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.last = s
	return s, nil
}

func (r *persistRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *persistRecorder) lastSaved() *models.Storefront {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func newTestSession(rec *persistRecorder) *DraftSession {
	editor := NewConfigEditor(testStorefront(), rec.persist)
	return newDraftSession(editor, sessionDelay)
}

func TestSessionBuffersConfigEditsIntoOneSave(t *testing.T) {
	rec := &persistRecorder{}
	session := newTestSession(rec)
	defer session.Close()

	assert.NoError(t, session.BufferConfig(map[string]interface{}{"profile_name": "M"}))
	assert.NoError(t, session.BufferConfig(map[string]interface{}{"profile_name": "Ma"}))
	assert.NoError(t, session.BufferConfig(map[string]interface{}{"profile_bio": "Bolos"}))

	assert.Equal(t, 0, rec.count(), "nothing persists inside the quiet period")

	time.Sleep(sessionSettle)

	assert.Equal(t, 1, rec.count())
	saved := rec.lastSaved()
	assert.Equal(t, "Ma", saved.ProfileName)
	assert.Equal(t, "Bolos", saved.ProfileBio)
}

func TestSessionRejectsMalformedPartial(t *testing.T) {
	rec := &persistRecorder{}
	session := newTestSession(rec)
	defer session.Close()

	err := session.BufferConfig(map[string]interface{}{"no_such_field": true})
	assert.Error(t, err)

	err = session.BufferConfig(map[string]interface{}{"discount_percent": "not a number"})
	assert.Error(t, err)

	time.Sleep(sessionSettle)
	assert.Equal(t, 0, rec.count())
}

func TestSessionDraftOverlaysPendingBuffer(t *testing.T) {
	rec := &persistRecorder{}
	session := newTestSession(rec)
	defer session.Close()

	assert.NoError(t, session.BufferConfig(map[string]interface{}{"profile_name": "Pending"}))

	draft, err := session.Draft()
	assert.NoError(t, err)
	assert.Equal(t, "Pending", draft.ProfileName, "draft view includes unflushed edits")
	assert.Equal(t, 0, rec.count())
}

func TestSessionProductEditsCoalesceSaves(t *testing.T) {
	rec := &persistRecorder{}
	session := newTestSession(rec)
	defer session.Close()

	session.UpdateProduct("p1", models.ProductPatch{Title: strPtr("Brigadeiro 1")})
	session.UpdateProduct("p1", models.ProductPatch{Title: strPtr("Brigadeiro 2")})
	session.UpdateProductKit("p1", "k1", models.KitPatch{Price: floatPtr(25)})

	time.Sleep(sessionSettle)

	assert.Equal(t, 1, rec.count(), "a burst of edits persists once")
	saved := rec.lastSaved()
	assert.Equal(t, "Brigadeiro 2", saved.Products[0].Title)
	assert.Equal(t, float64(25), saved.Products[0].Kits[0].Price)
}

func TestSessionSaveNowFlushesImmediately(t *testing.T) {
	rec := &persistRecorder{}
	session := newTestSession(rec)
	defer session.Close()

	assert.NoError(t, session.BufferConfig(map[string]interface{}{"coupon_code": "BEMVINDO10"}))
	assert.NoError(t, session.SaveNow())

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, "BEMVINDO10", rec.lastSaved().CouponCode)

	// SaveNow with nothing pending does not write again.
	assert.NoError(t, session.SaveNow())
	assert.Equal(t, 1, rec.count())
}

func TestSessionAutoSaveStillWorksAfterSaveNow(t *testing.T) {
	rec := &persistRecorder{}
	session := newTestSession(rec)
	defer session.Close()

	session.UpdateProduct("p1", models.ProductPatch{Title: strPtr("first")})
	assert.NoError(t, session.SaveNow())
	assert.Equal(t, 1, rec.count())

	session.UpdateProduct("p1", models.ProductPatch{Title: strPtr("second")})
	time.Sleep(sessionSettle)

	assert.Equal(t, 2, rec.count())
	assert.Equal(t, "second", rec.lastSaved().Products[0].Title)
}

func TestSessionConfigFlushDuringProductSaveIsNotLost(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	rec := &persistRecorder{}
	var once sync.Once
	persist := func(s *models.Storefront) (*models.Storefront, error) {
		once.Do(func() {
			close(entered)
			<-release
		})
		return rec.persist(s)
	}

	editor := NewConfigEditor(testStorefront(), persist)
	session := newDraftSession(editor, time.Hour)
	defer session.Close()

	session.UpdateProduct("p1", models.ProductPatch{Title: strPtr("Brigadeiro gourmet")})

	saveDone := make(chan struct{})
	go func() {
		session.save()
		close(saveDone)
	}()
	<-entered

	// A quiet-period flush lands while the product save is still writing.
	flushDone := make(chan struct{})
	go func() {
		session.flushConfigPartial(map[string]interface{}{"profile_bio": "editada durante o save"})
		close(flushDone)
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	<-saveDone
	<-flushDone

	assert.Equal(t, 2, rec.count(), "stale write is followed by one carrying the flush")
	assert.Equal(t, "editada durante o save", rec.lastSaved().ProfileBio)
	assert.False(t, editor.Dirty())
}

func TestSessionSyncUpstreamIgnoredWhileDirty(t *testing.T) {
	rec := &persistRecorder{}
	session := newTestSession(rec)
	defer session.Close()

	assert.NoError(t, session.BufferConfig(map[string]interface{}{"profile_name": "local"}))

	upstream := testStorefront()
	upstream.ProfileName = "remote"
	session.SyncUpstream(upstream)

	draft, err := session.Draft()
	assert.NoError(t, err)
	assert.Equal(t, "local", draft.ProfileName)
}

func TestSessionSyncUpstreamAppliesWhenClean(t *testing.T) {
	rec := &persistRecorder{}
	session := newTestSession(rec)
	defer session.Close()

	upstream := testStorefront()
	upstream.ProfileName = "remote"
	session.SyncUpstream(upstream)

	draft, err := session.Draft()
	assert.NoError(t, err)
	assert.Equal(t, "remote", draft.ProfileName)
}

func TestSessionCloseDropsPendingEdits(t *testing.T) {
	rec := &persistRecorder{}
	session := newTestSession(rec)

	assert.NoError(t, session.BufferConfig(map[string]interface{}{"profile_name": "gone"}))
	session.Close()

	time.Sleep(sessionSettle)
	assert.Equal(t, 0, rec.count())
}
