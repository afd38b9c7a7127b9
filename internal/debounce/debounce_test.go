// internal/debounce/debounce_test.go
package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	testDelay = 50 * time.Millisecond
	settle    = 200 * time.Millisecond
)

type recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

func (r *recorder[T]) record(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder[T]) snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.values))
	copy(out, r.values)
	return out
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	rec := &recorder[int]{}
	d := New(0, rec.record, testDelay)
	defer d.Stop()

	d.Set(1)
	d.Set(2)
	d.Set(3)

	assert.Equal(t, 3, d.Get())
	assert.True(t, d.Dirty())

	time.Sleep(settle)

	assert.Equal(t, []int{3}, rec.snapshot())
	assert.False(t, d.Dirty())
}

func TestDebouncerFlushesPerQuietPeriod(t *testing.T) {
	rec := &recorder[string]{}
	d := New("", rec.record, testDelay)
	defer d.Stop()

	d.Set("first")
	time.Sleep(settle)

	d.Set("second")
	time.Sleep(settle)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestDebouncerSyncIgnoredWhileDirty(t *testing.T) {
	rec := &recorder[int]{}
	d := New(0, rec.record, time.Hour)
	defer d.Stop()

	d.Set(7)
	d.Sync(99)

	assert.Equal(t, 7, d.Get(), "upstream change must not clobber a pending edit")
	assert.True(t, d.Dirty())
}

func TestDebouncerSyncAppliesWhenClean(t *testing.T) {
	rec := &recorder[int]{}
	d := New(0, rec.record, testDelay)
	defer d.Stop()

	d.Sync(42)

	assert.Equal(t, 42, d.Get())
	assert.False(t, d.Dirty())
}

func TestDebouncerFlushImmediate(t *testing.T) {
	rec := &recorder[int]{}
	d := New(0, rec.record, time.Hour)
	defer d.Stop()

	d.Set(5)
	d.Flush()

	assert.Equal(t, []int{5}, rec.snapshot())
	assert.False(t, d.Dirty())

	// A second flush with nothing pending is a no-op.
	d.Flush()
	assert.Equal(t, []int{5}, rec.snapshot())
}

func TestDebouncerStopCancelsPendingFlush(t *testing.T) {
	rec := &recorder[int]{}
	d := New(0, rec.record, testDelay)

	d.Set(1)
	d.Stop()

	time.Sleep(settle)

	assert.Empty(t, rec.snapshot())
}

func TestFieldBufferMergesFieldsIntoOneFlush(t *testing.T) {
	rec := &recorder[map[string]interface{}]{}
	b := NewFieldBuffer(map[string]interface{}{"name": "old"}, rec.record, testDelay)
	defer b.Stop()

	b.UpdateField("name", "Maria")
	b.UpdateField("bio", "Doces artesanais")
	b.UpdateField("name", "Maria Silva")

	assert.True(t, b.Dirty())

	time.Sleep(settle)

	flushed := rec.snapshot()
	assert.Len(t, flushed, 1)
	assert.Equal(t, map[string]interface{}{
		"name": "Maria Silva",
		"bio":  "Doces artesanais",
	}, flushed[0])
	assert.False(t, b.Dirty())
}

func TestFieldBufferValueOverlaysPending(t *testing.T) {
	b := NewFieldBuffer(map[string]interface{}{"name": "old", "theme": "light"}, func(map[string]interface{}) {}, time.Hour)
	defer b.Stop()

	b.UpdateField("name", "new")

	assert.Equal(t, map[string]interface{}{"name": "new", "theme": "light"}, b.Value())
}

func TestFieldBufferSyncIgnoredWhilePending(t *testing.T) {
	b := NewFieldBuffer(map[string]interface{}{"name": "local"}, func(map[string]interface{}) {}, time.Hour)
	defer b.Stop()

	b.UpdateField("name", "edited")
	b.Sync(map[string]interface{}{"name": "remote"})

	assert.Equal(t, "edited", b.Value()["name"])

	b.Flush()
	b.Sync(map[string]interface{}{"name": "remote"})

	assert.Equal(t, "remote", b.Value()["name"])
}

func TestFieldBufferUpdateFieldsSharesOneTimer(t *testing.T) {
	rec := &recorder[map[string]interface{}]{}
	b := NewFieldBuffer(nil, rec.record, testDelay)
	defer b.Stop()

	b.UpdateFields(map[string]interface{}{"whatsapp_number": "11999990000"})
	b.UpdateFields(map[string]interface{}{"coupon_code": "BEMVINDO10"})

	time.Sleep(settle)

	flushed := rec.snapshot()
	assert.Len(t, flushed, 1)
	assert.Equal(t, "11999990000", flushed[0]["whatsapp_number"])
	assert.Equal(t, "BEMVINDO10", flushed[0]["coupon_code"])
}

func TestFieldBufferStopDropsPendingEdits(t *testing.T) {
	rec := &recorder[map[string]interface{}]{}
	b := NewFieldBuffer(nil, rec.record, testDelay)

	b.UpdateField("name", "gone")
	b.Stop()

	time.Sleep(settle)

	assert.Empty(t, rec.snapshot())
}
