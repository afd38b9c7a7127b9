// internal/debounce/debounce.go

// Package debounce decouples high-frequency edit events from their downstream
// effect: bursts of updates within a quiet period collapse into a single
// flush. It backs the storefront editor's auto-save flow.
package debounce

import (
	"sync"
	"time"
)

// Debouncer buffers a single value. Every Set restarts the timer; when the
// timer elapses without an intervening Set, the flush callback fires exactly
// once with the latest value and the last-known upstream value is updated to
// match, so a later Sync with the same value does not clobber local state.
//
// Flushing a value identical to the upstream one is permitted: the cost of a
// redundant persistence call is preferred over deep-equality suppression.
type Debouncer[T any] struct {
	mu       sync.Mutex
	delay    time.Duration
	value    T
	upstream T
	dirty    bool
	timer    *time.Timer
	flush    func(T)
	stopped  bool
}

// New builds a Debouncer around an initial value, a flush callback and a
// quiet-period delay. The callback runs on a timer goroutine; it must not call
// back into the Debouncer's Set.
func New[T any](initial T, flush func(T), delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay:    delay,
		value:    initial,
		upstream: initial,
		flush:    flush,
	}
}

// Get returns the current local, possibly unflushed, value.
func (d *Debouncer[T]) Get() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Dirty reports whether a local edit is pending flush.
func (d *Debouncer[T]) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// Set replaces the local value and restarts the quiet-period timer,
// coalescing with any pending flush.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.value = value
	d.dirty = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Sync resynchronizes the local value to a new upstream value. If a local
// edit is pending, the upstream change is ignored so in-flight input is not
// discarded; it will be reconciled by the pending flush.
func (d *Debouncer[T]) Sync(upstream T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.upstream = upstream
	if d.dirty {
		return
	}
	d.value = upstream
}

// Flush fires immediately if an edit is pending, cancelling the timer.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if !d.dirty || d.stopped {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	value := d.value
	d.upstream = value
	d.dirty = false
	d.mu.Unlock()

	d.flush(value)
}

// Stop cancels any pending timer. No flush fires after Stop returns.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.dirty = false
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if !d.dirty || d.stopped {
		d.mu.Unlock()
		return
	}
	value := d.value
	d.upstream = value
	d.dirty = false
	d.timer = nil
	d.mu.Unlock()

	d.flush(value)
}

// FieldBuffer is the multi-field variant: partial records merge into one
// local draft and a single timer governs the whole draft, so distinct fields
// edited within one delay window flush together as one combined update.
type FieldBuffer struct {
	mu      sync.Mutex
	delay   time.Duration
	base    map[string]interface{}
	pending map[string]interface{}
	order   []string
	timer   *time.Timer
	flush   func(map[string]interface{})
	stopped bool
}

// NewFieldBuffer builds a FieldBuffer over an initial record. The flush
// callback receives only the merged pending partial, applied in call order.
func NewFieldBuffer(initial map[string]interface{}, flush func(map[string]interface{}), delay time.Duration) *FieldBuffer {
	base := make(map[string]interface{}, len(initial))
	for k, v := range initial {
		base[k] = v
	}
	return &FieldBuffer{
		delay:   delay,
		base:    base,
		pending: map[string]interface{}{},
		flush:   flush,
	}
}

// UpdateField merges a single field into the draft and restarts the timer.
func (b *FieldBuffer) UpdateField(key string, value interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	b.setPending(key, value)
	b.reschedule()
}

// UpdateFields merges a partial record into the draft under the same timer.
func (b *FieldBuffer) UpdateFields(partial map[string]interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped || len(partial) == 0 {
		return
	}
	for k, v := range partial {
		b.setPending(k, v)
	}
	b.reschedule()
}

// Value returns the merged view of the draft: base overlaid with pending
// edits.
func (b *FieldBuffer) Value() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	merged := make(map[string]interface{}, len(b.base)+len(b.pending))
	for k, v := range b.base {
		merged[k] = v
	}
	for k, v := range b.pending {
		merged[k] = v
	}
	return merged
}

// Dirty reports whether any field edit is pending flush.
func (b *FieldBuffer) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending) > 0
}

// Sync replaces the base record with a new upstream value. Ignored while
// edits are pending, to avoid discarding in-flight input.
func (b *FieldBuffer) Sync(upstream map[string]interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) > 0 {
		return
	}
	base := make(map[string]interface{}, len(upstream))
	for k, v := range upstream {
		base[k] = v
	}
	b.base = base
}

// Flush fires immediately with the pending partial, cancelling the timer.
func (b *FieldBuffer) Flush() {
	b.mu.Lock()
	partial := b.takePending()
	if partial == nil {
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()

	b.flush(partial)
}

// Stop cancels any pending timer and drops unflushed edits.
func (b *FieldBuffer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.pending = map[string]interface{}{}
	b.order = nil
}

func (b *FieldBuffer) setPending(key string, value interface{}) {
	if _, seen := b.pending[key]; !seen {
		b.order = append(b.order, key)
	}
	b.pending[key] = value
}

func (b *FieldBuffer) reschedule() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.delay, b.fire)
}

// takePending detaches the pending partial and folds it into base. Caller
// holds the lock; returns nil when nothing is pending.
func (b *FieldBuffer) takePending() map[string]interface{} {
	if b.stopped || len(b.pending) == 0 {
		return nil
	}
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	partial := make(map[string]interface{}, len(b.pending))
	for _, key := range b.order {
		value := b.pending[key]
		partial[key] = value
		b.base[key] = value
	}
	b.pending = map[string]interface{}{}
	b.order = nil
	return partial
}

func (b *FieldBuffer) fire() {
	b.mu.Lock()
	partial := b.takePending()
	b.mu.Unlock()
	if partial == nil {
		return
	}

	b.flush(partial)
}
