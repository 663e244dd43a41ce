package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tshirt-store/models"
	"tshirt-store/repositories"
)

// CartAPI is the remote authoritative cart, scoped per session.
type CartAPI interface {
	Get(ctx context.Context, sessionID string) (models.Cart, error)
	Add(ctx context.Context, sessionID string, key models.VariantKey, quantity int) error
	Update(ctx context.Context, sessionID string, key models.VariantKey, quantity int) error
	Remove(ctx context.Context, sessionID string, key models.VariantKey) error
}

// StockGuard answers availability questions for the quantity guard.
type StockGuard interface {
	Available(ctx context.Context, key models.VariantKey) (available int, found bool, err error)
	Invalidate(productID string)
}

// ProductSource supplies the name and pricing tiers the engine needs to
// reprice cart lines.
type ProductSource interface {
	ProductBrief(ctx context.Context, productID string) (models.ProductBrief, error)
}

type MutationStatus string

const (
	// MutationApplied: the local cart changed and a background sync was scheduled.
	MutationApplied MutationStatus = "applied"
	// MutationRejected: the guard refused the change; the cart is untouched.
	MutationRejected MutationStatus = "rejected"
	// MutationNoop: nothing to do (e.g. removing a variant that is not in the cart).
	MutationNoop MutationStatus = "noop"
)

// MutationResult reports the outcome of a cart mutation. Expected rejections
// (stock shortfall, invalid quantity) come back here, not as errors.
type MutationResult struct {
	Status    MutationStatus
	Message   string
	Available int
	Requested int
	Cart      models.Cart
}

func (r MutationResult) Rejected() bool { return r.Status == MutationRejected }

type EngineOptions struct {
	DebounceWindow time.Duration
	SyncTimeout    time.Duration
	// Refetch pulls the authoritative cart after the last pending sync
	// confirms, correcting any drift the server introduced.
	Refetch bool
}

// CartEngine keeps one session's cart. Mutations apply to local state
// immediately and reach the remote cart through a per-variant debounced
// background sync; on sync failure the affected line is reverted to its last
// confirmed state and a user-facing notice is queued.
type CartEngine struct {
	sessionID string
	api       CartAPI
	stock     StockGuard
	catalog   ProductSource
	opts      EngineOptions

	mu        sync.Mutex
	lines     []*cartLine
	rules     map[string]models.PricingRule
	names     map[string]string
	timers    map[models.VariantKey]*time.Timer
	pending   map[models.VariantKey]*pendingOp
	inflight  int
	notices   []models.Notice
	observers []func(models.Cart)
	closed    bool
}

type cartLine struct {
	key       models.VariantKey
	quantity  int
	unitPrice models.Money
}

// pendingOp tracks an unconfirmed edit to one variant: the state to revert
// to if the server refuses it, and a generation counter so a sync result
// that was superseded by a newer edit is ignored.
type pendingOp struct {
	baselineQty     int
	baselinePresent bool
	gen             uint64
}

func NewCartEngine(sessionID string, api CartAPI, stock StockGuard, catalog ProductSource, opts EngineOptions) *CartEngine {
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = 150 * time.Millisecond
	}
	if opts.SyncTimeout <= 0 {
		opts.SyncTimeout = 10 * time.Second
	}
	return &CartEngine{
		sessionID: sessionID,
		api:       api,
		stock:     stock,
		catalog:   catalog,
		opts:      opts,
		rules:     make(map[string]models.PricingRule),
		names:     make(map[string]string),
		timers:    make(map[models.VariantKey]*time.Timer),
		pending:   make(map[models.VariantKey]*pendingOp),
	}
}

func (e *CartEngine) SessionID() string { return e.sessionID }

// Subscribe registers an observer called with a snapshot after every local
// cart change (badge counters and the like).
func (e *CartEngine) Subscribe(fn func(models.Cart)) {
	e.mu.Lock()
	e.observers = append(e.observers, fn)
	e.mu.Unlock()
}

// Snapshot returns the current local cart.
func (e *CartEngine) Snapshot() models.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// TakeNotices drains queued reconciliation notices for delivery to the page.
func (e *CartEngine) TakeNotices() []models.Notice {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.notices
	e.notices = nil
	return out
}

// AddItem merges quantity into an existing line for the variant, or creates
// one. Commit flushes the remote sync immediately.
func (e *CartEngine) AddItem(ctx context.Context, key models.VariantKey, quantity int, commit bool) MutationResult {
	if quantity < 1 {
		return e.reject("quantity must be at least 1", 0, quantity)
	}
	return e.mutate(ctx, key, quantity, true, commit)
}

// SetQuantity sets the absolute quantity for a variant. Zero removes the
// line; removing an absent variant is a no-op.
func (e *CartEngine) SetQuantity(ctx context.Context, key models.VariantKey, quantity int, commit bool) MutationResult {
	return e.mutate(ctx, key, quantity, false, commit)
}

// Remove deletes the variant's line. Always commits immediately: a removal
// is a deliberate click, not a keystroke burst.
func (e *CartEngine) Remove(ctx context.Context, key models.VariantKey) MutationResult {
	return e.mutate(ctx, key, 0, false, true)
}

// mutate applies one cart change. In merge mode quantity is a delta on top
// of the current line, otherwise it is the absolute target. The merged total
// is re-resolved under the lock so concurrent adds to the same key cannot
// lose each other's contribution.
func (e *CartEngine) mutate(ctx context.Context, key models.VariantKey, quantity int, merge, commit bool) MutationResult {
	if !merge && quantity < 0 {
		return e.reject("quantity cannot be negative", 0, quantity)
	}

	for {
		target := quantity
		if merge {
			e.mu.Lock()
			current, _ := e.findLocked(key)
			e.mu.Unlock()
			target = current + quantity
		}

		// Guard against stock and resolve pricing before touching the cart,
		// so a rejected mutation leaves no observable trace.
		var brief models.ProductBrief
		if target > 0 {
			available, found, err := e.stock.Available(ctx, key)
			if err != nil {
				return e.reject("stock information unavailable, please retry", 0, target)
			}
			if !found {
				return e.reject(fmt.Sprintf("no such variant %s %s", key.Color, key.Size), 0, target)
			}
			if available == 0 {
				return e.reject("this variant is out of stock", 0, target)
			}
			if target > available {
				return e.reject(fmt.Sprintf("Only %d pieces available", available), available, target)
			}
			brief, err = e.catalog.ProductBrief(ctx, key.ProductID)
			if err != nil {
				return e.reject("pricing unavailable, please retry", 0, target)
			}
		}

		e.mu.Lock()
		if e.closed {
			e.mu.Unlock()
			return e.reject("cart session is closed", 0, target)
		}
		current, present := e.findLocked(key)
		if merge && current+quantity != target {
			// another mutation landed while the guard ran; redo the merge
			// against the new total
			e.mu.Unlock()
			continue
		}
		if (target == 0 && !present) || (present && current == target) {
			// nothing to change, but a commit must still flush any sync the
			// debounce window is holding back
			if commit {
				if t, ok := e.timers[key]; ok {
					t.Stop()
					delete(e.timers, key)
					e.startSyncLocked(key)
				}
			}
			snap := e.snapshotLocked()
			e.mu.Unlock()
			return MutationResult{Status: MutationNoop, Cart: snap}
		}

		op := e.pending[key]
		if op == nil {
			op = &pendingOp{baselineQty: current, baselinePresent: present}
			e.pending[key] = op
		}
		op.gen++

		if target > 0 {
			e.rules[key.ProductID] = brief.Pricing
			if brief.Name != "" {
				e.names[key.ProductID] = brief.Name
			}
			e.upsertLocked(key, target)
		} else {
			e.removeLocked(key)
		}
		e.repriceLocked()
		snap := e.snapshotLocked()
		e.scheduleLocked(key, commit)
		e.mu.Unlock()

		e.notify(snap)
		return MutationResult{Status: MutationApplied, Cart: snap}
	}
}

func (e *CartEngine) reject(message string, available, requested int) MutationResult {
	return MutationResult{
		Status:    MutationRejected,
		Message:   message,
		Available: available,
		Requested: requested,
		Cart:      e.Snapshot(),
	}
}

func (e *CartEngine) findLocked(key models.VariantKey) (int, bool) {
	for _, l := range e.lines {
		if l.key == key {
			return l.quantity, true
		}
	}
	return 0, false
}

func (e *CartEngine) upsertLocked(key models.VariantKey, quantity int) {
	for _, l := range e.lines {
		if l.key == key {
			l.quantity = quantity
			return
		}
	}
	e.lines = append(e.lines, &cartLine{key: key, quantity: quantity})
}

func (e *CartEngine) removeLocked(key models.VariantKey) {
	for i, l := range e.lines {
		if l.key == key {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			return
		}
	}
}

// repriceLocked reapplies the pricing tiers to every line using the
// aggregate quantity of the whole cart. Crossing the bulk threshold reprices
// all lines, not just the one that changed.
func (e *CartEngine) repriceLocked() {
	aggregate := 0
	for _, l := range e.lines {
		aggregate += l.quantity
	}
	for _, l := range e.lines {
		rule, ok := e.rules[l.key.ProductID]
		if !ok {
			continue
		}
		if rule.BulkThreshold > 0 && aggregate >= rule.BulkThreshold {
			l.unitPrice = rule.BulkPrice
		} else {
			l.unitPrice = rule.RegularPrice
		}
	}
}

func (e *CartEngine) snapshotLocked() models.Cart {
	aggregate := 0
	for _, l := range e.lines {
		aggregate += l.quantity
	}
	cart := models.Cart{TotalQuantity: aggregate}
	for _, l := range e.lines {
		lineTotal := l.unitPrice.Mul(l.quantity)
		cart.Total += lineTotal
		if rule, ok := e.rules[l.key.ProductID]; ok && rule.BulkThreshold > 0 && aggregate >= rule.BulkThreshold {
			cart.IsBulk = true
		}
		cart.Items = append(cart.Items, models.CartLine{
			VariantKey:   l.key,
			ProductName:  e.names[l.key.ProductID],
			Quantity:     l.quantity,
			UnitPrice:    l.unitPrice,
			TotalPrice:   lineTotal,
			PriceDisplay: l.unitPrice.String(),
		})
	}
	cart.TotalDisplay = cart.Total.String()
	return cart
}

func (e *CartEngine) notify(snap models.Cart) {
	e.mu.Lock()
	observers := make([]func(models.Cart), len(e.observers))
	copy(observers, e.observers)
	e.mu.Unlock()
	for _, fn := range observers {
		fn(snap)
	}
}

// scheduleLocked arms (or rearms) the debounce timer for a variant. A newer
// edit cancels the older timer, so only the most recent value within the
// window reaches the server. Commit bypasses the window.
func (e *CartEngine) scheduleLocked(key models.VariantKey, commit bool) {
	if t, ok := e.timers[key]; ok {
		t.Stop()
		delete(e.timers, key)
	}
	if commit {
		e.startSyncLocked(key)
		return
	}
	var t *time.Timer
	t = time.AfterFunc(e.opts.DebounceWindow, func() { e.timerFired(key, t) })
	e.timers[key] = t
}

func (e *CartEngine) timerFired(key models.VariantKey, t *time.Timer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if cur, ok := e.timers[key]; !ok || cur != t {
		// superseded or flushed while this callback was in flight
		return
	}
	delete(e.timers, key)
	e.startSyncLocked(key)
}

func (e *CartEngine) startSyncLocked(key models.VariantKey) {
	e.inflight++
	go e.runSync(key)
}

func (e *CartEngine) runSync(key models.VariantKey) {
	defer func() {
		e.mu.Lock()
		e.inflight--
		e.mu.Unlock()
	}()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	op, ok := e.pending[key]
	if !ok {
		e.mu.Unlock()
		return
	}
	gen := op.gen
	basePresent := op.baselinePresent
	quantity, present := e.findLocked(key)
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), e.opts.SyncTimeout)
	defer cancel()

	var err error
	switch {
	case !present || quantity == 0:
		if basePresent {
			err = e.api.Remove(ctx, e.sessionID, key)
		}
	case basePresent:
		err = e.api.Update(ctx, e.sessionID, key, quantity)
	default:
		err = e.api.Add(ctx, e.sessionID, key, quantity)
	}
	e.finishSync(key, gen, quantity, err)
}

func (e *CartEngine) finishSync(key models.VariantKey, gen uint64, sentQuantity int, err error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	op, ok := e.pending[key]
	if !ok || op.gen != gen {
		// a newer edit owns this key now; its own sync will settle it
		e.mu.Unlock()
		return
	}

	if err == nil {
		delete(e.pending, key)
		refetch := e.opts.Refetch && len(e.pending) == 0 && len(e.timers) == 0
		e.mu.Unlock()
		if refetch {
			e.reconcile()
		}
		return
	}

	// Compensate: put the line back to its last confirmed state and tell
	// the user why.
	var stockErr *repositories.StockError
	if errors.As(err, &stockErr) {
		e.stock.Invalidate(key.ProductID)
		message := "Insufficient stock for this item"
		available := 0
		if stockErr.Available >= 0 {
			available = stockErr.Available
			message = fmt.Sprintf("Only %d pieces available", available)
		}
		e.notices = append(e.notices, models.Notice{
			Level:     models.NoticeWarning,
			Message:   message,
			Variant:   &key,
			Available: available,
			Requested: sentQuantity,
		})
	} else {
		e.notices = append(e.notices, models.Notice{
			Level:   models.NoticeError,
			Message: "Could not sync your cart, please try again",
			Variant: &key,
		})
	}

	if op.baselinePresent {
		e.upsertLocked(key, op.baselineQty)
	} else {
		e.removeLocked(key)
	}
	delete(e.pending, key)
	e.repriceLocked()
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// reconcile adopts the authoritative remote cart when no local edits are in
// flight. Silent unless quantities or prices actually differ.
func (e *CartEngine) reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), e.opts.SyncTimeout)
	defer cancel()
	remote, err := e.api.Get(ctx, e.sessionID)
	if err != nil {
		// drift correction is best effort; the next sync will retry
		return
	}

	e.mu.Lock()
	if e.closed || len(e.pending) > 0 || len(e.timers) > 0 {
		e.mu.Unlock()
		return
	}

	changed := len(remote.Items) != len(e.lines)
	if !changed {
		local := make(map[models.VariantKey]*cartLine, len(e.lines))
		for _, l := range e.lines {
			local[l.key] = l
		}
		for _, it := range remote.Items {
			l, ok := local[it.VariantKey]
			if !ok || l.quantity != it.Quantity || l.unitPrice != it.UnitPrice {
				changed = true
				break
			}
		}
	}
	if !changed {
		e.mu.Unlock()
		return
	}

	e.lines = e.lines[:0]
	for _, it := range remote.Items {
		e.lines = append(e.lines, &cartLine{
			key:       it.VariantKey,
			quantity:  it.Quantity,
			unitPrice: it.UnitPrice,
		})
		if it.ProductName != "" {
			e.names[it.ProductID] = it.ProductName
		}
	}
	e.notices = append(e.notices, models.Notice{
		Level:   models.NoticeInfo,
		Message: "Cart updated with the latest prices and availability",
	})
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// Flush forces every pending debounced sync to run now and waits until the
// engine is quiet or the context expires. Used on commit-all paths
// (checkout, page unload).
func (e *CartEngine) Flush(ctx context.Context) bool {
	e.mu.Lock()
	for key, t := range e.timers {
		t.Stop()
		delete(e.timers, key)
		e.startSyncLocked(key)
	}
	e.mu.Unlock()

	for {
		e.mu.Lock()
		idle := e.inflight == 0 && len(e.timers) == 0 && len(e.pending) == 0
		closed := e.closed
		e.mu.Unlock()
		if idle || closed {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// Clear empties the local cart, dropping any pending syncs. Called after a
// completed checkout, when the remote cart is settled into an order.
func (e *CartEngine) Clear() {
	e.mu.Lock()
	for key, t := range e.timers {
		t.Stop()
		delete(e.timers, key)
	}
	e.pending = make(map[models.VariantKey]*pendingOp)
	e.lines = nil
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// Close tears the engine down: all pending timers are cancelled so nothing
// fires after the session is gone.
func (e *CartEngine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	for key, t := range e.timers {
		t.Stop()
		delete(e.timers, key)
	}
	e.pending = make(map[models.VariantKey]*pendingOp)
	e.mu.Unlock()
}
