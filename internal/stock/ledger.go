package stock

// Ledger tracks per-product quantity adjustments relative to the catalog
// baseline. Adjustments represent tentative client-side reservations and
// are session-scoped; there is no expiry or server reconciliation.
//
// The ledger is not safe for concurrent use on its own. The cart store
// guards it together with the line items under one mutex.
type Ledger struct {
	adjustments map[string]int
}

// NewLedger creates a ledger seeded with previously persisted adjustments.
// A nil initial map yields an empty ledger.
func NewLedger(initial map[string]int) *Ledger {
	adjustments := make(map[string]int, len(initial))
	for id, delta := range initial {
		adjustments[id] = delta
	}
	return &Ledger{adjustments: adjustments}
}

// AdjustmentFor returns the running adjustment for a product,
// defaulting to 0 for unknown ids
func (l *Ledger) AdjustmentFor(productID string) int {
	return l.adjustments[productID]
}

// ApplyDelta adds delta to the running adjustment, creating the entry
// if absent
func (l *Ledger) ApplyDelta(productID string, delta int) {
	l.adjustments[productID] += delta
}

// Available derives the available stock for a product from its catalog
// baseline: catalogStock + adjustment
func (l *Ledger) Available(productID string, catalogStock int) int {
	return catalogStock + l.adjustments[productID]
}

// Snapshot returns a copy of the adjustment map for persistence
func (l *Ledger) Snapshot() map[string]int {
	snapshot := make(map[string]int, len(l.adjustments))
	for id, delta := range l.adjustments {
		snapshot[id] = delta
	}
	return snapshot
}
