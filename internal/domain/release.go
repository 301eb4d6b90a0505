package domain

// OpenOrderSummary is what release needs to know about a table's open order.
type OpenOrderSummary struct {
	OrderID      int64
	Items        int
	NotDelivered int
}

// CheckRelease decides whether actor may free t. Only the owner or an admin
// may release, and never while the table still has an open order: items not
// yet delivered block it, and so does a fully delivered order that is unpaid.
// Settlement and shift close free tables through their own paths.
func CheckRelease(t Table, actor Actor, open *OpenOrderSummary) error {
	if t.Free() {
		return Conflict("table %s is already free", t.Label)
	}
	if !t.OwnedBy(actor.ID) && !actor.IsAdmin() {
		return Forbidden("table %s belongs to another waiter", t.Label)
	}
	if open == nil {
		return nil
	}
	if open.NotDelivered > 0 {
		return Conflict("table %s has %d item(s) not yet delivered", t.Label, open.NotDelivered)
	}
	return Conflict("table %s has an unpaid order awaiting settlement", t.Label)
}
