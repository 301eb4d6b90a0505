package domain

import "strings"

type ItemStatus string

const (
	ItemPending       ItemStatus = "pending"
	ItemInPreparation ItemStatus = "in_preparation"
	ItemReady         ItemStatus = "ready"
	ItemPickedUp      ItemStatus = "picked_up"
	ItemDelivered     ItemStatus = "delivered"
)

// ParseItemStatus accepts only the five wire values. Anything else is an
// InvalidTransition: a raw client string is never written to storage.
func ParseItemStatus(s string) (ItemStatus, error) {
	st := ItemStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case ItemPending, ItemInPreparation, ItemReady, ItemPickedUp, ItemDelivered:
		return st, nil
	}
	return "", InvalidTransition("unknown line item status %q", s)
}

// Terminal reports whether the item has been handed off to the guest.
func (s ItemStatus) Terminal() bool { return s == ItemDelivered }

// OnKitchenBoard reports whether the kitchen still owns the item.
func (s ItemStatus) OnKitchenBoard() bool {
	return s == ItemPending || s == ItemInPreparation || s == ItemReady
}

var kitchenFlow = map[ItemStatus]ItemStatus{
	ItemPending:       ItemInPreparation,
	ItemInPreparation: ItemReady,
	ItemReady:         ItemPickedUp,
	ItemPickedUp:      ItemDelivered,
}

var barFlow = map[ItemStatus]ItemStatus{
	ItemPending: ItemDelivered,
}

// Next validates current -> requested for an item prepared at station.
// Each status has exactly one successor; backwards moves, repeats and skips
// are rejected.
func Next(current, requested ItemStatus, station Station) (ItemStatus, error) {
	flow := kitchenFlow
	if station.IsBar() {
		flow = barFlow
	}
	next, ok := flow[current]
	if !ok {
		return "", InvalidTransition("line item is %s, no further transition allowed", current)
	}
	if requested != next {
		return "", InvalidTransition("line item is %s, cannot move to %s", current, requested)
	}
	return next, nil
}

// MayRequest checks that role is allowed to move an item into target.
// Kitchen staff cook, waitstaff hand off, admins may do both. Pending is only
// ever an initial status, so asking for it is a backward move for every role.
func MayRequest(role Role, target ItemStatus) error {
	if target == ItemPending {
		return InvalidTransition("line items never move back to %s", target)
	}
	if role == RoleAdmin {
		return nil
	}
	switch target {
	case ItemInPreparation, ItemReady:
		if role == RoleKitchen {
			return nil
		}
	case ItemPickedUp, ItemDelivered:
		if role == RoleWaiter {
			return nil
		}
	}
	return Forbidden("role %s may not set status %s", role, target)
}
