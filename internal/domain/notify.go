package domain

import (
	"context"
	"fmt"
)

const (
	EventItemReady       = "item_ready"
	EventKitchenNewOrder = "kitchen_new_order"
	EventBoardChanged    = "kitchen_board_changed"
	EventItemRemoved     = "kitchen_item_removed"
	EventOrderChanged    = "order_changed"
	EventTablesChanged   = "tables_changed"
)

// Target selects the recipients of a notification: every connected session
// or the sessions of one staff member.
type Target struct {
	staffID int64
}

var Broadcast = Target{}

func ToStaff(id int64) Target { return Target{staffID: id} }

func (t Target) IsBroadcast() bool { return t.staffID == 0 }

func (t Target) StaffID() int64 { return t.staffID }

// Room is the hub room name; "" for broadcast.
func (t Target) Room() string {
	if t.IsBroadcast() {
		return ""
	}
	return StaffRoom(t.staffID)
}

func StaffRoom(staffID int64) string { return fmt.Sprintf("staff:%d", staffID) }

type Notification struct {
	Event  string
	Target Target
	Data   any
}

// Notifier delivers notifications without waiting on clients. Implementations
// must never block the caller on a slow or disconnected session.
type Notifier interface {
	Notify(ctx context.Context, ns ...Notification)
}

type ItemReadyData struct {
	LineItemID int64  `json:"lineItemId"`
	TableID    int64  `json:"tableId"`
	TableLabel string `json:"tableLabel"`
	Product    string `json:"product"`
}

type ItemRemovedData struct {
	ID int64 `json:"id"`
}

type OrderChangedData struct {
	TableID int64 `json:"tableId"`
}

type NewOrderData struct {
	TableID    int64  `json:"tableId"`
	TableLabel string `json:"tableLabel"`
	OrderID    int64  `json:"orderId"`
	Items      int    `json:"items"`
}

// Transition describes an applied line item status change together with the
// context needed to route its notifications.
type Transition struct {
	LineItemID   int64
	OrderID      int64
	TableID      int64
	TableLabel   string
	ProductName  string
	Station      Station
	OwnerStaffID int64
	From         ItemStatus
	To           ItemStatus
	ChangedBy    int64
}

// PlanTransition decides who hears about a status change.
func PlanTransition(t Transition) []Notification {
	var out []Notification
	switch t.To {
	case ItemReady:
		out = append(out, Notification{
			Event:  EventItemReady,
			Target: ToStaff(t.OwnerStaffID),
			Data: ItemReadyData{
				LineItemID: t.LineItemID,
				TableID:    t.TableID,
				TableLabel: t.TableLabel,
				Product:    t.ProductName,
			},
		})
		// остальные кухонные экраны тоже должны перерисоваться
		out = append(out, Notification{Event: EventBoardChanged, Target: Broadcast})
	case ItemPickedUp:
		out = append(out, Notification{
			Event:  EventItemRemoved,
			Target: Broadcast,
			Data:   ItemRemovedData{ID: t.LineItemID},
		})
	default:
		out = append(out, Notification{Event: EventBoardChanged, Target: Broadcast})
	}
	return append(out, OrderChanged(t.TableID))
}

func OrderChanged(tableID int64) Notification {
	return Notification{Event: EventOrderChanged, Target: Broadcast, Data: OrderChangedData{TableID: tableID}}
}

func TablesChanged() Notification {
	return Notification{Event: EventTablesChanged, Target: Broadcast}
}

// PlanItemsAdded is emitted once per addItems call: one ticket for the kitchen.
func PlanItemsAdded(o Order, added int) []Notification {
	return []Notification{
		{
			Event:  EventKitchenNewOrder,
			Target: Broadcast,
			Data:   NewOrderData{TableID: o.TableID, TableLabel: o.TableLabel, OrderID: o.ID, Items: added},
		},
		OrderChanged(o.TableID),
	}
}

func PlanSettled(tableID int64) []Notification {
	return []Notification{TablesChanged(), OrderChanged(tableID)}
}
