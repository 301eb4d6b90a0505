package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleWaiter  Role = "GARZON"
	RoleKitchen Role = "COCINA"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWaiter, RoleKitchen:
		return true
	}
	return false
}

// Station is where a product is prepared. Only StationBar bypasses the kitchen.
type Station string

const StationBar Station = "bar"

func (s Station) IsBar() bool { return s == StationBar }

type OrderStatus string

const (
	OrderOpen OrderStatus = "open"
	OrderPaid OrderStatus = "paid"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

func (m PaymentMethod) Valid() bool { return m == PaymentCash || m == PaymentCard }

type Staff struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"-"`
}

type Product struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice int64   `json:"unitPrice"`
	Category  string  `json:"category"`
	Station   Station `json:"station"`
}

// Table: OwnerStaffID == nil означает, что стол свободен.
type Table struct {
	ID           int64  `json:"id"`
	Label        string `json:"label"`
	SeatCapacity int    `json:"seatCapacity"`
	OwnerStaffID *int64 `json:"ownerStaffId"`
	OwnerName    string `json:"ownerName,omitempty"`
}

func (t Table) Free() bool { return t.OwnerStaffID == nil }

func (t Table) OwnedBy(staffID int64) bool {
	return t.OwnerStaffID != nil && *t.OwnerStaffID == staffID
}

// MyTable is a table owned by the caller plus the size of its open order.
type MyTable struct {
	Table
	OpenOrderID    *int64 `json:"openOrderId"`
	OpenItemCount  int    `json:"openItemCount"`
	PendingHandoff int    `json:"pendingHandoff"`
}

type Order struct {
	ID            int64          `json:"id"`
	TableID       int64          `json:"tableId"`
	TableLabel    string         `json:"tableLabel,omitempty"`
	OwnerStaffID  int64          `json:"ownerStaffId"`
	ShiftID       int64          `json:"shiftId"`
	Status        OrderStatus    `json:"status"`
	Total         int64          `json:"total"`
	Tip           int64          `json:"tip"`
	PaymentMethod *PaymentMethod `json:"paymentMethod"`
	CreatedAt     time.Time      `json:"createdAt"`
	ClosedAt      *time.Time     `json:"closedAt"`
	Items         []LineItem     `json:"items"`
}

type LineItem struct {
	ID          int64      `json:"id"`
	OrderID     int64      `json:"orderId"`
	ProductID   int64      `json:"productId"`
	ProductName string     `json:"productName"`
	Station     Station    `json:"station"`
	Quantity    int        `json:"quantity"`
	UnitPrice   int64      `json:"unitPrice"`
	Comment     string     `json:"comment"`
	Status      ItemStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewItem is one entry of an addItems request. A nil UnitPrice takes the
// catalog price.
type NewItem struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice *int64 `json:"unitPrice"`
	Comment   string `json:"comment"`
}

type Shift struct {
	ID       int64      `json:"id"`
	OpenedBy int64      `json:"openedBy"`
	OpenedAt time.Time  `json:"openedAt"`
	ClosedAt *time.Time `json:"closedAt"`
	ClosedBy *int64     `json:"closedBy"`
}

func (s Shift) Open() bool { return s.ClosedAt == nil }

// QueueItem is one row of the kitchen board.
type QueueItem struct {
	LineItemID  int64      `json:"lineItemId"`
	OrderID     int64      `json:"orderId"`
	TableID     int64      `json:"tableId"`
	TableLabel  string     `json:"tableLabel"`
	ProductName string     `json:"productName"`
	Quantity    int        `json:"quantity"`
	Comment     string     `json:"comment"`
	Status      ItemStatus `json:"status"`
	WaiterName  string     `json:"waiterName"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// StatusChange is one row of a line item's timeline.
type StatusChange struct {
	LineItemID int64       `json:"lineItemId"`
	From       *ItemStatus `json:"from"`
	To         ItemStatus  `json:"to"`
	ChangedBy  *int64      `json:"changedBy"`
	ChangedAt  time.Time   `json:"changedAt"`
}

// Actor is the staff member performing an operation.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
