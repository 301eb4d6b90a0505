package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ShiftReport summarises a closed shift.
type ShiftReport struct {
	Shift          Shift                   `json:"shift"`
	PaidOrders     int                     `json:"paidOrders"`
	Revenue        int64                   `json:"revenue"`
	Tips           int64                   `json:"tips"`
	ByMethod       map[PaymentMethod]int64 `json:"byMethod"`
	OpenOrders     int                     `json:"openOrders"`
	TablesReleased int64                   `json:"tablesReleased"`
}

func (r ShiftReport) Subject() string {
	return fmt.Sprintf("Shift #%d closed", r.Shift.ID)
}

// Text renders the report as a plain text mail body.
func (r ShiftReport) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shift #%d\n", r.Shift.ID)
	fmt.Fprintf(&b, "Opened: %s\n", r.Shift.OpenedAt.Format(time.DateTime))
	if r.Shift.ClosedAt != nil {
		fmt.Fprintf(&b, "Closed: %s\n", r.Shift.ClosedAt.Format(time.DateTime))
	}
	fmt.Fprintf(&b, "\nPaid orders: %d\n", r.PaidOrders)
	fmt.Fprintf(&b, "Revenue: %d\n", r.Revenue)
	fmt.Fprintf(&b, "Tips: %d\n", r.Tips)

	methods := make([]string, 0, len(r.ByMethod))
	for m := range r.ByMethod {
		methods = append(methods, string(m))
	}
	sort.Strings(methods)
	for _, m := range methods {
		fmt.Fprintf(&b, "  %s: %d\n", m, r.ByMethod[PaymentMethod(m)])
	}
	if r.OpenOrders > 0 {
		fmt.Fprintf(&b, "\nUnsettled orders left open: %d\n", r.OpenOrders)
	}
	fmt.Fprintf(&b, "Tables released: %d\n", r.TablesReleased)
	return b.String()
}
