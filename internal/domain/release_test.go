package domain

import (
	"errors"
	"testing"
)

func owned(by int64) Table { return Table{ID: 1, Label: "T1", OwnerStaffID: &by} }

func TestCheckRelease(t *testing.T) {
	waiterA := Actor{ID: 1, Role: RoleWaiter}
	waiterB := Actor{ID: 2, Role: RoleWaiter}
	admin := Actor{ID: 9, Role: RoleAdmin}

	cases := []struct {
		name  string
		table Table
		actor Actor
		open  *OpenOrderSummary
		want  error
	}{
		{"owner, no order", owned(1), waiterA, nil, nil},
		{"admin overrides ownership", owned(1), admin, nil, nil},
		{"not owner", owned(1), waiterB, nil, ErrForbidden},
		{"forbidden before conflict", owned(1), waiterB, &OpenOrderSummary{Items: 1, NotDelivered: 1}, ErrForbidden},
		{"item still ready", owned(1), waiterA, &OpenOrderSummary{Items: 2, NotDelivered: 1}, ErrConflict},
		{"admin still blocked by pending items", owned(1), admin, &OpenOrderSummary{Items: 1, NotDelivered: 1}, ErrConflict},
		{"delivered but unpaid", owned(1), waiterA, &OpenOrderSummary{Items: 2}, ErrConflict},
		{"already free", Table{ID: 1, Label: "T1"}, admin, nil, ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckRelease(tc.table, tc.actor, tc.open)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
