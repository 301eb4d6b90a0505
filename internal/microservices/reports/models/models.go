package models

import "time"

type TopProduct struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// Dashboard is the admin overview for the current business day.
type Dashboard struct {
	Since          time.Time               `json:"since"`
	SalesToday     int64                   `json:"salesToday"`
	TipsToday      int64                   `json:"tipsToday"`
	OrdersToday    int                     `json:"ordersToday"`
	TablesTotal    int                     `json:"tablesTotal"`
	TablesOccupied int                     `json:"tablesOccupied"`
	KitchenPending int                     `json:"kitchenPending"`
	TopProducts    map[string][]TopProduct `json:"topProducts"`
}
