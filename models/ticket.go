// models/ticket.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketItem is one cart line frozen into a ticket: the product fields are
// copied at sale time, not joined back to the catalog.
type TicketItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// Ticket records one completed sale. Immutable once written except for
// deletion; totals and the commission rate are snapshots of sale time.
type Ticket struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Reference      string             `json:"reference" bson:"reference"`
	UserID         string             `json:"userId" bson:"userId"`
	UserName       string             `json:"userName" bson:"userName"`
	UserEmail      string             `json:"userEmail" bson:"userEmail"`
	Items          []TicketItem       `json:"items" bson:"items"`
	Total          float64            `json:"total" bson:"total"`
	Commission     float64            `json:"commission" bson:"commission"`
	CommissionRate float64            `json:"commissionRate" bson:"commissionRate"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// DashboardStats are the back-office aggregates, recomputed from the full
// ticket set on every load.
type DashboardStats struct {
	TotalSales       float64 `json:"totalSales"`
	TotalCommissions float64 `json:"totalCommissions"`
	TicketCount      int     `json:"ticketCount"`
	EmployeeCount    int     `json:"employeeCount"`
}

// DashboardData bundles the four collections the back office renders, plus
// the aggregates over them.
type DashboardData struct {
	Users    []User         `json:"users"`
	Roles    []Role         `json:"roles"`
	Products []Product      `json:"products"`
	Tickets  []Ticket       `json:"tickets"`
	Stats    DashboardStats `json:"stats"`
}
