// Package store holds the record types of a small web shop. Builders for the
// marked types are produced by builder-gen.
package store

import (
	"time"
)

// Product represents an individual item available for sale.
// Price is in cents to avoid floating-point errors.
//
//builder:generate
type Product struct {
	ID          int64
	SKU         string
	Name        string
	Description *string
	PriceCents  int64
	Tags        []string `builder:"each = \"tag\""`
	CreatedAt   time.Time
}

// Customer represents the user placing orders.
//
//builder:generate
type Customer struct {
	ID       int64
	Email    string
	FullName string
	Address  *string
	IsActive bool
}

// Order represents a transaction made by a customer.
//
//builder:generate
type Order struct {
	ID         int64
	CustomerID int64
	Status     OrderStatus
	Items      []OrderItem //builder:each="item"
	Notes      []string
	OrderedAt  time.Time
}

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
