// Package warehouse declares record types that builder-gen refuses to build.
// Each one exercises a different schema diagnostic.
package warehouse

// Address is a plain record; it is not marked for generation.
type Address struct {
	Street, City string
	PostalCode   string
}

// Shipment embeds Address, which leaves the field without a name.
//
//builder:generate
type Shipment struct {
	Address
	Tracking string
}

// Pallet puts an each annotation on a field that is not a slice.
//
//builder:generate
type Pallet struct {
	Label string `builder:"each = \"label\""`
}

// Bin carries an annotation whose value is not a string literal.
//
//builder:generate
type Bin struct {
	Slots []int `builder:"each = slot"`
}

// Stock has type parameters.
//
//builder:generate
type Stock[T any] struct {
	Items []T
}

// Zone is not a struct at all.
//
//builder:generate
type Zone int
