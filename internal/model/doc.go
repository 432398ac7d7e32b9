// Package model builds the emission plan of a builder from a classified
// struct.
//
// The plan lists the builder's storage slots, the setter and appender methods
// to emit in declared field order, and the required fields the finalizer must
// check. Building the plan cannot fail; identifier clashes are reported
// beforehand by Check.
package model
