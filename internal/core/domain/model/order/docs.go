// Package order provides the Order entity processed by checkout.
//
// The package includes:
//   - Order: identity, customer email, ordered line items, destination country and status
//   - Item: a priced line with a positive quantity
//   - Status: the New -> Processing -> Done state machine
//
// Key business rules:
//   - Orders are created in New status through NewOrder
//   - Status only moves forward, one step at a time; there is no rollback
//   - Totals are never stored on the order, they are derived per processing run
package order
