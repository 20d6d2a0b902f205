// Package kernel holds the value objects shared by the checkout domain.
//
// The package includes:
//   - UUID: the opaque order identifier, backed by github.com/google/uuid
//   - Email: a validated customer address
//   - Country: a normalized country or region code ("CH", "DE", "EU", "Worldwide", ...)
//
// Zero values of these types are invalid; each type exposes a Validate method so
// entities can reject values that bypassed the constructors.
package kernel
