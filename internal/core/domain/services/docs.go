// Package services holds domain rules that sit outside the Order entity itself.
//
// The package includes:
//   - CountryPolicy: the set of destinations checkout accepts orders for
//
// Pricing strategies live in the discount subpackage.
package services
