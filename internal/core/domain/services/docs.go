// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the canteen system. It implements business
// workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderAssembler: A domain service that reserves catalog stock and prices
//     order lines during order placement
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
