// Package menu models the engine's view of the catalog: the Item entity with
// its stock reservation rule. Catalog CRUD lives outside the engine; the only
// mutation owned here is decrementing available stock when an order commits.
package menu
