// Package catalog implements the store and product hierarchy.
//
// Stores form a single globally ordered collection; products are ordered
// within their store. Both are soft-deleted and every listing, lookup and
// batch operation sees only active rows.
//
// Batch writes go through the reconcile engine (core/reconcile): zero-id
// items insert with allocator-assigned sort values, non-zero ids update in
// place, and the store-scoped reconcile endpoint replaces by omission. An
// update naming a row of another store aborts with a scope conflict; moving
// a product between stores is only possible through the single-product
// update. Every batch runs inside one transaction, so the first failing item
// rolls the whole batch back.
//
// Product images are held in object storage under products/<id>, with the
// object key recorded on the row.
package catalog
