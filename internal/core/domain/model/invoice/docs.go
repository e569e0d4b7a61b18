// Package invoice provides the Invoice (facture) aggregate: a billing
// grouping of parcels for one merchant or one courier over a settlement
// cycle, with derived totals and merge bookkeeping.
//
// Key business rules:
//   - Totals always equal the pointwise sum over the current parcel refs;
//     net payable branches on kind (merchant: price minus fees, courier:
//     flat per-parcel rate)
//   - Duplicate refs discovered during a merge are annotated, never dropped
//   - Merged source invoices are soft-inactivated, never deleted
//   - The paid flag is an operator toggle the engine never recomputes
package invoice
