// Package pager is the shared fetch template used by every connector.
//
// A connector supplies platform specific capabilities (fetch one page,
// fetch one item's children, map a native record) and pager supplies the
// loop around them:
//   - Paginate: continuation-token pagination bounded by an item count
//   - PagedStream / Take: lazy streams whose bound is enforced by counting
//   - Harvest: per top-level item child fetching with skip-and-continue
//   - Pacer: fixed spacing between consecutive external calls
//   - GetJSON / APIError: JSON over HTTP with status classification
package pager
