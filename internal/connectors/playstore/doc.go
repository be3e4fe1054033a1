// Package playstore implements a Source that reads the newest reviews of
// Google Play apps.
//
// The app is first resolved through its public details page; reviews are
// then paged through the store's batchexecute RPC, whose responses are
// deeply nested positional JSON arrays.
package playstore
