// Package mongodb implements the document sink on a MongoDB collection.
//
// Documents are stored in raw_comments with their id as _id. Batches are
// inserted unordered so one duplicate does not stop the rest; duplicate key
// errors are then dropped.
package mongodb
