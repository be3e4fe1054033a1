// Package memory provides an in-process document sink for dry runs and tests.
package memory
