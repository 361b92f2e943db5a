// Package utils provides common utility functions for the order-reconciler application.
// It includes helpers that turn loosely typed values (warehouse rows, query strings)
// into Go types.
package utils
