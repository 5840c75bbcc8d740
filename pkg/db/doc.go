// Package db opens the optional PostgreSQL connection used for progress
// storage.
package db
