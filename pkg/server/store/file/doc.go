// Package file provides flat-file implementations of the store interfaces.
// Every profile is one pretty-printed JSON document, <profile>.json, in the
// data directory.
package file
