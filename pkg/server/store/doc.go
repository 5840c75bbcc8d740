// Package store provides storage abstractions for the RecallKit server.
//
// This package defines interfaces for persistence, allowing the server
// endpoints to be decoupled from the storage backend. Progress can live in
// flat JSON files (the file subpackage) or in PostgreSQL (the gorm
// subpackage).
//
// # Available Stores
//
//   - ProgressStore: Per-profile progress documents (get, put, delete)
//   - HealthStore: Backend connectivity checks
//
// # Usage
//
//	progress := file.NewProgressStore("/app/data/progress")
//	doc, err := progress.GetProgress("alice")
//	if err != nil {
//	    if errors.Is(err, store.ErrInvalidProfile) {
//	        // Handle bad profile name
//	    }
//	}
package store
