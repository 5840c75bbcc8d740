package store

// HealthStore provides health check operations
type HealthStore interface {
	// CheckConnectivity verifies the storage backend is reachable
	CheckConnectivity() error
}
