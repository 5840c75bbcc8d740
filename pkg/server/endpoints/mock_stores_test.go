package endpoints

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/recallkit/recallkit/pkg/config"
	"github.com/recallkit/recallkit/pkg/deck"
	"github.com/recallkit/recallkit/pkg/server"
	"github.com/recallkit/recallkit/pkg/server/store"
)

// MockProgressStore implements store.ProgressStore for testing using testify/mock
type MockProgressStore struct {
	mock.Mock
}

func NewMockProgressStore() *MockProgressStore {
	return &MockProgressStore{}
}

func (m *MockProgressStore) GetProgress(profile string) (store.Document, error) {
	args := m.Called(profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(store.Document), args.Error(1)
}

func (m *MockProgressStore) PutProgress(profile string, doc store.Document) error {
	args := m.Called(profile, doc)
	return args.Error(0)
}

func (m *MockProgressStore) DeleteProgress(profile string) error {
	args := m.Called(profile)
	return args.Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}

// newMockedServer wires a server around the given stores
func newMockedServer(t *testing.T, apiToken string, progress store.ProgressStore, health store.HealthStore) *server.Server {
	t.Helper()
	cfg := &config.RecallKitConfig{
		BuildDir:       t.TempDir(),
		APIToken:       apiToken,
		APIBase:        "http://localhost:8502/api",
		MaxUploadBytes: config.DefaultMaxUploadBytes,
		ReviewLimit:    config.DefaultReviewLimit,
		BoxIntervals:   []string{"0s", "24h", "72h", "168h"},
	}

	srv, err := server.NewServer(cfg, deck.NewLibrary(cfg.BuildDir), progress, health, "127.0.0.1", "0")
	require.NoError(t, err)
	RegisterAll(srv)
	return srv
}
