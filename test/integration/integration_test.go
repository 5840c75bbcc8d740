package integration

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestRecallKitFeatures runs the godog features against a live RecallKit
// server backed by a PostgreSQL container.
func TestRecallKitFeatures(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("RecallKit integration features need Docker; set INTEGRATION_TEST=1 to run them.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tc, err := NewTestContext(ctx)
	if err != nil {
		t.Fatalf("Failed to start RecallKit test environment: %v", err)
	}
	defer tc.Close(ctx)

	suite := godog.TestSuite{
		Name: "recallkit",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			NewStepsContext(tc).RegisterSteps(sc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Tags:     "~@wip",
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("RecallKit feature suite failed")
	}
}
