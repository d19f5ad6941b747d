package notify

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies the registry never leaks goroutines: delivery is
// synchronous on the publisher's goroutine, so nothing should outlive
// a test.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
