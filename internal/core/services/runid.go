package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/insight-scraper/internal/core/ports/driven"
)

// Ensure RunIDs implements the interface.
var _ driven.RunIDGenerator = (*RunIDs)(nil)

// RunIDs generates "run_<unix seconds>_<8 hex>" identifiers. The random
// suffix keeps ids unique when runs start within the same second.
type RunIDs struct {
	now func() time.Time
}

// NewRunIDs creates a generator backed by the wall clock.
func NewRunIDs() *RunIDs {
	return &RunIDs{now: time.Now}
}

// NewRunID returns a fresh run id.
func (g *RunIDs) NewRunID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("run_%d_%s", g.now().Unix(), suffix)
}
