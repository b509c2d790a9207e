package workflow

import (
	"time"

	"github.com/google/uuid"
)

// Check verifies the structural shape of a workflow record at the boundary,
// before it reaches the engine: metadata with a non-empty id and present
// node/edge/port collections. It returns one message per violation; an empty
// slice means the record is structurally sound.
//
// Semantic graph validation (dangling endpoints, cycles) is the job of the
// graph validator, not this guard.
func Check(wf *Workflow) []string {
	if wf == nil {
		return []string{"workflow is required"}
	}

	var errs []string
	if wf.Metadata.ID == "" {
		errs = append(errs, "workflow metadata.id is required")
	}
	if wf.Nodes == nil {
		errs = append(errs, "workflow nodes must be an array")
	}
	if wf.Edges == nil {
		errs = append(errs, "workflow edges must be an array")
	}
	if wf.Ports == nil {
		errs = append(errs, "workflow ports must be an array")
	}
	return errs
}

// Normalize fills in the pieces a freshly submitted definition may omit:
// a generated id, created/updated timestamps, and non-nil collections.
func Normalize(wf *Workflow) {
	if wf == nil {
		return
	}
	if wf.Metadata.ID == "" {
		wf.Metadata.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if wf.Metadata.CreatedAt.IsZero() {
		wf.Metadata.CreatedAt = now
	}
	wf.Metadata.UpdatedAt = now

	if wf.Nodes == nil {
		wf.Nodes = []Node{}
	}
	if wf.Edges == nil {
		wf.Edges = []Edge{}
	}
	if wf.Ports == nil {
		wf.Ports = []Port{}
	}
}
