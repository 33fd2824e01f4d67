// package tasks implements selection, preview resolution and submission.
package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolvePreviews Phase = iota
	Classify
	StorePayload
	Complete
)

func (p Phase) String() string {
	switch p {
	case ResolvePreviews:
		return "resolve_previews"
	case Classify:
		return "classify"
	case StorePayload:
		return "store_payload"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func previewResolvedUpdate(step, total int, name, url string) ProgressUpdate {
	msg := fmt.Sprintf("No preview for %s", name)
	if url != "" {
		msg = fmt.Sprintf("Preview found for %s", name)
	}
	return ProgressUpdate{Phase: ResolvePreviews, Step: step, Total: total, Message: msg, Data: url}
}

func classifyingUpdate(count int) ProgressUpdate {
	return ProgressUpdate{Phase: Classify, Step: 1, Total: 1, Message: fmt.Sprintf("Classifying %d tracks...", count)}
}

func storingUpdate(key string) ProgressUpdate {
	return ProgressUpdate{Phase: StorePayload, Step: 1, Total: 1, Message: fmt.Sprintf("Storing %s...", key)}
}

func completeUpdate(group string) ProgressUpdate {
	return ProgressUpdate{Phase: Complete, Step: 1, Total: 1, Message: fmt.Sprintf("Classified as %s", group), Data: group}
}
