package pumlicons

import "context"

// Approver confirms destructive operations before they run.
//
// Implementations:
//   - ForcedApprover: announces the operation and approves (--force)
//   - InteractiveApprover: prompts the user to type "yes"
type Approver interface {
	// RequestApproval asks for confirmation before the listed files are overwritten.
	//
	// Returns true if approved, false if denied, and an error if the prompt
	// itself failed or ctx was cancelled.
	RequestApproval(ctx context.Context, files []string) (bool, error)
}
