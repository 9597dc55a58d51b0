package resolve

// DuplicateTracker remembers the identifiers seen in one generation run.
// Primary and secondary identifiers are tracked independently. Not safe for
// concurrent use.
type DuplicateTracker struct {
	primary   map[string]struct{}
	secondary map[string]struct{}
}

// NewDuplicateTracker creates an empty tracker.
func NewDuplicateTracker() *DuplicateTracker {
	return &DuplicateTracker{
		primary:   make(map[string]struct{}),
		secondary: make(map[string]struct{}),
	}
}

// SeePrimary records id and reports whether it was seen before.
func (t *DuplicateTracker) SeePrimary(id string) bool {
	return see(t.primary, id)
}

// SeeSecondary records id and reports whether it was seen before.
// Empty identifiers are never duplicates.
func (t *DuplicateTracker) SeeSecondary(id string) bool {
	if id == "" {
		return false
	}
	return see(t.secondary, id)
}

func see(seen map[string]struct{}, id string) bool {
	if _, ok := seen[id]; ok {
		return true
	}
	seen[id] = struct{}{}
	return false
}
