package domain

// SyncReport records what a synchronization did.
// When the batch aborts, Applied holds the completed operations and Pending the rest,
// including the one that failed.
type SyncReport struct {
	Diff    DependencyDiff `json:"diff"`
	Applied []Operation    `json:"applied"`
	Pending []Operation    `json:"pending"`
}

// Complete reports whether every planned operation was applied.
func (r SyncReport) Complete() bool {
	return len(r.Pending) == 0
}

// OperationNames renders operations for error metadata.
func OperationNames(ops []Operation) []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}
	return names
}
