package domain

import (
	"fmt"
	"slices"
	"strings"
)

// OperationKind is the kind of change applied to the managed environment.
type OperationKind string

const (
	// OpInstall installs a package that is absent.
	OpInstall OperationKind = "install"
	// OpRemove removes a package that is not in the lock file.
	OpRemove OperationKind = "remove"
	// OpUpgrade replaces an installed version with the locked one.
	OpUpgrade OperationKind = "upgrade"
)

// Operation is a single package change.
type Operation struct {
	Kind        OperationKind `json:"kind"`
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	FromVersion string        `json:"fromVersion,omitempty"`
}

// String renders the operation for logs and reports.
func (o Operation) String() string {
	switch o.Kind {
	case OpUpgrade:
		return fmt.Sprintf("upgrade %s %s -> %s", o.Name, o.FromVersion, o.Version)
	case OpRemove, OpInstall:
		return fmt.Sprintf("%s %s==%s", o.Kind, o.Name, o.Version)
	default:
		return fmt.Sprintf("%s %s", o.Kind, o.Name)
	}
}

// Upgrade pairs an installed package with the lock entry replacing it.
type Upgrade struct {
	From InstalledPackage `json:"from"`
	To   LockEntry        `json:"to"`
}

// DependencyDiff is the set of changes that makes the installed set match the lock.
// It is derived and recomputed on every synchronization.
type DependencyDiff struct {
	ToInstall []LockEntry        `json:"toInstall"`
	ToRemove  []InstalledPackage `json:"toRemove"`
	ToUpgrade []Upgrade          `json:"toUpgrade"`

	// order keeps lock order across installs and upgrades.
	order []Operation
}

// Empty reports whether the installed set already matches.
func (d DependencyDiff) Empty() bool {
	return len(d.ToInstall) == 0 && len(d.ToRemove) == 0 && len(d.ToUpgrade) == 0
}

// Operations returns the changes in application order: removals first, then upgrades and
// installs in lock order.
func (d DependencyDiff) Operations() []Operation {
	ops := make([]Operation, 0, len(d.ToRemove)+len(d.order))
	for _, p := range d.ToRemove {
		ops = append(ops, Operation{Kind: OpRemove, Name: p.Name, Version: p.Version})
	}
	if d.order != nil {
		return append(ops, d.order...)
	}
	for _, u := range d.ToUpgrade {
		ops = append(ops, Operation{Kind: OpUpgrade, Name: u.To.Name, Version: u.To.Version, FromVersion: u.From.Version})
	}
	for _, e := range d.ToInstall {
		ops = append(ops, Operation{Kind: OpInstall, Name: e.Name, Version: e.Version})
	}
	return ops
}

// FilterEntries returns the entries in scope for the requested groups, in lock order.
// Base entries are always in scope. Grouped entries are in scope when any of their groups
// is requested. An empty request selects the base entries only.
func FilterEntries(entries []LockEntry, groups []string) []LockEntry {
	filtered := make([]LockEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsBase() || e.InGroups(groups) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ComputeDiff compares the filtered lock entries with the installed set.
// In strict mode installed packages outside the filtered set are scheduled for removal,
// except the packaging tools the environment was created with.
func ComputeDiff(lock *Lockfile, installed []InstalledPackage, groups []string, strict bool) DependencyDiff {
	var entries []LockEntry
	if lock != nil {
		entries = FilterEntries(lock.Entries, groups)
	}

	byKey := make(map[InternedString]InstalledPackage, len(installed))
	for _, p := range installed {
		byKey[p.Key()] = p
	}

	diff := DependencyDiff{
		ToInstall: []LockEntry{},
		ToRemove:  []InstalledPackage{},
		ToUpgrade: []Upgrade{},
		order:     []Operation{},
	}

	wanted := make(map[InternedString]struct{}, len(entries))
	for _, e := range entries {
		key := e.Key()
		wanted[key] = struct{}{}

		current, ok := byKey[key]
		switch {
		case !ok:
			diff.ToInstall = append(diff.ToInstall, e)
			diff.order = append(diff.order, Operation{Kind: OpInstall, Name: e.Name, Version: e.Version})
		case current.Version != e.Version:
			diff.ToUpgrade = append(diff.ToUpgrade, Upgrade{From: current, To: e})
			diff.order = append(diff.order, Operation{
				Kind:        OpUpgrade,
				Name:        e.Name,
				Version:     e.Version,
				FromVersion: current.Version,
			})
		}
	}

	if strict {
		for _, p := range installed {
			if _, ok := wanted[p.Key()]; !ok && !IsToolingPackage(p.Name) {
				diff.ToRemove = append(diff.ToRemove, p)
			}
		}
		slices.SortFunc(diff.ToRemove, func(a, b InstalledPackage) int {
			return strings.Compare(NormalizeName(a.Name), NormalizeName(b.Name))
		})
	}

	return diff
}
