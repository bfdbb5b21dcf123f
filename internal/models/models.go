// Package models defines the data objects shared across lazyscm packages.
package models

import (
	"fmt"
	"path/filepath"
)

// ContentKind tells a content provider where a Reference is read from.
type ContentKind int

const (
	// ContentWorking is the live file on disk.
	ContentWorking ContentKind = iota
	// ContentHistorical is a read-only view of a file at a revision.
	ContentHistorical
)

// CheckoutParent is the revision token for the parent of the current checkout.
const CheckoutParent = "."

// Reference addresses one version of a file's content.
type Reference struct {
	Kind     ContentKind
	Path     string
	Revision string // Only set for ContentHistorical
}

// HistoricalRef returns a read-only reference to path as recorded at rev.
func HistoricalRef(path, rev string) Reference {
	return Reference{Kind: ContentHistorical, Path: path, Revision: rev}
}

// WorkingRef returns a reference to the on-disk content of path.
func WorkingRef(path string) Reference {
	return Reference{Kind: ContentWorking, Path: path}
}

func (r Reference) String() string {
	if r.Kind == ContentHistorical {
		return fmt.Sprintf("git:%s@%s", r.Path, r.Revision)
	}
	return "file:" + r.Path
}

// GroupKind identifies a resource group.
type GroupKind int

const (
	GroupMerge GroupKind = iota
	GroupIndex
	GroupWorkingTree
)

// Label returns the display name of the group.
func (g GroupKind) Label() string {
	switch g {
	case GroupMerge:
		return "Merge Changes"
	case GroupIndex:
		return "Staged Changes"
	default:
		return "Changes"
	}
}

// Resource is one file tracked as changed by the repository model.
type Resource struct {
	Path     string // Relative to the repository root
	OrigPath string // Source path for renames and copies
	Status   Status
	Group    GroupKind
}

// Basename returns the last element of the resource path.
func (r *Resource) Basename() string {
	return filepath.Base(r.Path)
}

// Original returns the last committed content of the resource.
func (r *Resource) Original() Reference {
	return HistoricalRef(r.Path, CheckoutParent)
}

// Current returns the on-disk content of the resource.
func (r *Resource) Current() Reference {
	return WorkingRef(r.Path)
}

// ResourceGroup is an ordered bucket of resources sharing action eligibility.
type ResourceGroup struct {
	Kind      GroupKind
	Resources []*Resource
}

// Label returns the display name of the group.
func (g ResourceGroup) Label() string {
	return g.Kind.Label()
}

// Empty reports whether the group holds no resources.
func (g ResourceGroup) Empty() bool {
	return len(g.Resources) == 0
}

// HasCommittable reports whether the group holds a resource other than an
// ignored file.
func (g ResourceGroup) HasCommittable() bool {
	for _, r := range g.Resources {
		if r.Status != StatusIgnored {
			return true
		}
	}
	return false
}

// Paths returns the resource paths in group order.
func (g ResourceGroup) Paths() []string {
	paths := make([]string, 0, len(g.Resources))
	for _, r := range g.Resources {
		paths = append(paths, r.Path)
	}
	return paths
}

// CommitOptions narrows what an engine commit includes.
type CommitOptions struct {
	All bool // Commit all working tree changes, not only staged ones
}

// CommitIntent is the transient value handed to the engine's commit.
type CommitIntent struct {
	Message  string
	ScopeAll bool
}

// FileStatus is one raw porcelain entry reported by the engine.
type FileStatus struct {
	Path     string
	OrigPath string
	X        byte // Index side
	Y        byte // Working tree side
}

// Snapshot is the engine's view of the working copy at one point in time.
type Snapshot struct {
	HEAD    *Ref
	Refs    []Ref
	Remotes []string
	Files   []FileStatus
}

const (
	// CommandPaletteHistoryFilename stores command palette usage history for MRU sorting.
	CommandPaletteHistoryFilename = ".command-palette-history.json"
)
