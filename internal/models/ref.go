package models

// RefKind tags the variant of a Ref.
type RefKind int

const (
	RefBranch RefKind = iota
	RefTag
	RefRemoteHead
)

// Ref is a named pointer into history: a local branch, a tag or a remote head.
type Ref struct {
	Kind   RefKind
	Name   string // Short name, e.g. "main", "v1.0", "origin/main"
	Commit string
	Remote string // Only set for RefRemoteHead
}

// ShortCommit returns the abbreviated commit hash.
func (r Ref) ShortCommit() string {
	if len(r.Commit) > 8 {
		return r.Commit[:8]
	}
	return r.Commit
}
