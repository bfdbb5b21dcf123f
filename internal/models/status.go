package models

// Status classifies a changed resource. The set is closed: every status a
// resource can carry is listed here.
type Status int

// Status values assigned per resource by the repository model.
const (
	StatusClean Status = iota
	StatusAdded
	StatusDeleted
	StatusModified
	StatusUntracked
	StatusIgnored
)

// String returns the upper-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "ADDED"
	case StatusDeleted:
		return "DELETED"
	case StatusModified:
		return "MODIFIED"
	case StatusUntracked:
		return "UNTRACKED"
	case StatusIgnored:
		return "IGNORED"
	default:
		return "CLEAN"
	}
}

// Letter returns the single-letter decoration used in listings.
func (s Status) Letter() string {
	switch s {
	case StatusAdded:
		return "A"
	case StatusDeleted:
		return "D"
	case StatusModified:
		return "M"
	case StatusUntracked:
		return "U"
	case StatusIgnored:
		return "I"
	default:
		return " "
	}
}

// ParseStatus maps one side of a git porcelain XY code to a Status.
func ParseStatus(code byte) Status {
	switch code {
	case '?':
		return StatusUntracked
	case '!':
		return StatusIgnored
	case 'A':
		return StatusAdded
	case 'D':
		return StatusDeleted
	case 'M', 'R', 'C', 'T', 'U':
		return StatusModified
	default:
		return StatusClean
	}
}
