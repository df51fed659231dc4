package status

import (
	"fmt"
	"strconv"
)

// FileStatus is the state of one side (index or worktree) of a path.
type FileStatus int

// File states, decoded from the XY letters of a status record.
const (
	StatusUnknown FileStatus = iota
	StatusUnmodified
	StatusModified
	StatusTypeChanged
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusCopied
	StatusUpdatedButUnmerged
	StatusUntracked
	StatusIgnored
)

//nolint:gochecknoglobals // Read-only lookup table
var fileStatusCodes = map[byte]FileStatus{
	'.': StatusUnmodified,
	'M': StatusModified,
	'T': StatusTypeChanged,
	'A': StatusAdded,
	'D': StatusDeleted,
	'R': StatusRenamed,
	'C': StatusCopied,
	'U': StatusUpdatedButUnmerged,
	'?': StatusUntracked,
	'!': StatusIgnored,
}

//nolint:gochecknoglobals // Read-only lookup table
var fileStatusNames = map[FileStatus]string{
	StatusUnknown:            "unknown",
	StatusUnmodified:         "unmodified",
	StatusModified:           "modified",
	StatusTypeChanged:        "type_changed",
	StatusAdded:              "added",
	StatusDeleted:            "deleted",
	StatusRenamed:            "renamed",
	StatusCopied:             "copied",
	StatusUpdatedButUnmerged: "updated_but_unmerged",
	StatusUntracked:          "untracked",
	StatusIgnored:            "ignored",
}

// ParseFileStatus decodes a single status letter. Unrecognized letters
// decode to StatusUnknown.
func ParseFileStatus(code byte) FileStatus {
	if s, ok := fileStatusCodes[code]; ok {
		return s
	}
	return StatusUnknown
}

// String returns the snake_case name of the status.
func (s FileStatus) String() string {
	if name, ok := fileStatusNames[s]; ok {
		return name
	}
	return fileStatusNames[StatusUnknown]
}

// Code returns the letter git uses for the status, or a space for
// StatusUnknown.
func (s FileStatus) Code() byte {
	for code, status := range fileStatusCodes {
		if status == s {
			return code
		}
	}
	return ' '
}

// ConflictType names the kind of merge conflict an unmerged record reports.
type ConflictType int

// Conflict kinds, decoded from the two-letter XY code of an unmerged record.
const (
	ConflictUnknown ConflictType = iota
	ConflictBothDeleted
	ConflictAddedByUs
	ConflictDeletedByThem
	ConflictAddedByThem
	ConflictDeletedByUs
	ConflictBothAdded
	ConflictBothModified
)

//nolint:gochecknoglobals // Read-only lookup table
var conflictCodes = map[string]ConflictType{
	"DD": ConflictBothDeleted,
	"AU": ConflictAddedByUs,
	"UD": ConflictDeletedByThem,
	"UA": ConflictAddedByThem,
	"DU": ConflictDeletedByUs,
	"AA": ConflictBothAdded,
	"UU": ConflictBothModified,
}

//nolint:gochecknoglobals // Read-only lookup table
var conflictNames = map[ConflictType]string{
	ConflictUnknown:       "unknown",
	ConflictBothDeleted:   "both_deleted",
	ConflictAddedByUs:     "added_by_us",
	ConflictDeletedByThem: "deleted_by_them",
	ConflictAddedByThem:   "added_by_them",
	ConflictDeletedByUs:   "deleted_by_us",
	ConflictBothAdded:     "both_added",
	ConflictBothModified:  "both_modified",
}

// ParseConflictType decodes a two-letter conflict code. Unrecognized codes
// decode to ConflictUnknown.
func ParseConflictType(code string) ConflictType {
	if c, ok := conflictCodes[code]; ok {
		return c
	}
	return ConflictUnknown
}

// String returns the snake_case name of the conflict kind.
func (c ConflictType) String() string {
	if name, ok := conflictNames[c]; ok {
		return name
	}
	return conflictNames[ConflictUnknown]
}

// Operation is the change detected for a renamed-family record.
type Operation byte

// Renamed-family operations.
const (
	OperationRename Operation = 'R'
	OperationCopy   Operation = 'C'
)

func parseOperation(code byte) (Operation, bool) {
	switch op := Operation(code); op {
	case OperationRename, OperationCopy:
		return op, true
	default:
		return 0, false
	}
}

func (o Operation) String() string {
	switch o {
	case OperationRename:
		return "rename"
	case OperationCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// FileMode is a git object mode, written in octal on the wire.
type FileMode uint32

// Modes git reports for tracked paths.
const (
	ModeAbsent     FileMode = 0
	ModeDir        FileMode = 0o040000
	ModeRegular    FileMode = 0o100644
	ModeExecutable FileMode = 0o100755
	ModeSymlink    FileMode = 0o120000
	ModeGitlink    FileMode = 0o160000
)

// ParseFileMode decodes an octal mode field such as "100644".
func ParseFileMode(s string) (FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	return FileMode(v), nil
}

// String renders the mode as six octal digits, the way git prints it.
func (m FileMode) String() string {
	return fmt.Sprintf("%06o", uint32(m))
}
