package status

// Kind identifies the record type an Entry was parsed from.
type Kind string

// Entry kinds.
const (
	KindOrdinary  Kind = "ordinary"
	KindRenamed   Kind = "renamed"
	KindUnmerged  Kind = "unmerged"
	KindUntracked Kind = "untracked"
	KindIgnored   Kind = "ignored"
)

// Entry is one path reported by git status. The concrete types are
// OrdinaryEntry, RenamedEntry, UnmergedEntry, UntrackedEntry and
// IgnoredEntry; the set is closed.
type Entry interface {
	Kind() Kind
	Path() string
	IndexStatus() FileStatus
	WorktreeStatus() FileStatus

	IsIgnored() bool
	IsUntracked() bool
	// IsUnstaged reports a pending worktree-side change.
	IsUnstaged() bool
	// IsStaged reports a pending index-side change.
	IsStaged() bool
	// IsFullyStaged reports a staged change with nothing left in the worktree.
	IsFullyStaged() bool
	IsUnmerged() bool

	isEntry()
}

// Submodule is the dirty state of a submodule entry.
type Submodule struct {
	CommitChanged    bool `json:"commit_changed" yaml:"commit_changed"`
	TrackedChanges   bool `json:"tracked_changes" yaml:"tracked_changes"`
	UntrackedChanges bool `json:"untracked_changes" yaml:"untracked_changes"`
}

// String renders the submodule token as git writes it, e.g. "SC.U".
func (s Submodule) String() string {
	token := []byte("S...")
	if s.CommitChanged {
		token[1] = 'C'
	}
	if s.TrackedChanges {
		token[2] = 'M'
	}
	if s.UntrackedChanges {
		token[3] = 'U'
	}
	return string(token)
}

// change holds the XY pair shared by tracked-path records.
type change struct {
	path     string
	index    FileStatus
	worktree FileStatus
}

func (c change) Path() string               { return c.path }
func (c change) IndexStatus() FileStatus    { return c.index }
func (c change) WorktreeStatus() FileStatus { return c.worktree }
func (c change) IsIgnored() bool            { return false }
func (c change) IsUntracked() bool          { return false }
func (c change) IsUnstaged() bool           { return c.worktree != StatusUnmodified }
func (c change) IsStaged() bool             { return c.index != StatusUnmodified }
func (c change) IsFullyStaged() bool        { return c.IsStaged() && !c.IsUnstaged() }

func copySubmodule(s *Submodule) *Submodule {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

// OrdinaryEntry is a changed tracked path ("1" record).
type OrdinaryEntry struct {
	change

	submodule    *Submodule
	headMode     FileMode
	indexMode    FileMode
	worktreeMode FileMode
	headOID      string
	indexOID     string
}

func (OrdinaryEntry) isEntry() {}

// Kind returns KindOrdinary.
func (OrdinaryEntry) Kind() Kind { return KindOrdinary }

// IsUnmerged returns false.
func (OrdinaryEntry) IsUnmerged() bool { return false }

// Submodule returns the submodule state, or nil when the path is not a
// submodule.
func (e OrdinaryEntry) Submodule() *Submodule { return copySubmodule(e.submodule) }

// HeadMode returns the mode in HEAD.
func (e OrdinaryEntry) HeadMode() FileMode { return e.headMode }

// IndexMode returns the mode in the index.
func (e OrdinaryEntry) IndexMode() FileMode { return e.indexMode }

// WorktreeMode returns the mode in the worktree.
func (e OrdinaryEntry) WorktreeMode() FileMode { return e.worktreeMode }

// HeadOID returns the object name in HEAD.
func (e OrdinaryEntry) HeadOID() string { return e.headOID }

// IndexOID returns the object name in the index.
func (e OrdinaryEntry) IndexOID() string { return e.indexOID }

// RenamedEntry is a renamed or copied tracked path ("2" record).
type RenamedEntry struct {
	OrdinaryEntry

	operation    Operation
	score        int
	originalPath string
}

// Kind returns KindRenamed.
func (RenamedEntry) Kind() Kind { return KindRenamed }

// Operation returns whether git detected a rename or a copy.
func (e RenamedEntry) Operation() Operation { return e.operation }

// Score returns the similarity percentage between the two paths.
func (e RenamedEntry) Score() int { return e.score }

// OriginalPath returns the path in HEAD or the index before the rename.
func (e RenamedEntry) OriginalPath() string { return e.originalPath }

// UnmergedEntry is a path with a merge conflict ("u" record).
type UnmergedEntry struct {
	change

	conflict     ConflictType
	submodule    *Submodule
	baseMode     FileMode
	ourMode      FileMode
	theirMode    FileMode
	worktreeMode FileMode
	baseOID      string
	ourOID       string
	theirOID     string
}

func (UnmergedEntry) isEntry() {}

// Kind returns KindUnmerged.
func (UnmergedEntry) Kind() Kind { return KindUnmerged }

// IsUnmerged returns true.
func (UnmergedEntry) IsUnmerged() bool { return true }

// Conflict returns the conflict kind.
func (e UnmergedEntry) Conflict() ConflictType { return e.conflict }

// Submodule returns the submodule state, or nil when the path is not a
// submodule.
func (e UnmergedEntry) Submodule() *Submodule { return copySubmodule(e.submodule) }

// BaseMode returns the mode in stage 1.
func (e UnmergedEntry) BaseMode() FileMode { return e.baseMode }

// OurMode returns the mode in stage 2.
func (e UnmergedEntry) OurMode() FileMode { return e.ourMode }

// TheirMode returns the mode in stage 3.
func (e UnmergedEntry) TheirMode() FileMode { return e.theirMode }

// WorktreeMode returns the mode in the worktree.
func (e UnmergedEntry) WorktreeMode() FileMode { return e.worktreeMode }

// BaseOID returns the object name in stage 1.
func (e UnmergedEntry) BaseOID() string { return e.baseOID }

// OurOID returns the object name in stage 2.
func (e UnmergedEntry) OurOID() string { return e.ourOID }

// TheirOID returns the object name in stage 3.
func (e UnmergedEntry) TheirOID() string { return e.theirOID }

// UntrackedEntry is a path git does not track ("?" record).
type UntrackedEntry struct {
	path string
}

func (UntrackedEntry) isEntry()                   {}
func (UntrackedEntry) Kind() Kind                 { return KindUntracked }
func (e UntrackedEntry) Path() string             { return e.path }
func (UntrackedEntry) IndexStatus() FileStatus    { return StatusUntracked }
func (UntrackedEntry) WorktreeStatus() FileStatus { return StatusUntracked }
func (UntrackedEntry) IsIgnored() bool            { return false }
func (UntrackedEntry) IsUntracked() bool          { return true }
func (UntrackedEntry) IsUnstaged() bool           { return true }
func (UntrackedEntry) IsStaged() bool             { return false }
func (UntrackedEntry) IsFullyStaged() bool        { return false }
func (UntrackedEntry) IsUnmerged() bool           { return false }

// IgnoredEntry is a path matched by an ignore rule ("!" record).
type IgnoredEntry struct {
	path string
}

func (IgnoredEntry) isEntry()                   {}
func (IgnoredEntry) Kind() Kind                 { return KindIgnored }
func (e IgnoredEntry) Path() string             { return e.path }
func (IgnoredEntry) IndexStatus() FileStatus    { return StatusIgnored }
func (IgnoredEntry) WorktreeStatus() FileStatus { return StatusIgnored }
func (IgnoredEntry) IsIgnored() bool            { return true }
func (IgnoredEntry) IsUntracked() bool          { return false }
func (IgnoredEntry) IsUnstaged() bool           { return false }
func (IgnoredEntry) IsStaged() bool             { return false }
func (IgnoredEntry) IsFullyStaged() bool        { return false }
func (IgnoredEntry) IsUnmerged() bool           { return false }

// compile-time interface checks
var (
	_ Entry = OrdinaryEntry{}
	_ Entry = RenamedEntry{}
	_ Entry = UnmergedEntry{}
	_ Entry = UntrackedEntry{}
	_ Entry = IgnoredEntry{}
)
