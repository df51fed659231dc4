package status

// Report is the parsed result of one git status invocation. It is not
// modified after Parse returns; views are recomputed on each call.
type Report struct {
	branch  *Branch
	stash   Stash
	entries []Entry
}

// Branch returns a copy of the branch state, or nil when the output
// carried no branch headers.
func (r *Report) Branch() *Branch {
	if r.branch == nil {
		return nil
	}
	b := *r.branch
	return &b
}

// Stash returns the stash state. Count is 0 when no stash header was seen.
func (r *Report) Stash() Stash { return r.stash }

// Entries returns every entry in input order.
func (r *Report) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Report) Len() int { return len(r.entries) }

func (r *Report) filter(keep func(Entry) bool) []Entry {
	out := []Entry{}
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Ignored returns the ignored paths.
func (r *Report) Ignored() []Entry { return r.filter(Entry.IsIgnored) }

// Untracked returns the untracked paths.
func (r *Report) Untracked() []Entry { return r.filter(Entry.IsUntracked) }

// Unstaged returns entries with worktree changes, untracked paths included.
func (r *Report) Unstaged() []Entry { return r.filter(Entry.IsUnstaged) }

// Staged returns entries with index changes.
func (r *Report) Staged() []Entry { return r.filter(Entry.IsStaged) }

// FullyStaged returns staged entries with no remaining worktree changes.
func (r *Report) FullyStaged() []Entry { return r.filter(Entry.IsFullyStaged) }

// Unmerged returns the conflicted entries.
func (r *Report) Unmerged() []UnmergedEntry {
	out := []UnmergedEntry{}
	for _, e := range r.entries {
		if u, ok := e.(UnmergedEntry); ok {
			out = append(out, u)
		}
	}
	return out
}

// HasMergeConflict reports whether any entry is unmerged.
func (r *Report) HasMergeConflict() bool {
	for _, e := range r.entries {
		if e.IsUnmerged() {
			return true
		}
	}
	return false
}

// IsClean reports whether there is nothing to commit and nothing
// untracked. Ignored paths do not count.
func (r *Report) IsClean() bool {
	for _, e := range r.entries {
		if !e.IsIgnored() {
			return false
		}
	}
	return true
}
