package status

// Summary is a serializable view of a Report.
type Summary struct {
	Branch   *Branch        `json:"branch,omitempty" yaml:"branch,omitempty"`
	Stash    int            `json:"stash" yaml:"stash"`
	Clean    bool           `json:"clean" yaml:"clean"`
	Conflict bool           `json:"merge_conflict" yaml:"merge_conflict"`
	Counts   Counts         `json:"counts" yaml:"counts"`
	Entries  []EntrySummary `json:"entries" yaml:"entries"`
}

// Counts holds the size of each Report view.
type Counts struct {
	Staged      int `json:"staged" yaml:"staged"`
	FullyStaged int `json:"fully_staged" yaml:"fully_staged"`
	Unstaged    int `json:"unstaged" yaml:"unstaged"`
	Untracked   int `json:"untracked" yaml:"untracked"`
	Ignored     int `json:"ignored" yaml:"ignored"`
	Unmerged    int `json:"unmerged" yaml:"unmerged"`
}

// EntrySummary flattens one Entry.
type EntrySummary struct {
	Kind         Kind       `json:"kind" yaml:"kind"`
	Path         string     `json:"path" yaml:"path"`
	OriginalPath string     `json:"original_path,omitempty" yaml:"original_path,omitempty"`
	Index        string     `json:"index" yaml:"index"`
	Worktree     string     `json:"worktree" yaml:"worktree"`
	Operation    string     `json:"operation,omitempty" yaml:"operation,omitempty"`
	Score        int        `json:"score,omitempty" yaml:"score,omitempty"`
	Conflict     string     `json:"conflict,omitempty" yaml:"conflict,omitempty"`
	Submodule    *Submodule `json:"submodule,omitempty" yaml:"submodule,omitempty"`
}

// Summary builds a Summary of r.
func (r *Report) Summary() Summary {
	s := Summary{
		Branch:   r.Branch(),
		Stash:    r.stash.Count,
		Clean:    r.IsClean(),
		Conflict: r.HasMergeConflict(),
		Counts: Counts{
			Staged:      len(r.Staged()),
			FullyStaged: len(r.FullyStaged()),
			Unstaged:    len(r.Unstaged()),
			Untracked:   len(r.Untracked()),
			Ignored:     len(r.Ignored()),
			Unmerged:    len(r.Unmerged()),
		},
		Entries: make([]EntrySummary, 0, len(r.entries)),
	}
	for _, e := range r.entries {
		s.Entries = append(s.Entries, summarize(e))
	}
	return s
}

func summarize(e Entry) EntrySummary {
	es := EntrySummary{
		Kind:     e.Kind(),
		Path:     e.Path(),
		Index:    e.IndexStatus().String(),
		Worktree: e.WorktreeStatus().String(),
	}
	switch v := e.(type) {
	case OrdinaryEntry:
		es.Submodule = v.Submodule()
	case RenamedEntry:
		es.Submodule = v.Submodule()
		es.OriginalPath = v.OriginalPath()
		es.Operation = v.Operation().String()
		es.Score = v.Score()
	case UnmergedEntry:
		es.Submodule = v.Submodule()
		es.Conflict = v.Conflict().String()
	}
	return es
}
