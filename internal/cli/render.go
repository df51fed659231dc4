package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mrz1836/gitrun/internal/status"
)

// renderReport writes a short-format listing of r: one line per entry with
// the XY code and the path, preceded by branch and stash lines unless
// quiet is set.
func renderReport(w io.Writer, r *status.Report, st styles, quiet bool) error {
	var b strings.Builder

	if !quiet {
		writeBranchLines(&b, r.Branch(), r.Stash(), st)
	}

	entries := r.Entries()
	width := 0
	for _, e := range entries {
		width = max(width, runewidth.StringWidth(e.Path()))
	}

	for _, e := range entries {
		path := e.Path()
		if note := entryNote(e); note != "" {
			path = runewidth.FillRight(path, width) + "  " + st.muted.Render(note)
		}
		fmt.Fprintf(&b, "%s %s\n", renderCode(e, st), path)
	}

	if !quiet && r.IsClean() {
		b.WriteString(st.muted.Render("nothing to commit, working tree clean") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBranchLines(b *strings.Builder, branch *status.Branch, stash status.Stash, st styles) {
	if branch != nil {
		switch {
		case branch.IsDetached() && branch.OID != "":
			fmt.Fprintf(b, "HEAD detached at %s\n", st.branch.Render(shortOID(branch.OID)))
		case branch.IsDetached():
			b.WriteString("HEAD detached\n")
		case branch.IsInitial():
			fmt.Fprintf(b, "No commits yet on %s\n", st.branch.Render(branch.Name))
		default:
			fmt.Fprintf(b, "On branch %s\n", st.branch.Render(branch.Name))
		}
		if branch.HasUpstream() {
			fmt.Fprintf(b, "Tracking %s%s\n", branch.Upstream, aheadBehind(branch))
		}
	}
	if stash.Count > 0 {
		word := "entries"
		if stash.Count == 1 {
			word = "entry"
		}
		fmt.Fprintf(b, "Stash: %d %s\n", stash.Count, word)
	}
}

func aheadBehind(branch *status.Branch) string {
	var parts []string
	if branch.Ahead > 0 {
		parts = append(parts, fmt.Sprintf("ahead %d", branch.Ahead))
	}
	if branch.Behind > 0 {
		parts = append(parts, fmt.Sprintf("behind %d", branch.Behind))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

// renderCode colors the index letter as staged and the worktree letter as
// unstaged, the way git status --short does.
func renderCode(e status.Entry, st styles) string {
	x := string(e.IndexStatus().Code())
	y := string(e.WorktreeStatus().Code())

	switch {
	case e.IsUnmerged():
		return st.conflict.Render(x + y)
	case e.IsIgnored(), e.IsUntracked():
		return st.muted.Render(x + y)
	}
	return styleIf(e.IsStaged(), st.staged, x) + styleIf(e.IsUnstaged(), st.unstaged, y)
}

func styleIf(ok bool, style lipgloss.Style, s string) string {
	if !ok {
		return s
	}
	return style.Render(s)
}

// entryNote returns the trailing annotation for entries that carry more
// than a path.
func entryNote(e status.Entry) string {
	var notes []string
	switch v := e.(type) {
	case status.RenamedEntry:
		notes = append(notes, fmt.Sprintf("<- %s (%s%d)", v.OriginalPath(), string(byte(v.Operation())), v.Score()))
		if sub := v.Submodule(); sub != nil {
			notes = append(notes, sub.String())
		}
	case status.OrdinaryEntry:
		if sub := v.Submodule(); sub != nil {
			notes = append(notes, sub.String())
		}
	case status.UnmergedEntry:
		notes = append(notes, v.Conflict().String())
		if sub := v.Submodule(); sub != nil {
			notes = append(notes, sub.String())
		}
	}
	return strings.Join(notes, " ")
}

func shortOID(oid string) string {
	const n = 7
	if len(oid) <= n {
		return oid
	}
	return oid[:n]
}
