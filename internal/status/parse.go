// Package status parses the output of
// `git status --porcelain=v2 --branch --show-stash -z` into a Report.
//
// Records are NUL-terminated. Rename and copy records carry a second
// NUL-terminated segment holding the original path.
package status

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mrz1836/gitrun/internal/errors"
)

// Header values git uses for missing branch state.
const (
	detachedHead = "(detached)"
	initialOID   = "(initial)"
)

// Field counts per record type, path included.
const (
	ordinaryFields = 9
	renamedFields  = 10
	unmergedFields = 11
)

// Parse converts porcelain v2 output, as produced with -z, into a Report.
// Unknown headers are ignored and unknown status or conflict codes decode
// to their Unknown values. A record with an unrecognized leading character
// fails with ErrUnknownStatusRecord; a record with missing or undecodable
// fields fails with ErrMalformedStatusRecord.
func Parse(output string) (*Report, error) {
	records, err := splitRecords(output)
	if err != nil {
		return nil, err
	}

	b := &builder{}
	for i, rec := range records {
		if err := b.add(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return b.report(), nil
}

// splitRecords splits output on NUL and rejoins each rename or copy record
// with the original-path segment that follows it.
func splitRecords(output string) ([]string, error) {
	segments := strings.Split(output, "\x00")
	records := make([]string, 0, len(segments))
	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		if seg == "" {
			continue
		}
		if seg[0] == '2' {
			if i+1 >= len(segments) || segments[i+1] == "" {
				return nil, fmt.Errorf("%w: rename record without original path: %q",
					errors.ErrMalformedStatusRecord, seg)
			}
			seg += "\x00" + segments[i+1]
			i++
		}
		records = append(records, seg)
	}
	return records, nil
}

// builder accumulates parse state; report freezes it.
type builder struct {
	branch     Branch
	seenBranch bool
	stash      Stash
	entries    []Entry
}

func (b *builder) report() *Report {
	r := &Report{stash: b.stash, entries: b.entries}
	if b.seenBranch {
		branch := b.branch
		r.branch = &branch
	}
	return r
}

func (b *builder) add(rec string) error {
	var (
		entry Entry
		err   error
	)
	switch rec[0] {
	case '#':
		return b.header(rec)
	case '1':
		entry, err = parseOrdinary(rec)
	case '2':
		entry, err = parseRenamed(rec)
	case 'u':
		entry, err = parseUnmerged(rec)
	case '?':
		entry, err = parsePathOnly(rec, func(p string) Entry { return UntrackedEntry{path: p} })
	case '!':
		entry, err = parsePathOnly(rec, func(p string) Entry { return IgnoredEntry{path: p} })
	default:
		return fmt.Errorf("%w: leading character %q", errors.ErrUnknownStatusRecord, rec[0])
	}
	if err != nil {
		return err
	}
	b.entries = append(b.entries, entry)
	return nil
}

// header applies a "# <name> <value>" record. Unknown names are ignored.
func (b *builder) header(rec string) error {
	fields := strings.SplitN(rec, " ", 3)
	if len(fields) < 2 || fields[0] != "#" {
		return malformed("header", rec)
	}
	name := fields[1]
	value := ""
	if len(fields) == 3 {
		value = fields[2]
	}

	switch name {
	case "branch.head":
		b.seenBranch = true
		if value == detachedHead {
			value = ""
		}
		b.branch.Name = value
	case "branch.oid":
		b.seenBranch = true
		if value == initialOID {
			value = ""
		}
		b.branch.OID = value
	case "branch.upstream":
		b.seenBranch = true
		b.branch.Upstream = value
	case "branch.ab":
		ahead, behind, err := parseAheadBehind(value)
		if err != nil {
			return malformed("branch.ab header", rec)
		}
		b.seenBranch = true
		b.branch.Ahead = ahead
		b.branch.Behind = behind
	case "stash":
		count, err := strconv.Atoi(value)
		if err != nil || count < 0 {
			return malformed("stash header", rec)
		}
		b.stash.Count = count
	}
	return nil
}

// parseAheadBehind decodes "+N -M".
func parseAheadBehind(value string) (int, int, error) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "+") || !strings.HasPrefix(parts[1], "-") {
		return 0, 0, errors.ErrMalformedStatusRecord
	}
	ahead, err := strconv.Atoi(parts[0][1:])
	if err != nil {
		return 0, 0, err
	}
	behind, err := strconv.Atoi(parts[1][1:])
	if err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}

// 1 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <path>
func parseOrdinary(rec string) (Entry, error) {
	f := strings.SplitN(rec, " ", ordinaryFields)
	if len(f) != ordinaryFields || f[0] != "1" {
		return nil, malformed("ordinary record", rec)
	}
	return decodeOrdinary(rec, f[1:8], f[8])
}

// 2 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <X><score> <path>\0<origPath>
func parseRenamed(rec string) (Entry, error) {
	f := strings.SplitN(rec, " ", renamedFields)
	if len(f) != renamedFields || f[0] != "2" {
		return nil, malformed("rename record", rec)
	}
	path, original, ok := strings.Cut(f[9], "\x00")
	if !ok || original == "" {
		return nil, malformed("rename record", rec)
	}

	ordinary, err := decodeOrdinary(rec, f[1:8], path)
	if err != nil {
		return nil, err
	}

	opScore := f[8]
	if len(opScore) < 2 {
		return nil, malformed("rename score", rec)
	}
	op, ok := parseOperation(opScore[0])
	if !ok {
		return nil, malformed("rename operation", rec)
	}
	score, err := strconv.Atoi(opScore[1:])
	if err != nil || score < 0 || score > 100 {
		return nil, malformed("rename score", rec)
	}

	return RenamedEntry{
		OrdinaryEntry: ordinary,
		operation:     op,
		score:         score,
		originalPath:  original,
	}, nil
}

// decodeOrdinary decodes <XY> <sub> <mH> <mI> <mW> <hH> <hI>.
func decodeOrdinary(rec string, f []string, path string) (OrdinaryEntry, error) {
	c, err := decodeChange(rec, f[0], path)
	if err != nil {
		return OrdinaryEntry{}, err
	}
	sub, err := parseSubmodule(f[1])
	if err != nil {
		return OrdinaryEntry{}, malformed("submodule token", rec)
	}
	modes, err := parseModes(f[2:5])
	if err != nil {
		return OrdinaryEntry{}, malformed("file mode", rec)
	}
	if !isOID(f[5]) || !isOID(f[6]) {
		return OrdinaryEntry{}, malformed("object name", rec)
	}
	return OrdinaryEntry{
		change:       c,
		submodule:    sub,
		headMode:     modes[0],
		indexMode:    modes[1],
		worktreeMode: modes[2],
		headOID:      f[5],
		indexOID:     f[6],
	}, nil
}

// u <XY> <sub> <m1> <m2> <m3> <mW> <h1> <h2> <h3> <path>
func parseUnmerged(rec string) (Entry, error) {
	f := strings.SplitN(rec, " ", unmergedFields)
	if len(f) != unmergedFields || f[0] != "u" {
		return nil, malformed("unmerged record", rec)
	}
	c, err := decodeChange(rec, f[1], f[10])
	if err != nil {
		return nil, err
	}
	sub, err := parseSubmodule(f[2])
	if err != nil {
		return nil, malformed("submodule token", rec)
	}
	modes, err := parseModes(f[3:7])
	if err != nil {
		return nil, malformed("file mode", rec)
	}
	for _, oid := range f[7:10] {
		if !isOID(oid) {
			return nil, malformed("object name", rec)
		}
	}
	return UnmergedEntry{
		change:       c,
		conflict:     ParseConflictType(f[1]),
		submodule:    sub,
		baseMode:     modes[0],
		ourMode:      modes[1],
		theirMode:    modes[2],
		worktreeMode: modes[3],
		baseOID:      f[7],
		ourOID:       f[8],
		theirOID:     f[9],
	}, nil
}

// ? <path> and ! <path>
func parsePathOnly(rec string, build func(string) Entry) (Entry, error) {
	if len(rec) < 3 || rec[1] != ' ' {
		return nil, malformed("path record", rec)
	}
	return build(rec[2:]), nil
}

func decodeChange(rec, xy, path string) (change, error) {
	if len(xy) != 2 {
		return change{}, malformed("XY code", rec)
	}
	if path == "" {
		return change{}, malformed("path", rec)
	}
	return change{
		path:     path,
		index:    ParseFileStatus(xy[0]),
		worktree: ParseFileStatus(xy[1]),
	}, nil
}

// parseSubmodule decodes "N..." (not a submodule, nil) or "S<c><m><u>".
func parseSubmodule(token string) (*Submodule, error) {
	if len(token) != 4 {
		return nil, errors.ErrMalformedStatusRecord
	}
	switch token[0] {
	case 'N':
		return nil, nil //nolint:nilnil // nil means "not a submodule"
	case 'S':
		return &Submodule{
			CommitChanged:    token[1] == 'C',
			TrackedChanges:   token[2] == 'M',
			UntrackedChanges: token[3] == 'U',
		}, nil
	default:
		return nil, errors.ErrMalformedStatusRecord
	}
}

func parseModes(fields []string) ([]FileMode, error) {
	modes := make([]FileMode, len(fields))
	for i, s := range fields {
		m, err := ParseFileMode(s)
		if err != nil {
			return nil, err
		}
		modes[i] = m
	}
	return modes, nil
}

// isOID accepts SHA-1 and SHA-256 object names in lowercase hex.
func isOID(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// IsZeroOID reports whether oid is the all-zero name git uses for a
// missing object.
func IsZeroOID(oid string) bool {
	return oid != "" && strings.Trim(oid, "0") == ""
}

func malformed(what, rec string) error {
	return fmt.Errorf("%w: invalid %s: %q", errors.ErrMalformedStatusRecord, what, rec)
}
