package ghclient

import (
	"strconv"
	"strings"
)

// DiffLine is a single line of a unified diff hunk.
type DiffLine struct {
	OldLine     int
	NewLine     int
	Kind        string // "add" | "delete" | "context"
	Content     string
	Commentable bool
}

// DiffHunk is one @@ -a,b +c,d @@ hunk of a unified diff.
type DiffHunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Header   string
	Lines    []DiffLine
}

// ParsePatch parses a GitHub-style unified diff patch (as returned in
// CommitFile.Patch) into its constituent hunks.
func ParsePatch(patch string) []DiffHunk {
	var hunks []DiffHunk
	var current *DiffHunk
	var oldLine, newLine int

	for _, raw := range strings.Split(patch, "\n") {
		if strings.HasPrefix(raw, "@@") {
			if current != nil {
				hunks = append(hunks, *current)
			}
			os, oc, ns, nc := parseHunkHeader(raw)
			oldLine, newLine = os, ns
			current = &DiffHunk{OldStart: os, OldCount: oc, NewStart: ns, NewCount: nc, Header: raw}
			continue
		}

		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(raw, "+"):
			current.Lines = append(current.Lines, DiffLine{
				NewLine: newLine, Kind: "add", Content: raw[1:], Commentable: true,
			})
			newLine++
		case strings.HasPrefix(raw, "-"):
			current.Lines = append(current.Lines, DiffLine{
				OldLine: oldLine, Kind: "delete", Content: raw[1:], Commentable: false,
			})
			oldLine++
		default:
			content := strings.TrimPrefix(raw, " ")
			current.Lines = append(current.Lines, DiffLine{
				OldLine: oldLine, NewLine: newLine, Kind: "context", Content: content, Commentable: true,
			})
			oldLine++
			newLine++
		}
	}

	if current != nil {
		hunks = append(hunks, *current)
	}

	return hunks
}

// CommentableLines returns the after-side line numbers a review comment
// can legally anchor to: added and unchanged context lines, never
// deleted ones.
func CommentableLines(hunks []DiffHunk) []int {
	var lines []int
	for _, h := range hunks {
		for _, l := range h.Lines {
			if l.Commentable && l.NewLine > 0 {
				lines = append(lines, l.NewLine)
			}
		}
	}
	return lines
}

func parseHunkHeader(header string) (oldStart, oldCount, newStart, newCount int) {
	fields := strings.Fields(header)
	old, new := "-0,0", "+0,0"
	if len(fields) > 1 {
		old = fields[1]
	}
	if len(fields) > 2 {
		new = fields[2]
	}

	oldStart, oldCount = parseRange(strings.TrimPrefix(old, "-"))
	newStart, newCount = parseRange(strings.TrimPrefix(new, "+"))
	return
}

func parseRange(s string) (start, count int) {
	if before, after, ok := strings.Cut(s, ","); ok {
		start, _ = strconv.Atoi(before)
		count, _ = strconv.Atoi(after)
		return
	}
	start, _ = strconv.Atoi(s)
	return start, 1
}
