// core/fasta/templates.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"primerset/core/model"
)

// Header tags understood after the record ID:
//
//	>tmpl1 group=IGHV1 fwd=1-30 rev=250-300 free text
//
// Untagged words are ignored. Missing fwd/rev mean the whole sequence.
const (
	tagGroup = "group="
	tagFwd   = "fwd="
	tagRev   = "rev="
)

// Issue reports a record that was read but could not become a template.
type Issue struct {
	ID      string
	Line    int
	Message string
}

// ReadTemplates parses FASTA from r into templates. Sequences are
// upper-cased and whitespace is stripped. Records with an empty sequence or
// a malformed interval tag become Issues; scan failures are errors. The
// context is checked between lines.
func ReadTemplates(ctx context.Context, r io.Reader) ([]model.Template, []Issue, error) {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		out      []model.Template
		issues   []Issue
		cur      *model.Template
		hdrLn    int
		seq      bytes.Buffer
		ln       int
		skipping bool
	)
	flush := func() {
		if cur == nil {
			return
		}
		cur.Seq = strings.ToUpper(seq.String())
		if err := cur.Validate(); err != nil {
			issues = append(issues, Issue{ID: cur.ID, Line: hdrLn, Message: err.Error()})
		} else {
			out = append(out, *cur)
		}
		cur = nil
		seq.Reset()
	}

	for sc.Scan() {
		ln++
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			flush()
			t, err := parseHeader(string(line[1:]))
			if err != nil {
				issues = append(issues, Issue{ID: t.ID, Line: ln, Message: err.Error()})
				skipping = true
				continue
			}
			cur, hdrLn, skipping = &t, ln, false
			continue
		}
		if cur == nil {
			if !skipping {
				return nil, nil, fmt.Errorf("line %d: sequence data before the first header", ln)
			}
			continue
		}
		seq.Write(bytes.Join(bytes.Fields(line), nil))
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("fasta scan: %w", err)
	}
	flush()
	return out, issues, nil
}

func parseHeader(h string) (model.Template, error) {
	fields := strings.Fields(h)
	if len(fields) == 0 {
		return model.Template{}, fmt.Errorf("empty header")
	}
	t := model.Template{ID: fields[0]}
	for _, f := range fields[1:] {
		var err error
		switch {
		case strings.HasPrefix(f, tagGroup):
			t.Group = strings.TrimPrefix(f, tagGroup)
		case strings.HasPrefix(f, tagFwd):
			t.Fwd, err = parseInterval(strings.TrimPrefix(f, tagFwd))
		case strings.HasPrefix(f, tagRev):
			t.Rev, err = parseInterval(strings.TrimPrefix(f, tagRev))
		}
		if err != nil {
			return t, fmt.Errorf("%s: %w", f, err)
		}
	}
	return t, nil
}

// parseInterval reads "start-end" (1-based inclusive).
func parseInterval(s string) (model.Interval, error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return model.Interval{}, fmt.Errorf("want start-end")
	}
	start, err := strconv.Atoi(a)
	if err != nil {
		return model.Interval{}, fmt.Errorf("bad start: %w", err)
	}
	end, err := strconv.Atoi(b)
	if err != nil {
		return model.Interval{}, fmt.Errorf("bad end: %w", err)
	}
	if start < 1 || end < start {
		return model.Interval{}, fmt.Errorf("invalid interval %d-%d", start, end)
	}
	return model.Interval{Start: start, End: end}, nil
}

// ReadTemplatesPath opens path (gzip and "-" for stdin supported) and reads
// templates from it.
func ReadTemplatesPath(ctx context.Context, path string) ([]model.Template, []Issue, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rc.Close() }()
	return ReadTemplates(ctx, rc)
}
