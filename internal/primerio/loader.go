// internal/primerio/loader.go
package primerio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"primerset/core/model"
)

// Read parses a whitespace-delimited primer table. Two row shapes are
// accepted:
//
//	id  fw|rev  SEQ  [group,group...]
//	id  FWDSEQ  REVSEQ                  (a pair; becomes id_fw and id_rev)
//
// Blank lines and lines starting with '#' are skipped. Sequences are
// upper-cased but not validated; the engine reports invalid ones.
func Read(r io.Reader, name string) ([]model.Primer, error) {
	var list []model.Primer
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 3 || len(f) > 4 {
			return nil, fmt.Errorf("%s:%d bad field count", name, ln)
		}
		d, err := model.ParseDirection(f[1])
		switch {
		case err == nil && d != model.Both:
			p := model.Primer{ID: f[0], Direction: d, Seq: strings.ToUpper(f[2])}
			if len(f) == 4 {
				p.TargetGroups = splitGroups(f[3])
			}
			list = append(list, p)
		case err == nil:
			return nil, fmt.Errorf("%s:%d direction must be fw or rev", name, ln)
		case len(f) == 3:
			list = append(list,
				model.Primer{ID: f[0] + "_fw", Direction: model.Forward, Seq: strings.ToUpper(f[1])},
				model.Primer{ID: f[0] + "_rev", Direction: model.Reverse, Seq: strings.ToUpper(f[2])},
			)
		default:
			return nil, fmt.Errorf("%s:%d bad direction %q", name, ln, f[1])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func splitGroups(s string) []string {
	var out []string
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// LoadTSV reads a primer table from path ("-" is stdin).
func LoadTSV(path string) ([]model.Primer, error) {
	if path == "-" {
		return Read(os.Stdin, "stdin")
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return Read(fh, path)
}

// WriteTSV writes primers in the four-column form Read accepts.
func WriteTSV(w io.Writer, list []model.Primer) error {
	for _, p := range list {
		line := fmt.Sprintf("%s\t%s\t%s", p.ID, p.Direction, p.Seq)
		if len(p.TargetGroups) > 0 {
			line += "\t" + strings.Join(p.TargetGroups, ",")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
