package output

import (
	"fmt"
	"io"
	"strings"

	"primerset/core/model"
)

// WriteFASTA writes primers as FASTA records, one line per sequence. The
// header carries direction and origin templates.
func WriteFASTA(w io.Writer, list []model.Primer) error {
	for _, p := range list {
		if p.Seq == "" {
			continue
		}
		hdr := fmt.Sprintf(">%s dir=%s", p.ID, p.Direction)
		if len(p.Origins) > 0 {
			hdr += " origins=" + strings.Join(p.Origins, ",")
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", hdr, p.Seq); err != nil {
			return err
		}
	}
	return nil
}

// WritePrimerTSV writes selected primers then the rest as a tab-delimited
// table.
func WritePrimerTSV(w io.Writer, selected, rest []model.Primer, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, PrimerTSVHeader); err != nil {
			return err
		}
	}
	for _, p := range selected {
		if _, err := fmt.Fprintln(w, FormatPrimerRowTSV(p, true)); err != nil {
			return err
		}
	}
	for _, p := range rest {
		if _, err := fmt.Fprintln(w, FormatPrimerRowTSV(p, false)); err != nil {
			return err
		}
	}
	return nil
}

// WriteCheckTSV writes checked primers in input order; the selected column
// reports whether each passed every constraint.
func WriteCheckTSV(w io.Writer, list []model.Primer, passing map[int]bool, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, PrimerTSVHeader); err != nil {
			return err
		}
	}
	for i, p := range list {
		if _, err := fmt.Fprintln(w, FormatPrimerRowTSV(p, passing[i])); err != nil {
			return err
		}
	}
	return nil
}
