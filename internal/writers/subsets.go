package writers

import (
	"fmt"
	"io"
	"strings"

	"primerset/internal/output"
)

func init() {
	RegisterSubsets("json", func(w io.Writer, p SubsetsPayload) error {
		return output.WriteJSON(w, output.ToAPISubsets(p.Subsets, p.Primers))
	})
	RegisterSubsets("yaml", func(w io.Writer, p SubsetsPayload) error {
		return encodeYAML(w, output.ToAPISubsets(p.Subsets, p.Primers))
	})
	RegisterSubsets("tsv", func(w io.Writer, p SubsetsPayload) error {
		if p.Header {
			if _, err := fmt.Fprintln(w, output.SubsetTSVHeader); err != nil {
				return err
			}
		}
		for _, s := range output.ToAPISubsets(p.Subsets, p.Primers) {
			if _, err := fmt.Fprintf(w, "%d\t%d\t%.4f\t%t\t%s\n",
				s.Size, s.Covered, s.Ratio, s.Optimal, strings.Join(s.Primers, ",")); err != nil {
				return err
			}
		}
		return nil
	})
	SubsetsWriters["text"] = SubsetsWriters["tsv"]
}
