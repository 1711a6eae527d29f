package writers

import (
	"fmt"
	"io"

	"primerset/internal/output"
	"primerset/internal/pretty"
)

func init() {
	RegisterResult("json", func(w io.Writer, p ResultPayload) error {
		return output.WriteJSON(w, output.ToAPIResult(p.Result, p.Verbose))
	})
	RegisterResult("yaml", func(w io.Writer, p ResultPayload) error {
		return encodeYAML(w, output.ToAPIResult(p.Result, p.Verbose))
	})
	RegisterResult("jsonl", func(w io.Writer, p ResultPayload) error {
		list := p.Result.Selected
		if p.Verbose {
			list = append(list[:len(list):len(list)], p.Result.Unselected...)
		}
		return writePrimersJSONL(w, list, p.Result.Evaluated, p.Verbose)
	})
	RegisterResult("tsv", func(w io.Writer, p ResultPayload) error {
		rest := p.Result.Unselected
		if !p.Verbose {
			rest = nil
		}
		return output.WritePrimerTSV(w, p.Result.Selected, rest, p.Header)
	})
	RegisterResult("fasta", func(w io.Writer, p ResultPayload) error {
		return output.WriteFASTA(w, p.Result.Selected)
	})
	RegisterResult("text", func(w io.Writer, p ResultPayload) error {
		if err := pretty.WriteSummary(w, p.Result, pretty.DefaultOptions); err != nil {
			return err
		}
		if p.Header {
			if _, err := fmt.Fprintln(w, output.TemplateTSVHeader); err != nil {
				return err
			}
		}
		for _, t := range p.Result.Templates {
			if _, err := fmt.Fprintln(w, output.FormatTemplateRowTSV(t.TemplateID, t.Group, t.Covered, t.Primers, t.Mismatches)); err != nil {
				return err
			}
		}
		return nil
	})
}
