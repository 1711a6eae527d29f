package writers

import (
	"io"

	"primerset/internal/output"
)

func init() {
	RegisterCheck("json", func(w io.Writer, p CheckPayload) error {
		return output.WriteJSON(w, output.ToAPICheck(p.Check))
	})
	RegisterCheck("yaml", func(w io.Writer, p CheckPayload) error {
		return encodeYAML(w, output.ToAPICheck(p.Check))
	})
	RegisterCheck("jsonl", func(w io.Writer, p CheckPayload) error {
		return writePrimersJSONL(w, p.Check.Primers, p.Check.Evaluated, true)
	})
	RegisterCheck("tsv", func(w io.Writer, p CheckPayload) error {
		passing := make(map[int]bool, len(p.Check.Passing))
		for _, i := range p.Check.Passing {
			passing[i] = true
		}
		return output.WriteCheckTSV(w, p.Check.Primers, passing, p.Header)
	})
	CheckWriters["text"] = CheckWriters["tsv"]
}
