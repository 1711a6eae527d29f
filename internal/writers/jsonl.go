package writers

import (
	"io"

	"primerset/core/model"
	"primerset/internal/jsonlutil"
	"primerset/internal/output"
	"primerset/pkg/api"
)

// StartPrimerJSONLWriter streams each primer as one JSON line (v1).
// templates resolves record indices when withRecords is set.
func StartPrimerJSONLWriter(out io.Writer, bufSize int, templates []model.Template, withRecords bool) jsonlutil.Stream[model.Primer] {
	return jsonlutil.Start(out, bufSize, primerConv(templates, withRecords), IsBrokenPipe)
}

func primerConv(templates []model.Template, withRecords bool) func(model.Primer) api.PrimerV1 {
	return func(p model.Primer) api.PrimerV1 { return output.ToAPIPrimer(p, templates, withRecords) }
}

func writePrimersJSONL(w io.Writer, list []model.Primer, templates []model.Template, withRecords bool) error {
	return jsonlutil.WriteAll(w, list, primerConv(templates, withRecords), IsBrokenPipe)
}
