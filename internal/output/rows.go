// internal/output/rows.go
package output

import (
	"fmt"
	"strconv"
	"strings"

	"primerset/core/model"
)

func IntsCSV(a []int) string {
	if len(a) == 0 {
		return ""
	}
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = strconv.Itoa(v)
	}
	return strings.Join(ss, ",")
}

// formatValue renders undefined values as "NA".
func formatValue(v model.Values, p model.Property) string {
	x, ok := v.Get(p)
	if !ok {
		return "NA"
	}
	return strconv.FormatFloat(x, 'f', 3, 64)
}

// failed lists the constraints a primer's verdicts reject, sorted.
func failed(p model.Primer) string {
	var out []string
	for _, prop := range model.Properties {
		if v, ok := p.Verdicts[prop]; ok && !v.Pass {
			out = append(out, string(prop))
		}
	}
	return strings.Join(out, ",")
}

// FormatPrimerRowTSV returns one primer row matching PrimerTSVHeader (no
// trailing newline).
func FormatPrimerRowTSV(p model.Primer, selected bool) string {
	cols := []string{p.ID, string(p.Direction), p.Seq, strconv.FormatBool(selected), strconv.FormatFloat(p.Score, 'f', 4, 64)}
	for _, prop := range model.Properties {
		cols = append(cols, formatValue(p.Values, prop))
	}
	cols = append(cols, failed(p))
	return strings.Join(cols, "\t")
}

// FormatTemplateRowTSV returns one row matching TemplateTSVHeader.
func FormatTemplateRowTSV(id, group string, covered bool, primers []string, mm []int) string {
	return fmt.Sprintf("%s\t%s\t%t\t%s\t%s", id, group, covered, strings.Join(primers, ","), IntsCSV(mm))
}
