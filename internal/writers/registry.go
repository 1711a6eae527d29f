// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"primerset/core/design"
	"primerset/core/model"
	"primerset/core/setcover"
)

// ResultPayload is what design writers receive.
type ResultPayload struct {
	Result  design.Result
	Verbose bool // include unselected primers and binding records
	Header  bool
}

// CheckPayload is what check writers receive.
type CheckPayload struct {
	Check  design.Check
	Header bool
}

// SubsetsPayload is what subset writers receive. Subset indices refer to
// Primers.
type SubsetsPayload struct {
	Subsets []setcover.Subset
	Primers []model.Primer
	Header  bool
}

// Writer registries (format → handler). Register in init() blocks of the
// result/check/subsets writer files.
var (
	ResultWriters  = map[string]func(io.Writer, ResultPayload) error{}
	CheckWriters   = map[string]func(io.Writer, CheckPayload) error{}
	SubsetsWriters = map[string]func(io.Writer, SubsetsPayload) error{}
)

// Register helpers (idempotent last-wins)
func RegisterResult(format string, fn func(io.Writer, ResultPayload) error)   { ResultWriters[format] = fn }
func RegisterCheck(format string, fn func(io.Writer, CheckPayload) error)     { CheckWriters[format] = fn }
func RegisterSubsets(format string, fn func(io.Writer, SubsetsPayload) error) { SubsetsWriters[format] = fn }

// Dispatch helpers used by the CLI.
func WriteResult(format string, w io.Writer, p ResultPayload) error {
	fn, ok := ResultWriters[format]
	if !ok {
		return fmt.Errorf("unknown result format %q (no writer registered)", format)
	}
	return suppressBrokenPipe(fn(w, p))
}
func WriteCheck(format string, w io.Writer, p CheckPayload) error {
	fn, ok := CheckWriters[format]
	if !ok {
		return fmt.Errorf("unknown check format %q (no writer registered)", format)
	}
	return suppressBrokenPipe(fn(w, p))
}
func WriteSubsets(format string, w io.Writer, p SubsetsPayload) error {
	fn, ok := SubsetsWriters[format]
	if !ok {
		return fmt.Errorf("unknown subsets format %q (no writer registered)", format)
	}
	return suppressBrokenPipe(fn(w, p))
}

// Formats lists the registered formats of a registry, sorted.
func Formats[T any](reg map[string]func(io.Writer, T) error) []string {
	out := make([]string, 0, len(reg))
	for k := range reg {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
