package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
}

const module = "primerset/"

// bans maps a package prefix to the module prefixes it must not import.
var bans = map[string][]string{
	"primerset/core/": {"primerset/internal/", "primerset/pkg/", "primerset/cmd/"},
	"primerset/pkg/":  {"primerset/internal/", "primerset/core/", "primerset/cmd/"},
	"primerset/internal/output": {
		"primerset/internal/appcore", "primerset/internal/cli", "primerset/internal/appshell",
		"primerset/internal/store", "primerset/internal/metrics", "primerset/cmd/",
	},
	"primerset/internal/writers": {
		"primerset/internal/appcore", "primerset/internal/cli", "primerset/internal/appshell",
		"primerset/internal/store", "primerset/internal/metrics", "primerset/cmd/",
	},
	"primerset/internal/pretty": {
		"primerset/internal/appcore", "primerset/internal/cli", "primerset/internal/writers", "primerset/cmd/",
	},
	"primerset/internal/store":   {"primerset/internal/appcore", "primerset/internal/cli", "primerset/internal/writers", "primerset/cmd/"},
	"primerset/internal/metrics": {"primerset/internal/appcore", "primerset/internal/cli", "primerset/internal/store", "primerset/cmd/"},
	"primerset/internal/config":  {"primerset/internal/appcore", "primerset/internal/cli", "primerset/cmd/"},
}

func TestImportBoundaries(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not on PATH")
	}
	cmd := exec.Command("go", "list", "-json", "../../...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(p.ImportPath, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, module) {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, p.ImportPath+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
