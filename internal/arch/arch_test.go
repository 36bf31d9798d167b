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
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "ctxcount/...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	app := []string{"ctxcount/internal/app", "ctxcount/internal/appshell", "ctxcount/internal/cli", "ctxcount/cmd/"}
	bans := map[string][]string{
		"ctxcount/internal/canon":    append([]string{"ctxcount/internal/counter", "ctxcount/internal/fasta", "ctxcount/internal/pipeline", "ctxcount/internal/writers"}, app...),
		"ctxcount/internal/counter":  append([]string{"ctxcount/internal/fasta", "ctxcount/internal/pipeline", "ctxcount/internal/writers"}, app...),
		"ctxcount/internal/fasta":    append([]string{"ctxcount/internal/counter", "ctxcount/internal/pipeline", "ctxcount/internal/writers"}, app...),
		"ctxcount/internal/contig":   append([]string{"ctxcount/internal/pipeline", "ctxcount/internal/writers"}, app...),
		"ctxcount/internal/report":   append([]string{"ctxcount/internal/pipeline", "ctxcount/internal/writers"}, app...),
		"ctxcount/internal/pipeline": append([]string{"ctxcount/internal/writers", "ctxcount/internal/config"}, app...),
		"ctxcount/internal/writers":  append([]string{"ctxcount/internal/pipeline"}, app...),
		"ctxcount/pkg/":              {"ctxcount/internal/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "ctxcount/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "ctxcount/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
