// Package report runs the timesheet engine over interval files for offline reports.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aevon-lab/timesheet/internal/core/worktime"
	"gopkg.in/yaml.v3"
)

// document is the wrapped input form: {"intervals": [...]}.
type document struct {
	Intervals []worktime.RawInterval `json:"intervals" yaml:"intervals"`
}

// LoadFile reads raw intervals from a YAML or JSON file. "-" reads stdin.
func LoadFile(path string) ([]worktime.RawInterval, error) {
	if path == "-" {
		return Load(os.Stdin, "")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open interval file: %w", err)
	}
	defer f.Close()
	return Load(f, path)
}

// Load decodes raw intervals. The input is either a bare list or a document with an
// "intervals" key. Files named *.json are decoded as JSON, everything else as YAML.
func Load(r io.Reader, name string) ([]worktime.RawInterval, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read intervals: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if strings.EqualFold(filepath.Ext(name), ".json") {
		return decodeJSON(trimmed)
	}
	return decodeYAML(trimmed)
}

func decodeJSON(data []byte) ([]worktime.RawInterval, error) {
	if data[0] == '[' {
		var list []worktime.RawInterval
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode json intervals: %w", err)
		}
		return list, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json intervals: %w", err)
	}
	return doc.Intervals, nil
}

func decodeYAML(data []byte) ([]worktime.RawInterval, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode yaml intervals: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var list []worktime.RawInterval
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode yaml intervals: %w", err)
		}
		return list, nil
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode yaml intervals: %w", err)
	}
	return doc.Intervals, nil
}

// FilterSubject keeps the intervals of one subject. An empty subject keeps everything.
func FilterSubject(raw []worktime.RawInterval, subject string) []worktime.RawInterval {
	if subject == "" {
		return raw
	}
	out := make([]worktime.RawInterval, 0, len(raw))
	for _, r := range raw {
		if r.SubjectRef == subject {
			out = append(out, r)
		}
	}
	return out
}
