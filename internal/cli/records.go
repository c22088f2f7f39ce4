package cli

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timecalc"
	"gopkg.in/yaml.v3"
)

// recordsFile accepts either a bare list or {records: [...]}. JSON is valid YAML.
type recordsFile struct {
	Records []timecalc.RawRecord `yaml:"records"`
}

// LoadRecords reads raw records from a YAML or JSON file.
func LoadRecords(path string) ([]timecalc.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse records %s: %w", path, err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var records []timecalc.RawRecord
		if err := root.Decode(&records); err != nil {
			return nil, fmt.Errorf("decode records %s: %w", path, err)
		}
		return records, nil
	case yaml.MappingNode:
		var file recordsFile
		if err := root.Decode(&file); err != nil {
			return nil, fmt.Errorf("decode records %s: %w", path, err)
		}
		return file.Records, nil
	default:
		return nil, fmt.Errorf("records %s: expected a list or a records key", path)
	}
}
