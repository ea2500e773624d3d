package questions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// questionFile accepts either a bare list or {"questions": [...]}
type questionFile struct {
	Questions []RawQuestion `json:"questions" yaml:"questions"`
}

// Decode parses a question bank export. format is "json" or "yaml".
func Decode(data []byte, format string) ([]RawQuestion, error) {
	var (
		list []RawQuestion
		file questionFile
	)
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &list); err == nil {
			return list, nil
		}
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("error decoding json questions: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &list); err == nil {
			return list, nil
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("error decoding yaml questions: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported question format %q", format)
	}
	return file.Questions, nil
}

// LoadFile reads a question file, picking the format from its extension
func LoadFile(path string) ([]RawQuestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, strings.TrimPrefix(filepath.Ext(path), "."))
}
