package file

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/services"
)

// MappingFile is the YAML layout of a property-mapping override file.
type MappingFile struct {
	Mappings []MappingRule `yaml:"mappings"`
}

// MappingRule overrides how one legacy predicate is written.
type MappingRule struct {
	From  string `yaml:"from"`
	To    string `yaml:"to,omitempty"`
	Kind  string `yaml:"kind,omitempty"`
	Event string `yaml:"event,omitempty"`
}

// LoadMappingFile reads mapping overrides from a YAML file.
func LoadMappingFile(path string) (services.MappingTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}

	var file MappingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse mapping file: %w", domain.ErrInvalidInput, err)
	}
	return file.Table()
}

// Table converts the rules into a mapping table.
func (f MappingFile) Table() (services.MappingTable, error) {
	table := make(services.MappingTable, len(f.Mappings))
	for i, rule := range f.Mappings {
		from := strings.TrimSpace(rule.From)
		if from == "" {
			return nil, fmt.Errorf("%w: mapping %d has no 'from' predicate", domain.ErrInvalidInput, i+1)
		}
		if rule.To != "" && rule.Event != "" {
			return nil, fmt.Errorf("%w: mapping for %s sets both 'to' and 'event'", domain.ErrInvalidInput, from)
		}
		kind, err := services.ParseValueKind(rule.Kind)
		if err != nil {
			return nil, fmt.Errorf("mapping for %s: %w", from, err)
		}
		if _, dup := table[from]; dup {
			return nil, fmt.Errorf("%w: duplicate mapping for %s", domain.ErrInvalidInput, from)
		}
		table[from] = services.MappingEntry{
			Target: strings.TrimSpace(rule.To),
			Kind:   kind,
			Event:  strings.TrimSpace(rule.Event),
		}
	}
	return table, nil
}
