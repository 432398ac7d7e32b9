package synth

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"builder-gen/internal/model"
)

// planDocument is the YAML shape of an exported plan.
type planDocument struct {
	Builders []*model.Builder `yaml:"builders"`
}

// MarshalPlan renders builder models as a YAML document.
func MarshalPlan(builders []*model.Builder) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(planDocument{Builders: builders}); err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}

	return buf.Bytes(), nil
}
