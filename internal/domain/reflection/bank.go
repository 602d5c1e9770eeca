package reflection

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var rawBank []byte

type bankFile struct {
	Questions []string `yaml:"questions"`
}

// Bank returns the fixed daily reflection prompts.
func Bank() ([]string, error) {
	var f bankFile
	if err := yaml.Unmarshal(rawBank, &f); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}
	return f.Questions, nil
}
