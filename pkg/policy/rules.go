package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRulesFile reads admission rules from a YAML file of the form:
//
//	rules:
//	  - id: too-big
//	    condition: nodes > 100
//	    message: keep demo graphs small
func LoadRulesFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("policy: read rules: %w", err)
	}

	var doc struct {
		Rules []Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("policy: parse rules %s: %w", path, err)
	}
	for i, r := range doc.Rules {
		if r.ID == "" {
			return nil, fmt.Errorf("policy: rule %d in %s has no id", i, path)
		}
		if r.Condition == "" {
			return nil, fmt.Errorf("policy: rule %q has no condition", r.ID)
		}
	}
	return doc.Rules, nil
}
