package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

// ExceptionRegistry looks up processing overrides for one accommodation
// and provider tag.
type ExceptionRegistry interface {
	Get(accommodationID, providerTag string) *entity.ExceptionRule
}

// Exceptions is the in-memory exception-rule registry, loaded from a
// schema-validated JSON file.
type Exceptions struct {
	byKey  map[string]*entity.ExceptionRule
	logger *slog.Logger
}

// rulesSchema guards the rules file: a bad hand-edit fails the load
// instead of silently misrouting bills.
const rulesSchema = `{
	"type": "object",
	"required": ["rules"],
	"properties": {
		"rules": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["accommodation_id", "provider_tag", "rule_type"],
				"properties": {
					"accommodation_id": {"type": "string", "minLength": 1},
					"provider_tag": {"type": "string", "pattern": "^#[A-Z_]+$"},
					"rule_type": {"type": "integer", "minimum": 1},
					"destinations": {
						"type": "array",
						"items": {"type": "string", "minLength": 1}
					}
				}
			}
		}
	}
}`

type rulesFile struct {
	Rules []struct {
		AccommodationID string   `json:"accommodation_id"`
		ProviderTag     string   `json:"provider_tag"`
		RuleType        int      `json:"rule_type"`
		Destinations    []string `json:"destinations"`
	} `json:"rules"`
}

// LoadExceptionsJSON reads and validates the exception-rules file. A
// missing file is not an error; it yields an empty registry.
func LoadExceptionsJSON(path string, logger *slog.Logger) (*Exceptions, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Exceptions{byKey: map[string]*entity.ExceptionRule{}, logger: logger}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Info("registry.exceptions.none", "path", path)
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read exception rules: %w", err)
	}

	if err := validateRules(data); err != nil {
		return nil, fmt.Errorf("exception rules %s: %w", path, err)
	}

	var file rulesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode exception rules: %w", err)
	}

	for _, raw := range file.Rules {
		rule := &entity.ExceptionRule{
			AccommodationID: raw.AccommodationID,
			ProviderTag:     raw.ProviderTag,
			Type:            entity.ExceptionRuleType(raw.RuleType),
			Destinations:    raw.Destinations,
		}
		r.byKey[ruleKey(rule.AccommodationID, rule.ProviderTag)] = rule
	}

	logger.Info("registry.exceptions.loaded", "count", len(r.byKey), "path", path)
	return r, nil
}

func validateRules(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rules.json", strings.NewReader(rulesSchema)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("rules.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("does not match schema: %w", err)
	}
	return nil
}

func ruleKey(accommodationID, providerTag string) string {
	return accommodationID + "|" + providerTag
}

// Get returns the rule for the accommodation and provider tag, or nil.
func (r *Exceptions) Get(accommodationID, providerTag string) *entity.ExceptionRule {
	return r.byKey[ruleKey(accommodationID, providerTag)]
}

// Len returns the number of loaded rules.
func (r *Exceptions) Len() int { return len(r.byKey) }
