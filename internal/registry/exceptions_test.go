package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lodgeworks/utility-bills-tracker/internal/entity"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exceptions.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}
	return path
}

func TestLoadExceptionsJSON(t *testing.T) {
	path := writeRules(t, `{
		"rules": [
			{
				"accommodation_id": "APT_1",
				"provider_tag": "#AGUAS_GAIA",
				"rule_type": 1,
				"destinations": ["APT_1", "APT_2"]
			},
			{
				"accommodation_id": "APT_3",
				"provider_tag": "#EDP",
				"rule_type": 2
			}
		]
	}`)

	r, err := LoadExceptionsJSON(path, nil)
	if err != nil {
		t.Fatalf("LoadExceptionsJSON: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", r.Len())
	}

	rule := r.Get("APT_1", "#AGUAS_GAIA")
	if rule == nil {
		t.Fatal("Get: rule not found")
	}
	if rule.Type != entity.RuleSplitEvenly {
		t.Errorf("Type: got %v", rule.Type)
	}
	if len(rule.Destinations) != 2 {
		t.Errorf("Destinations: got %v", rule.Destinations)
	}

	if r.Get("APT_3", "#EDP") == nil {
		t.Error("Get: second rule not found")
	}
	if r.Get("APT_1", "#EDP") != nil {
		t.Error("Get: tag mismatch must not match")
	}
	if r.Get("APT_9", "#AGUAS_GAIA") != nil {
		t.Error("Get: unknown accommodation must not match")
	}
}

func TestLoadExceptionsJSONMissingFile(t *testing.T) {
	r, err := LoadExceptionsJSON(filepath.Join(t.TempDir(), "nope.json"), nil)
	if err != nil {
		t.Fatalf("missing file must yield an empty registry, got error: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len: got %d, want 0", r.Len())
	}
}

func TestLoadExceptionsJSONRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{rules:`},
		{"missing rules key", `{}`},
		{"rule without accommodation", `{"rules": [{"provider_tag": "#EDP", "rule_type": 1}]}`},
		{"empty accommodation id", `{"rules": [{"accommodation_id": "", "provider_tag": "#EDP", "rule_type": 1}]}`},
		{"bad provider tag", `{"rules": [{"accommodation_id": "APT_1", "provider_tag": "EDP", "rule_type": 1}]}`},
		{"zero rule type", `{"rules": [{"accommodation_id": "APT_1", "provider_tag": "#EDP", "rule_type": 0}]}`},
		{"non-integer rule type", `{"rules": [{"accommodation_id": "APT_1", "provider_tag": "#EDP", "rule_type": "split"}]}`},
		{"empty destination", `{"rules": [{"accommodation_id": "APT_1", "provider_tag": "#EDP", "rule_type": 1, "destinations": [""]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRules(t, tt.content)
			if _, err := LoadExceptionsJSON(path, nil); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
