package ai

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestGenerationConfig_ZeroTemperatureIsSent verifies that an explicit zero
// temperature survives serialization while an unset one is omitted.
func TestGenerationConfig_ZeroTemperatureIsSent(t *testing.T) {
	zero := float32(0)

	explicit, err := json.Marshal(GenerationConfig{Temperature: &zero})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(explicit), `"temperature":0`) {
		t.Errorf("explicit zero temperature dropped: %s", explicit)
	}

	unset, err := json.Marshal(GenerationConfig{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(unset), "temperature") {
		t.Errorf("unset temperature serialized: %s", unset)
	}
}
