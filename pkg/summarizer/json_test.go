package summarizer

import (
	"encoding/json"
	"testing"
)

func TestJSONFormatter(t *testing.T) {
	out := JSONFormatter.Format(sampleSummary())

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	for _, key := range []string{"generatedAt", "settings", "captures", "total", "succeeded", "failed", "durationMs"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("expected key %q in %s", key, out)
		}
	}
	if _, ok := doc["Duration"]; ok {
		t.Error("raw Duration must not be serialized")
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path     string
		wantJSON bool
	}{
		{"report.json", true},
		{"REPORT.JSON", true},
		{"report.md", false},
		{"report", false},
	}

	for _, tt := range tests {
		_, isMarkdown := ForPath(tt.path).(*MarkdownFormatter)
		if isMarkdown == tt.wantJSON {
			t.Errorf("%s: expected JSON=%t", tt.path, tt.wantJSON)
		}
	}
}
