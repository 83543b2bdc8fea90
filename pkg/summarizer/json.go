package summarizer

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// JSONFormatter renders a Summary as indented JSON.
var JSONFormatter Formatter = FormatFunc(formatJSON)

func formatJSON(s *Summary) string {
	doc := struct {
		*Summary
		DurationMs int64 `json:"durationMs"`
	}{s, s.Duration.Milliseconds()}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "{}\n"
	}
	return string(data) + "\n"
}

// ForPath returns the formatter for a report path: JSON for ".json",
// Markdown otherwise.
func ForPath(path string) Formatter {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSONFormatter
	}
	return NewMarkdownFormatter()
}
