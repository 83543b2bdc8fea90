package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Capture Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	if s.Source != "" {
		fmt.Fprintf(&b, "Batch file: `%s`\n\n", s.Source)
	}

	b.WriteString("## Results\n\n")
	b.WriteString("| Item | Value |\n")
	b.WriteString("|------|-------|\n")
	fmt.Fprintf(&b, "| Targets | %d |\n", s.Total)
	fmt.Fprintf(&b, "| Succeeded | %d |\n", s.Succeeded)
	fmt.Fprintf(&b, "| Failed | %d |\n", s.Failed)
	if skipped := s.Total - len(s.Captures); skipped > 0 {
		fmt.Fprintf(&b, "| Not attempted | %d |\n", skipped)
	}
	fmt.Fprintf(&b, "| Duration | %s |\n", formatMillis(s.Duration.Milliseconds()))
	b.WriteString("\n")

	b.WriteString("## Settings\n\n")
	b.WriteString("| Item | Value |\n")
	b.WriteString("|------|-------|\n")
	if s.Settings.Engine != "" {
		fmt.Fprintf(&b, "| Engine | %s |\n", s.Settings.Engine)
	}
	if s.Settings.Preset != "" {
		fmt.Fprintf(&b, "| Preset | %s |\n", s.Settings.Preset)
	}
	fmt.Fprintf(&b, "| Viewport | %dx%d @%gx |\n", s.Settings.ViewportWidth, s.Settings.ViewportHeight, s.Settings.Scale)
	fmt.Fprintf(&b, "| Full page | %s |\n", yesNo(s.Settings.FullPage))
	if s.Settings.Format == "jpeg" {
		fmt.Fprintf(&b, "| Format | jpeg (quality %d) |\n", s.Settings.Quality)
	} else if s.Settings.Format != "" {
		fmt.Fprintf(&b, "| Format | %s |\n", s.Settings.Format)
	}
	fmt.Fprintf(&b, "| Dark mode | %s |\n", yesNo(s.Settings.DarkMode))
	fmt.Fprintf(&b, "| Timeout | %s |\n", formatMillis(s.Settings.TimeoutMs))
	b.WriteString("\n")

	if len(s.Captures) > 0 {
		b.WriteString("## Captures\n\n")
		b.WriteString("| # | URL | Status | Output | Size | Time |\n")
		b.WriteString("|---|-----|--------|--------|------|------|\n")
		for _, c := range s.Captures {
			if c.Status == StatusSuccess {
				fmt.Fprintf(&b, "| %d | %s | OK | `%s` | %s | %s |\n",
					c.Index, escape(c.URL), c.OutputPath, formatBytes(c.ByteSize), formatMillis(c.DurationMs))
			} else {
				fmt.Fprintf(&b, "| %d | %s | %s | - | - | %s |\n",
					c.Index, escape(c.URL), c.Kind, formatMillis(c.DurationMs))
			}
		}
		b.WriteString("\n")
	}

	var failures []CaptureInfo
	for _, c := range s.Captures {
		if c.Status != StatusSuccess {
			failures = append(failures, c)
		}
	}
	if len(failures) > 0 {
		b.WriteString("## Failures\n\n")
		for _, c := range failures {
			fmt.Fprintf(&b, "- **%s**: %s\n", c.URL, c.Message)
		}
		b.WriteString("\n")
	}

	if s.ContactSheet != "" {
		fmt.Fprintf(&b, "## Contact Sheet\n\n![contact sheet](%s)\n", s.ContactSheet)
	}

	return b.String()
}

func formatBytes(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func formatMillis(ms int64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.2f s", float64(ms)/1000)
	}
	return fmt.Sprintf("%d ms", ms)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// escape keeps URLs from breaking table cells.
func escape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

var _ Formatter = (*MarkdownFormatter)(nil)
