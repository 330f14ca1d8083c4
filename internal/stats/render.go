package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const sparkChars = " .:-=+*#%@"

const fallbackWidth = 80

// TerminalWidth returns the stdout width, or a fallback when not a TTY.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the aggregate summary as plain text.
func RenderSummary(w io.Writer, summary Summary) error {
	if summary.TotalAttempts == 0 {
		_, err := fmt.Fprintln(w, "No attempts recorded.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", summary.TotalAttempts),
		fmt.Sprintf("Practice sessions: %d", summary.SessionCount),
		fmt.Sprintf("Avg accuracy: %.2f%%", summary.AverageAccuracy),
		fmt.Sprintf("Best accuracy: %.2f%%", summary.BestAccuracy),
		fmt.Sprintf("Avg WPM: %.2f", summary.AverageWPM),
		fmt.Sprintf("Best WPM: %.2f", summary.BestWPM),
		fmt.Sprintf("Total time: %s", summary.TotalDuration),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(summary.Languages) > 0 {
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
		if err := renderLanguageTable(w, summary); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderLanguageTable(w io.Writer, summary Summary) error {
	if _, err := fmt.Fprintln(w, "Per-Language"); err != nil {
		return err
	}
	langWidth := len("Language")
	for _, ls := range summary.Languages {
		if len(ls.Lang) > langWidth {
			langWidth = len(ls.Lang)
		}
	}
	if _, err := fmt.Fprintf(w, "%-*s %8s %9s\n", langWidth, "Language", "Attempts", "Avg Acc"); err != nil {
		return err
	}
	for _, ls := range summary.Languages {
		marker := ""
		switch ls.Lang {
		case summary.BestLanguage:
			marker = "  (best)"
		case summary.WorstLanguage:
			marker = "  (worst)"
		}
		if len(summary.Languages) == 1 {
			marker = ""
		}
		if _, err := fmt.Fprintf(w, "%-*s %8d %8.2f%%%s\n", langWidth, ls.Lang, ls.Attempts, ls.AverageAccuracy, marker); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints smoothed WPM and accuracy sparklines sized to width.
func RenderCurves(w io.Writer, report Report, window, width int) error {
	if len(report.Entries) == 0 {
		return nil
	}
	if width <= 0 {
		width = fallbackWidth
	}
	labelWidth := len("Accuracy")
	plotWidth := width - labelWidth - 2
	if plotWidth < 10 {
		plotWidth = 10
	}
	series := []struct {
		name   string
		values []float64
	}{
		{"WPM", MovingAverage(report.WPMCurve, window)},
		{"Accuracy", MovingAverage(report.AccCurve, window)},
	}
	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	for _, s := range series {
		if len(s.values) == 0 {
			continue
		}
		minVal, maxVal := s.values[0], s.values[0]
		for _, v := range s.values[1:] {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
		line := Sparkline(resample(s.values, plotWidth))
		if _, err := fmt.Fprintf(w, "%-*s %s\n", labelWidth, s.name, line); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-*s min=%.2f max=%.2f\n", labelWidth, "", minVal, maxVal); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// resample stretches or shrinks values to the target width by bucket means.
func resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		sum := 0.0
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}
