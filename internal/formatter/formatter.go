package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/stoik/spoofguard/internal/domain"
	"github.com/stoik/spoofguard/internal/domain/detection"
)

// Options controls verdict rendering
type Options struct {
	NoColor bool
	Verbose bool // include per-match confidence notes
}

// Formatter renders a verdict for a terminal or a pipe
type Formatter interface {
	Name() string
	Format(verdict domain.SpoofingVerdict, options Options) (string, error)
}

// Get returns the formatter registered under name
func Get(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return NewTextFormatter(), nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", name)
	}
}

// TextFormatter implements human-readable colored output
type TextFormatter struct {
	colors map[string]*color.Color
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen, color.Bold),
			"red":    color.New(color.FgRed, color.Bold),
			"yellow": color.New(color.FgYellow),
			"cyan":   color.New(color.FgCyan),
		},
	}
}

func (f *TextFormatter) Name() string {
	return "text"
}

func (f *TextFormatter) Format(verdict domain.SpoofingVerdict, options Options) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	if !verdict.IsSpoofed {
		return f.colors["green"].Sprint("✓ 未發現仿冒網域"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", f.colors["red"].Sprint("✗ 疑似仿冒網域"), verdict.SpoofedDomain)

	if len(verdict.Matches) == 1 {
		m := verdict.Matches[0]
		fmt.Fprintf(&b, "  正牌網域：%s（%s）\n", f.colors["cyan"].Sprint(m.MatchedSafeDomain), m.Description)
		fmt.Fprintf(&b, "  手法：%s\n", detection.AttackLabel(m.AttackKind))
		if options.Verbose && m.ConfidenceNote != "" {
			fmt.Fprintf(&b, "  說明：%s\n", m.ConfidenceNote)
		}
	} else {
		fmt.Fprintf(&b, "  相似的正牌網域（%d 個）：\n", len(verdict.Matches))
		for _, m := range verdict.Matches {
			fmt.Fprintf(&b, "    - %s（%s）%s\n", f.colors["cyan"].Sprint(m.MatchedSafeDomain), m.Description,
				detection.AttackLabel(m.AttackKind))
			if options.Verbose && m.ConfidenceNote != "" {
				fmt.Fprintf(&b, "      %s\n", m.ConfidenceNote)
			}
		}
	}

	b.WriteString(f.colors["yellow"].Sprint(verdict.RiskExplanation))
	return b.String(), nil
}

// JSONFormatter renders the verdict as indented JSON
type JSONFormatter struct{}

func (f *JSONFormatter) Name() string {
	return "json"
}

func (f *JSONFormatter) Format(verdict domain.SpoofingVerdict, options Options) (string, error) {
	data, err := json.MarshalIndent(verdict, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal verdict: %w", err)
	}
	return string(data), nil
}
