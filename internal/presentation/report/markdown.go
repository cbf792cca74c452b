package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/bodygen/internal/indexer"
	"github.com/aretw0/bodygen/pkg/catalog"
	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/aretw0/bodygen/pkg/preset"
)

// Presets builds a markdown report for a batch of validated preset files.
// Only presets accepted by filter are listed.
func Presets(results []indexer.PresetResult, filter preset.Filter) string {
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "## %s\n\n", filepath.Base(r.Path))
		if r.Err != nil {
			fmt.Fprintf(&sb, "> **failed:** %s\n\n", r.Err)
			continue
		}

		presets := filter.Apply(r.Presets)
		if len(presets) == 0 {
			sb.WriteString("_no presets_\n\n")
			continue
		}

		sb.WriteString("| Preset | Gender | Status | BodyGen |\n|---|---|---|---|\n")
		for _, p := range presets {
			status := "valid"
			if !p.Valid {
				status = "invalid"
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | `%s` |\n", escape(p.Name), p.Gender, status, preset.BodyGenLine(p.Name, p.Descriptor))
		}
		sb.WriteString("\n")

		for _, p := range presets {
			if len(p.Errors) == 0 && len(p.Warnings) == 0 {
				continue
			}
			fmt.Fprintf(&sb, "**%s**\n\n", escape(p.Name))
			for _, e := range p.Errors {
				fmt.Fprintf(&sb, "- error: %s\n", e)
			}
			for _, w := range p.Warnings {
				fmt.Fprintf(&sb, "- warning: %s\n", w)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Sliders builds a markdown listing of one gender's catalog by category.
func Sliders(cat *catalog.Catalog, g domain.Gender) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Sliders (%s)\n\n", g)

	groups := cat.Categorized(g)
	for _, name := range cat.CategoryNames(g) {
		fmt.Fprintf(&sb, "## %s\n\n| Slider | Morph | Min | Max | Step |\n|---|---|---|---|---|\n", name)
		for _, s := range groups[name] {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				escape(s.DisplayName), escape(s.MorphKey),
				preset.FormatValue(s.Minimum), preset.FormatValue(s.Maximum), preset.FormatValue(s.Interval))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Tris builds a markdown summary of decoded TRI files.
func Tris(results []indexer.TriResult) string {
	var sb strings.Builder
	sb.WriteString("| File | Set | Morphs | Entries | Max index |\n|---|---|---|---|---|\n")
	var failed []indexer.TriResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
			continue
		}
		fmt.Fprintf(&sb, "| %s | %s | %d | %d | %d |\n",
			escape(filepath.Base(r.Path)), escape(r.Tri.SetName), len(r.Tri.Morphs), r.Tri.EntryCount(), r.Tri.MaxIndex())
	}
	sb.WriteString("\n")
	for _, r := range failed {
		fmt.Fprintf(&sb, "> **failed:** %s: %s\n\n", filepath.Base(r.Path), r.Err)
	}
	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
