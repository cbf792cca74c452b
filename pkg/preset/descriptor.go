package preset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/bodygen/pkg/domain"
)

// FormatValue renders a slider value in its shortest exact decimal form
// ("1", "0.5", "-0.25").
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDescriptor joins sliders as "name@value,name@value".
// An empty list yields an empty string.
func FormatDescriptor(sliders []domain.Slider) string {
	var b strings.Builder
	for i, s := range sliders {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s.Name)
		b.WriteByte('@')
		b.WriteString(FormatValue(s.Value))
	}
	return b.String()
}

// ParseDescriptor is the inverse of FormatDescriptor.
func ParseDescriptor(s string) ([]domain.Slider, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []domain.Slider{}, nil
	}

	parts := strings.Split(s, ",")
	out := make([]domain.Slider, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		at := strings.LastIndexByte(part, '@')
		if at <= 0 {
			return nil, fmt.Errorf("descriptor item %d %q: expected name@value", i+1, part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(part[at+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("descriptor item %d %q: %w", i+1, part, err)
		}
		out = append(out, domain.Slider{Name: strings.TrimSpace(part[:at]), Value: v})
	}
	return out, nil
}

// BodyGenLine renders a named descriptor as a template entry line.
func BodyGenLine(name, descriptor string) string {
	return name + "=" + descriptor
}

// ParseBodyGenLine splits "name=descriptor" and parses the descriptor.
func ParseBodyGenLine(line string) (string, []domain.Slider, error) {
	name, desc, ok := strings.Cut(line, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("bodygen line %q: expected name=descriptor", line)
	}
	sliders, err := ParseDescriptor(desc)
	if err != nil {
		return "", nil, fmt.Errorf("bodygen line %q: %w", name, err)
	}
	return name, sliders, nil
}
