package template

import "strings"

const (
	// TemplatesFile is the file name for the formatted templates text.
	TemplatesFile = "templates.ini"
	// MorphsFile is the file name for the rule fan-out text.
	MorphsFile = "morphs.ini"
)

// Output is the formatted pair of files produced from one document.
type Output struct {
	Templates string `json:"templates"`
	Morphs    string `json:"morphs"`
}

// Format renders doc as templates.ini and morphs.ini content.
//
// templates.ini holds one block per rule key: the directive followed by each
// entry, each on its own paragraph. morphs.ini holds one line per atomic rule,
// listing the entry names of the key it came from joined by "|".
func Format(doc *Document) Output {
	blocks := make([]string, 0, doc.Len())
	var morphs []string

	for _, key := range doc.keys {
		entries := doc.entries[key]

		lines := make([]string, 0, len(entries))
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, e.Name+"="+e.Value)
			names = append(names, e.Name)
		}
		blocks = append(blocks, directive+key+"\n\n"+strings.Join(lines, "\n\n"))

		joined := strings.Join(names, "|")
		for _, rule := range AtomicRules(key) {
			morphs = append(morphs, rule+"="+joined)
		}
	}

	return Output{
		Templates: strings.Join(blocks, "\n\n\n"),
		Morphs:    strings.Join(morphs, "\n\n"),
	}
}

// FormatText parses text and formats the resulting document.
func FormatText(text string) (Output, error) {
	doc, err := Parse(text)
	if err != nil {
		return Output{}, err
	}
	return Format(doc), nil
}
