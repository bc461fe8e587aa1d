package agent

import (
	"regexp"
	"strings"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

// Shopping-list detection runs only in the browsing state while no list
// mode is active. Two line shapes count as list items; a "lista" plus
// comma fallback catches inline lists.
var (
	bulletLine   = regexp.MustCompile(`(?m)^\s*[-*\x{2022}]\s*(\S.*)$`)
	numberedLine = regexp.MustCompile(`(?m)^\s*\d+\s*[).:\-]\s*(\S.*)$`)
)

// DetectList scans a raw customer message for a multi-item shopping
// list. It returns the activated list-mode state, or ok=false when the
// message does not look like a list of at least two items.
func DetectList(text string) (*ports.ListModeState, bool) {
	var items []string
	count := 0

	for _, m := range bulletLine.FindAllStringSubmatch(text, -1) {
		items = append(items, strings.TrimSpace(m[1]))
		count++
	}
	for _, m := range numberedLine.FindAllStringSubmatch(text, -1) {
		items = append(items, strings.TrimSpace(m[1]))
		count++
	}

	if count == 0 && strings.Contains(Normalize(text), "lista") && strings.Contains(text, ",") {
		for _, seg := range strings.Split(text, ",") {
			if seg = strings.TrimSpace(seg); seg != "" {
				items = append(items, seg)
				count++
			}
		}
	}

	// Guard against single-item false positives.
	if count < 2 || len(items) < 2 {
		return nil, false
	}

	return &ports.ListModeState{
		Items:   items,
		RawText: text,
		Index:   0,
		Done:    0,
		Total:   len(items),
		Active:  true,
	}, true
}
