package bundle

import (
	"github.com/tidwall/gjson"
)

// Format is the naming scheme of a bundle's grouping arrays
type Format int

// Bundle formats
const (
	// FormatCurrent names agent-reference groups "flocks" and value groups "swarms"
	FormatCurrent Format = iota
	// FormatLegacy predates the rename: the two names are swapped
	FormatLegacy
)

func (f Format) String() string {
	if f == FormatLegacy {
		return "legacy"
	}
	return "current"
}

// Sniff classifies a raw document by looking at the first element of the
// grouping arrays. It only proves legacy naming; anything else is current.
func Sniff(raw string) Format {
	if gjson.Get(raw, "swarms.0.agentIds").Exists() {
		return FormatLegacy
	}
	if gjson.Get(raw, "flocks.0.members").Exists() {
		return FormatLegacy
	}
	return FormatCurrent
}
