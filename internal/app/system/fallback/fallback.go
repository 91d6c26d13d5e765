// Package fallback decides what a page shows when a content section comes
// back empty.
//
// Most sections render an explicit placeholder so that missing
// configuration stays visible to the operator. A small set of sections
// substitutes built-in default content instead.
package fallback

import (
	_ "embed"
	"fmt"

	"github.com/dalemusser/strataministry/internal/app/system/metrics"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"gopkg.in/yaml.v3"
)

// Mode is the empty-section policy for one section.
type Mode int

const (
	// Placeholder shows a "nothing configured yet" message.
	Placeholder Mode = iota
	// Substitute shows built-in default records.
	Substitute
)

func (m Mode) String() string {
	if m == Substitute {
		return "substitute"
	}
	return "placeholder"
}

// modes is the per-section policy. Sections not listed use Placeholder.
var modes = map[string]Mode{
	sections.NameBeliefs:    Substitute,
	sections.NameLocations:  Placeholder,
	sections.NamePayments:   Placeholder,
	sections.NameDocuments:  Placeholder,
	sections.NameMinistries: Placeholder,
	sections.NameStatistics: Placeholder,
	sections.NameContent:    Placeholder,
}

// ModeFor returns the policy for a section.
func ModeFor(section string) Mode {
	return modes[section]
}

//go:embed beliefs.yaml
var beliefsYAML []byte

var defaultBeliefs = mustParse(beliefsYAML)

func mustParse(raw []byte) []models.ContentBlock {
	var out []models.ContentBlock
	if err := yaml.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("fallback: parse beliefs.yaml: %v", err))
	}
	return out
}

// DefaultBeliefs returns a copy of the built-in belief statements.
func DefaultBeliefs() []models.ContentBlock {
	out := make([]models.ContentBlock, len(defaultBeliefs))
	copy(out, defaultBeliefs)
	return out
}

// Policy applies the per-section table and records substitutions.
type Policy struct {
	metrics *metrics.Metrics
}

// New creates a Policy. m may be nil.
func New(m *metrics.Metrics) *Policy {
	return &Policy{metrics: m}
}

// Apply returns blocks unchanged when non-empty. When empty and the section
// substitutes, it returns the defaults for that section and true.
func (p *Policy) Apply(section string, blocks []models.ContentBlock) ([]models.ContentBlock, bool) {
	if len(blocks) > 0 || ModeFor(section) != Substitute {
		return blocks, false
	}
	var defaults []models.ContentBlock
	switch section {
	case sections.NameBeliefs:
		defaults = DefaultBeliefs()
	}
	if len(defaults) == 0 {
		return blocks, false
	}
	p.metrics.FallbackSubstituted(section)
	return defaults, true
}
