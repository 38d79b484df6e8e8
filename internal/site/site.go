// Package site holds the launch page variants. The near-duplicate revisions
// of the page are data in an embedded YAML file served through one shell.
package site

import (
	"bigbraintime/pkg/countdown"
	"bigbraintime/pkg/serrors"
	_ "embed"
	"fmt"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultVariant is served when no variant is configured.
const DefaultVariant = "launch-2025"

//go:embed variants.yml
var variantsYAML []byte

// Link is a labelled URL used by the navigation bar and social links.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Feature is a short blurb in the features section.
type Feature struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Question is one FAQ entry.
type Question struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Milestone is one timeline entry.
type Milestone struct {
	Date  string `yaml:"date"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// FormCopy holds the signup form strings.
type FormCopy struct {
	Placeholder string `yaml:"placeholder"`
	Button      string `yaml:"button"`
	Pending     string `yaml:"pending"`
}

// Content is one page variant.
type Content struct {
	// Name is the variant key.
	Name string `yaml:"-"`

	Brand     string              `yaml:"brand"`
	Headline  string              `yaml:"headline"`
	Tagline   string              `yaml:"tagline"`
	Launch    time.Time           `yaml:"launch"`
	Precision countdown.Precision `yaml:"precision"`

	ContactEmail string `yaml:"contactEmail"`

	Nav      []Link      `yaml:"nav"`
	Form     FormCopy    `yaml:"form"`
	Features []Feature   `yaml:"features"`
	FAQ      []Question  `yaml:"faq"`
	Timeline []Milestone `yaml:"timeline"`
	Socials  []Link      `yaml:"socials"`
}

var parseVariants = sync.OnceValues(func() (map[string]Content, error) { //nolint: gochecknoglobals
	return Parse(variantsYAML)
})

// Parse decodes a variants document keyed by variant name.
func Parse(b []byte) (map[string]Content, error) {
	variants := map[string]Content{}
	if err := yaml.Unmarshal(b, &variants); err != nil {
		return nil, fmt.Errorf("could not parse variants: %w", err)
	}

	for name, c := range variants {
		if c.Launch.IsZero() {
			return nil, fmt.Errorf("variant %s has no launch date", name)
		}
		c.Name = name
		if c.Precision == "" {
			c.Precision = countdown.PrecisionMinutes
		}
		variants[name] = c
	}

	return variants, nil
}

// Load returns the embedded variant called name.
func Load(name string) (*Content, error) {
	variants, err := parseVariants()
	if err != nil {
		return nil, err
	}

	c, ok := variants[name]
	if !ok {
		return nil, serrors.With(serrors.ErrNotFound, "variant %q not found", name)
	}

	return &c, nil
}

// Names lists the embedded variant names in order.
func Names() []string {
	variants, err := parseVariants()
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
