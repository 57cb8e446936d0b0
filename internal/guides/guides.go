// Package guides holds the static parent guidance catalogue.
package guides

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyResource = errors.New("resource needs a url or a description")
	ErrInvalidURL    = errors.New("resource url must be absolute http(s)")
)

//go:embed data/guides.yaml
var catalogYAML []byte

// Resource points a parent to outside help.
// At least one of URL and Description is always set.
type Resource struct {
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewResource builds a validated resource
func NewResource(name, rawURL, description string) (Resource, error) {
	r := Resource{
		Name:        strings.TrimSpace(name),
		URL:         strings.TrimSpace(rawURL),
		Description: strings.TrimSpace(description),
	}
	return r, r.Validate()
}

// Validate enforces the url-or-description invariant
func (r Resource) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrEmptyResource)
	}
	if r.URL == "" && r.Description == "" {
		return fmt.Errorf("%w: %s", ErrEmptyResource, r.Name)
	}
	if r.URL != "" {
		u, err := url.Parse(r.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %s", ErrInvalidURL, r.Name)
		}
	}
	return nil
}

// HasURL reports whether the resource links somewhere
func (r Resource) HasURL() bool { return r.URL != "" }

// ResourceCategory groups related resources
type ResourceCategory struct {
	Category  string     `json:"category" yaml:"category"`
	Resources []Resource `json:"resources" yaml:"resources"`
}

// Milestone lists expected skills for an age band
type Milestone struct {
	Age   string   `json:"age" yaml:"age"`
	Items []string `json:"items" yaml:"items"`
}

// Strategy is a titled list of practical tips
type Strategy struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Items       []string `json:"items" yaml:"items"`
}

// Catalog is the whole guidance content
type Catalog struct {
	Milestones    []Milestone        `json:"milestones" yaml:"milestones"`
	Communication []Strategy         `json:"communication" yaml:"communication"`
	Behavior      []Strategy         `json:"behavior" yaml:"behavior"`
	Resources     []ResourceCategory `json:"resources" yaml:"resources"`
}

// Load returns the embedded catalogue
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes and validates a catalogue document
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse guides: %w", err)
	}
	for _, cat := range c.Resources {
		for _, r := range cat.Resources {
			if err := r.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", cat.Category, err)
			}
		}
	}
	return &c, nil
}
