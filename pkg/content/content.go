// Package content loads the marketing copy for every page of the site.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var embeddedSite []byte

type Link struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

type FooterColumn struct {
	Heading string `yaml:"heading"`
	Links   []Link `yaml:"links"`
}

type Item struct {
	Metric      string `yaml:"metric"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

type Section struct {
	Heading string `yaml:"heading"`
	Intro   string `yaml:"intro"`
	Items   []Item `yaml:"items"`
}

type Hero struct {
	Title     string `yaml:"title"`
	Highlight string `yaml:"highlight"`
	Subtitle  string `yaml:"subtitle"`
	Actions   []Link `yaml:"actions"`
}

type CTA struct {
	Heading string `yaml:"heading"`
	Intro   string `yaml:"intro"`
	Actions []Link `yaml:"actions"`
}

type Page struct {
	Slug        string    `yaml:"slug"`
	Path        string    `yaml:"path"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Hero        Hero      `yaml:"hero"`
	Sections    []Section `yaml:"sections"`
	CTA         *CTA      `yaml:"cta"`
}

type Meta struct {
	Name         string `yaml:"name"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	Keywords     string `yaml:"keywords"`
	Tagline      string `yaml:"tagline"`
	ContactEmail string `yaml:"contact_email"`
	ResponseTime string `yaml:"response_time"`
	Location     string `yaml:"location"`
}

// Site is the whole site's copy
type Site struct {
	Meta   Meta           `yaml:"site"`
	Nav    []Link         `yaml:"nav"`
	Footer []FooterColumn `yaml:"footer"`
	Pages  []Page         `yaml:"pages"`

	byPath map[string]*Page
}

// Load reads the site copy from path, or the embedded copy when path is empty
func Load(path string) (*Site, error) {
	if path == "" {
		return Parse(embeddedSite)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks site copy
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	if err := site.index(); err != nil {
		return nil, err
	}
	return &site, nil
}

// Page looks a page up by its request path
func (s *Site) Page(path string) (*Page, bool) {
	p, ok := s.byPath[path]
	return p, ok
}

func (s *Site) index() error {
	if s.Meta.Name == "" {
		return errors.New("content: site name is required")
	}

	s.byPath = make(map[string]*Page, len(s.Pages))
	for i := range s.Pages {
		p := &s.Pages[i]
		if p.Path == "" || p.Slug == "" {
			return fmt.Errorf("content: page %d is missing a slug or path", i)
		}
		if err := checkPagePath(p.Path); err != nil {
			return fmt.Errorf("content: page %q: %w", p.Slug, err)
		}
		if _, dup := s.byPath[p.Path]; dup {
			return fmt.Errorf("content: duplicate page path %q", p.Path)
		}
		s.byPath[p.Path] = p
	}

	for _, l := range s.Nav {
		if _, ok := s.byPath[l.Path]; !ok {
			return fmt.Errorf("content: nav link %q points to unknown page %q", l.Label, l.Path)
		}
	}
	return nil
}

// reservedPaths are served by the contact form and the JSON API
var reservedPaths = []string{"/contact/reset", "/v1"}

func checkPagePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path %q must start with /", path)
	}
	if strings.ContainsAny(path, ":*") {
		return fmt.Errorf("path %q must not contain route wildcards", path)
	}
	for _, r := range reservedPaths {
		if path == r || strings.HasPrefix(path, r+"/") {
			return fmt.Errorf("path %q is reserved", path)
		}
	}
	return nil
}
