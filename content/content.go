// Package content holds the dashboard's static text: the home bookshelf,
// section headings and the metric-card explanations.
//
// The defaults are embedded. A YAML file with the same shape can replace
// them at startup (CONTENT_FILE).
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

//go:embed content.yaml
var defaultYAML []byte

// Content is the full text bundle.
type Content struct {
	App      App      `yaml:"app"`
	Home     Home     `yaml:"home"`
	Domestic Domestic `yaml:"domestic"`
	Metrics  []Metric `yaml:"metrics"`
}

// App names the dashboard and its navigation.
type App struct {
	Name string `yaml:"name"`
	Nav  []Link `yaml:"nav"`
}

// Link is one navigation entry.
type Link struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

// Home is the landing page.
type Home struct {
	Title string      `yaml:"title"`
	Intro string      `yaml:"intro"`
	Hint  string      `yaml:"hint"`
	Shelf []ShelfBook `yaml:"shelf"`
}

// ShelfBook is one colored book on the home shelf.
type ShelfBook struct {
	Key         string `yaml:"key"`
	Label       string `yaml:"label"`
	Button      string `yaml:"button"`
	Legend      string `yaml:"legend"`
	Color       string `yaml:"color"`
	Help        string `yaml:"help"`
	Composition string `yaml:"composition"`
	Usage       string `yaml:"usage"`
}

// Domestic is the market page text.
type Domestic struct {
	Title          string            `yaml:"title"`
	Sections       map[string]string `yaml:"sections"`
	CategoryPrompt string            `yaml:"category_prompt"`
	ExplainLabel   string            `yaml:"explain_label"`
}

// Section returns a section heading, or key when it is not configured.
func (d Domestic) Section(key string) string {
	if s, ok := d.Sections[key]; ok && s != "" {
		return s
	}
	return key
}

// Metric describes one metric card. Static metrics carry their value here
// instead of computing it.
type Metric struct {
	Key         string   `yaml:"key"`
	Label       string   `yaml:"label"`
	Static      *float64 `yaml:"static"`
	Unit        string   `yaml:"unit"`
	Decimals    int      `yaml:"decimals"`
	Desc        string   `yaml:"desc"`
	Explanation string   `yaml:"explanation"` // Markdown

	html template.HTML
}

// HTML is the sanitized rendering of Explanation.
func (m Metric) HTML() template.HTML { return m.html }

// Metric returns the card with key.
func (c *Content) Metric(key string) (Metric, bool) {
	for _, m := range c.Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}

// Book returns the shelf book with key.
func (c *Content) Book(key string) (ShelfBook, bool) {
	for _, b := range c.Home.Shelf {
		if b.Key == key {
			return b, true
		}
	}
	return ShelfBook{}, false
}

// Default returns the embedded content.
func Default() (*Content, error) {
	return Parse(defaultYAML)
}

// Load returns the embedded content, or the file at path when it is set.
func Load(path string) (*Content, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a content document, validates it and renders the metric
// explanations.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, domainerrors.Validation("content is not valid YAML").WithCause(err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	md := NewMarkdown()
	for i := range c.Metrics {
		html, err := md.Render(c.Metrics[i].Explanation)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", c.Metrics[i].Key, err)
		}
		c.Metrics[i].html = html
	}
	return &c, nil
}

func (c *Content) validate() error {
	problems := map[string]string{}

	seen := map[string]bool{}
	for i, b := range c.Home.Shelf {
		field := fmt.Sprintf("home.shelf[%d].key", i)
		switch {
		case b.Key == "":
			problems[field] = "required"
		case seen[b.Key]:
			problems[field] = "duplicate " + b.Key
		}
		seen[b.Key] = true
	}

	seen = map[string]bool{}
	for i, m := range c.Metrics {
		field := fmt.Sprintf("metrics[%d]", i)
		switch {
		case m.Key == "":
			problems[field+".key"] = "required"
		case seen[m.Key]:
			problems[field+".key"] = "duplicate " + m.Key
		case m.Label == "":
			problems[field+".label"] = "required"
		case m.Decimals < 0:
			problems[field+".decimals"] = "must be >= 0"
		}
		seen[m.Key] = true
	}

	if len(problems) > 0 {
		return domainerrors.ValidationWithDetails("content is invalid", problems)
	}
	return nil
}

// ============================================================================
// MARKDOWN
// ============================================================================

// Markdown renders Markdown to sanitized HTML.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdown returns a renderer with GitHub-flavored Markdown and the UGC
// sanitizing policy.
func NewMarkdown() *Markdown {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	return &Markdown{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: policy,
	}
}

// Render converts src. Indentation common to every line is removed first,
// so block scalars from YAML render as lists rather than code.
func (m *Markdown) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(dedent(src)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(strings.TrimSpace(m.policy.Sanitize(buf.String()))), nil
}

func dedent(s string) string {
	lines := strings.Split(s, "\n")
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return s
	}
	for i, l := range lines {
		if len(l) >= indent {
			lines[i] = l[indent:]
		} else {
			lines[i] = strings.TrimLeft(l, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
