// Package prompts holds the read-only catalog of agent prompts. The catalog
// is parsed from an embedded YAML document and never changes afterwards.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var embedded []byte

const (
	CategorySystem    = "system"
	CategoryRoles     = "roles"
	CategoryWorkflows = "workflows"
	CategoryTechnical = "technical"
)

type Prompt struct {
	Name             string   `yaml:"name" json:"name"`
	Category         string   `yaml:"category" json:"category"`
	Description      string   `yaml:"description" json:"description"`
	Arguments        []string `yaml:"arguments" json:"arguments"`
	Content          string   `yaml:"content" json:"content"`
	RecommendedTools []string `yaml:"recommendedTools" json:"recommendedTools"`
	Aliases          []string `yaml:"aliases" json:"aliases,omitempty"`
}

func (p Prompt) clone() Prompt {
	p.Arguments = append([]string{}, p.Arguments...)
	p.RecommendedTools = append([]string{}, p.RecommendedTools...)
	if p.Aliases != nil {
		p.Aliases = append([]string{}, p.Aliases...)
	}
	return p
}

type Category struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Prompts     []string `yaml:"-" json:"prompts"`
}

// Selection is the outcome of a role or workflow lookup.
type Selection struct {
	Key              string   `json:"key"`
	Prompt           Prompt   `json:"prompt"`
	RecommendedTools []string `json:"recommendedTools"`
	Fallback         bool     `json:"fallback"`
}

type fallback struct {
	Prompt        string   `yaml:"prompt"`
	RoleTools     []string `yaml:"roleTools"`
	WorkflowTools []string `yaml:"workflowTools"`
}

type document struct {
	Fallback   fallback   `yaml:"fallback"`
	Categories []Category `yaml:"categories"`
	Prompts    []Prompt   `yaml:"prompts"`
}

type Catalog struct {
	prompts    []Prompt
	byName     map[string]int
	categories []Category
	fallback   fallback
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embedded)
})

// Default returns the catalog built from the embedded prompts.yaml.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Parse builds a catalog from a YAML document and checks that every prompt
// names a declared category and that the fallback prompt exists.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalog: %w", err)
	}

	c := &Catalog{
		byName:   make(map[string]int, len(doc.Prompts)),
		fallback: doc.Fallback,
	}

	catIndex := make(map[string]int, len(doc.Categories))
	for _, cat := range doc.Categories {
		if _, dup := catIndex[cat.Name]; dup {
			return nil, fmt.Errorf("duplicate prompt category %q", cat.Name)
		}
		catIndex[cat.Name] = len(c.categories)
		c.categories = append(c.categories, Category{Name: cat.Name, Description: cat.Description})
	}

	for _, p := range doc.Prompts {
		if p.Name == "" {
			return nil, fmt.Errorf("prompt without a name")
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate prompt %q", p.Name)
		}
		i, ok := catIndex[p.Category]
		if !ok {
			return nil, fmt.Errorf("prompt %q has unknown category %q", p.Name, p.Category)
		}
		if p.Arguments == nil {
			p.Arguments = []string{}
		}
		if p.RecommendedTools == nil {
			p.RecommendedTools = []string{}
		}
		p.Content = strings.TrimRight(p.Content, "\n")

		c.byName[p.Name] = len(c.prompts)
		c.prompts = append(c.prompts, p)
		c.categories[i].Prompts = append(c.categories[i].Prompts, p.Name)
	}

	if _, ok := c.byName[c.fallback.Prompt]; !ok {
		return nil, fmt.Errorf("fallback prompt %q is not defined", c.fallback.Prompt)
	}
	return c, nil
}

func (c *Catalog) Get(name string) (Prompt, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Prompt{}, false
	}
	return c.prompts[i].clone(), true
}

// All returns every prompt in declaration order.
func (c *Catalog) All() []Prompt {
	out := make([]Prompt, len(c.prompts))
	for i, p := range c.prompts {
		out[i] = p.clone()
	}
	return out
}

// ByCategory matches the category name case-insensitively. An unknown
// category yields an empty list.
func (c *Catalog) ByCategory(category string) []Prompt {
	out := []Prompt{}
	for _, p := range c.prompts {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p.clone())
		}
	}
	return out
}

func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		cat.Prompts = append([]string(nil), cat.Prompts...)
		out[i] = cat
	}
	return out
}

// ForRole picks the role prompt whose name or alias matches role. Anything
// else falls back to the orchestrator prompt.
func (c *Catalog) ForRole(role string) Selection {
	return c.selectFor(role, c.fallback.RoleTools, CategoryRoles)
}

// ForWorkflow is ForRole for workflow and technical prompts.
func (c *Catalog) ForWorkflow(workflow string) Selection {
	return c.selectFor(workflow, c.fallback.WorkflowTools, CategoryWorkflows, CategoryTechnical)
}

func (c *Catalog) selectFor(key string, fallbackTools []string, categories ...string) Selection {
	want := strings.ToLower(strings.TrimSpace(key))
	for _, p := range c.prompts {
		if !inCategory(p.Category, categories) {
			continue
		}
		if p.Name == want || contains(p.Aliases, want) {
			p = p.clone()
			return Selection{Key: key, Prompt: p, RecommendedTools: append([]string{}, p.RecommendedTools...)}
		}
	}

	fb, _ := c.Get(c.fallback.Prompt)
	tools := append([]string{}, fallbackTools...)
	return Selection{Key: key, Prompt: fb, RecommendedTools: tools, Fallback: true}
}

func inCategory(category string, categories []string) bool {
	for _, c := range categories {
		if category == c {
			return true
		}
	}
	return false
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if strings.ToLower(v) == want {
			return true
		}
	}
	return false
}
