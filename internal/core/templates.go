package core

import (
	"sort"
	"strconv"

	"github.com/spec-kit/support-bot/internal/domain"
	apperrors "github.com/spec-kit/support-bot/pkg/util"
)

// TemplateKeyed pairs a template with its map key for listing.
type TemplateKeyed struct {
	Key      string
	Template domain.AnswerTemplate
}

// AddTemplate stores a new template under the next numeric key and returns
// the key.
func (c *Core) AddTemplate(name, text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := strconv.Itoa(len(c.templates) + 1)
	for {
		if _, exists := c.templates[key]; !exists {
			break
		}
		// Deleted templates leave key gaps; keep probing upward.
		n, _ := strconv.Atoi(key)
		key = strconv.Itoa(n + 1)
	}
	c.templates[key] = domain.AnswerTemplate{Name: name, Text: text}
	return key
}

// UpdateTemplate replaces the body of an existing template.
func (c *Core) UpdateTemplate(key, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tpl, ok := c.templates[key]
	if !ok {
		return apperrors.NewTemplateNotFound(key)
	}
	tpl.Text = text
	c.templates[key] = tpl
	return nil
}

// DeleteTemplate removes a template and returns its name.
func (c *Core) DeleteTemplate(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tpl, ok := c.templates[key]
	if !ok {
		return "", apperrors.NewTemplateNotFound(key)
	}
	delete(c.templates, key)
	return tpl.Name, nil
}

// Template fetches one template by key.
func (c *Core) Template(key string) (domain.AnswerTemplate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tpl, ok := c.templates[key]
	if !ok {
		return domain.AnswerTemplate{}, apperrors.NewTemplateNotFound(key)
	}
	return tpl, nil
}

// Templates lists every template sorted by key (numeric keys numerically).
func (c *Core) Templates() []TemplateKeyed {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := make([]TemplateKeyed, 0, len(c.templates))
	for key, tpl := range c.templates {
		list = append(list, TemplateKeyed{Key: key, Template: tpl})
	}
	sort.Slice(list, func(i, j int) bool {
		a, aErr := strconv.Atoi(list[i].Key)
		b, bErr := strconv.Atoi(list[j].Key)
		if aErr == nil && bErr == nil {
			return a < b
		}
		return list[i].Key < list[j].Key
	})
	return list
}
