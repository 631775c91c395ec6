// Package docs holds the built-in help topics shown by 'casedoc docs'.
package docs

import (
	"fmt"
	"strings"
)

// Topic holds a single documentation article.
type Topic struct {
	Name    string // short slug used as CLI argument
	Title   string
	Summary string // one-line description for topic listing
	Content string // plain text, no ANSI
}

// All returns every topic in display order.
func All() []Topic {
	return topics
}

// Names lists topic slugs in display order.
func Names() []string {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}

// Get looks up a topic by name, ignoring case.
func Get(name string) (Topic, error) {
	for _, t := range topics {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("unknown topic %q (available: %s)", name, strings.Join(Names(), ", "))
}
