package filter

import (
	"strings"

	"github.com/papapumpkin/sysbrowse/internal/browser"
)

// Check is a single named predicate in a filter chain.
type Check struct {
	Name string
	Fn   func(item browser.TreeItem) bool
}

// Chain runs checks in order and fails on the first one that rejects an
// item. An empty chain passes everything.
type Chain struct {
	Checks []Check
}

// PassesFilter reports whether every check accepts item.
func (c *Chain) PassesFilter(item browser.TreeItem) bool {
	return c.FirstFailure(item) == ""
}

// FirstFailure returns the name of the first check rejecting item, or ""
// when all pass.
func (c *Chain) FirstFailure(item browser.TreeItem) string {
	if c == nil {
		return ""
	}
	for _, check := range c.Checks {
		if !check.Fn(item) {
			return check.Name
		}
	}
	return ""
}

// Add appends a check and returns c for chaining.
func (c *Chain) Add(name string, fn func(item browser.TreeItem) bool) *Chain {
	c.Checks = append(c.Checks, Check{Name: name, Fn: fn})
	return c
}

// DefaultChain builds the chain the list command attaches: the text query,
// then an optional module restriction. Empty arguments add no check.
func DefaultChain(query, module string) *Chain {
	c := &Chain{}
	if text := Parse(query); !text.Empty() {
		c.Add("text", text.PassesFilter)
	}
	if module != "" {
		c.Add("module", ModuleIs(module))
	}
	return c
}

// ModuleIs returns a check accepting subsystems whose module equals module,
// ignoring case. Categories pass.
func ModuleIs(module string) func(item browser.TreeItem) bool {
	return func(item browser.TreeItem) bool {
		sub, ok := item.(*browser.SubsystemItem)
		if !ok {
			return true
		}
		return strings.EqualFold(sub.Module(), module)
	}
}
