package pdfgraph

import "github.com/coregx/pdfgraph/internal/xref"

type config struct {
	maxXRefChainDepth int
}

func defaultConfig() config {
	return config{maxXRefChainDepth: xref.DefaultMaxChainDepth}
}

// Option configures ParseDocument.
type Option func(*config)

// WithMaxXRefChainDepth overrides how many /Prev links are followed
// when merging a document's cross-reference chain. Most callers never
// need this; it exists for files with unusually long incremental-update
// histories that would otherwise hit DefaultMaxChainDepth.
func WithMaxXRefChainDepth(n int) Option {
	return func(c *config) { c.maxXRefChainDepth = n }
}
