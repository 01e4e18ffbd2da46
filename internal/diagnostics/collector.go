package diagnostics

import "io"

// Collector is the Diagnostic Collector (spec §3/§7): every diagnostic a
// phase produces is funneled through Add rather than returned ad hoc, so
// downstream phases can gate on HasErrors instead of each caller
// re-deriving it from a slice of errors.
type Collector struct {
	Diagnostics  []*Diagnostic
	ErrorCount   int
	WarningCount int
}

// NewCollector creates an empty Diagnostic Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add finalizes d and accumulates it, updating ErrorCount/WarningCount
// from its severity.
func (c *Collector) Add(d *Diagnostic) {
	d.Finalize()
	c.Diagnostics = append(c.Diagnostics, d)
	switch d.Severity {
	case Error:
		c.ErrorCount++
	case Warning:
		c.WarningCount++
	}
}

// HasErrors reports whether any collected diagnostic was an Error,
// gating whether a downstream phase should run at all.
func (c *Collector) HasErrors() bool {
	return c.ErrorCount > 0
}

// EmitAll writes every collected diagnostic to w in collection order and
// marks each Emitted.
func (c *Collector) EmitAll(w io.Writer) {
	for _, d := range c.Diagnostics {
		d.EmitTerminal(w)
		d.MarkEmitted()
	}
}
