package errors

import "go.uber.org/multierr"

// Collector lets the inferencer continue past a declaration that fails to
// type instead of aborting the whole run (spec.md §4.3/§7). The default
// policy with no installed Collector is to raise (return the error);
// drivers that want best-effort diagnostics install one first.
type Collector struct {
	errs []*SolisError
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Append records err and lets the caller proceed to the next declaration.
func (c *Collector) Append(err *SolisError) {
	if err == nil {
		return
	}
	c.errs = append(c.errs, err)
}

// Len reports how many errors have been collected.
func (c *Collector) Len() int { return len(c.errs) }

// Errors returns the collected diagnostics in the order they were appended.
func (c *Collector) Errors() []*SolisError {
	return c.errs
}

// Err combines every collected diagnostic into a single error via
// go.uber.org/multierr, or nil if nothing was collected.
func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	combined := make([]error, len(c.errs))
	for i, e := range c.errs {
		combined[i] = e
	}
	return multierr.Combine(combined...)
}
