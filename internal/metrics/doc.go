// Package metrics provides solver.Metric implementations that summarize a
// propagation sweep by sweep.
package metrics
