// Package logs reads the JSON log file written next to every scan and daemon
// run.
//
// It tails the file with bounded memory usage, supports negative offsets for
// "last N records" reads, and follows the file for `langtagger logs
// --follow`. Records can be narrowed to one scan, one item, a component, or a
// minimum level, which is how an operator reconstructs what a single pass did
// to a single item. Callers supply context deadlines so polling shuts down
// cleanly when the CLI exits.
package logs
