// Package main hosts the langtagger CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into tagging
// passes, daemon API calls, run history and log views, and configuration
// scaffolding. Passes go through a running daemon when one answers on the
// configured API bind and run in-process otherwise, so the scan lock and run
// history stay consistent either way.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
