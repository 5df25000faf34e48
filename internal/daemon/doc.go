// Package daemon coordinates the long-running langtagger process.
//
// It wires configuration, run history, the scan orchestrator, the cron
// scheduler, and the HTTP control API into a single lifecycle with
// flock-based locking to prevent multiple instances. On start it fails runs
// left "running" by a previous process and prunes expired log files.
//
// Keep orchestration logic here: tagging semantics live in the scan and
// aggregate packages while the daemon focuses on startup, shutdown, triggers,
// and high level coordination.
package daemon
