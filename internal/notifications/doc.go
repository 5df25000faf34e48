// Package notifications delivers pass results via ntfy.
//
// NewService returns an ntfy-backed Service when a topic is configured and a
// no-op otherwise, so the daemon can report every finished pass without
// checking configuration itself. Failed and cancelled passes are always sent;
// completed ones only when notify_success is enabled.
package notifications
