// Package state provides the broadcast cell primitive used for observable
// session state: a holder of a current value plus a registry of live
// subscribers.
//
// A [Cell] differs from a one-shot future in two ways: it always has a
// current value that can be read synchronously, and every new subscriber
// immediately receives the latest value before any subsequent change
// ("replay latest one" semantics).
//
// # Architecture boundaries
//
// This package owns value distribution only. It does not know what the
// values mean — the session manager publishes identities through one cell,
// the notification poller publishes unread counts through another.
//
// # What this package must NOT do
//
//   - Import labelkit or any sibling package (no upward imports).
//   - Block a publisher on a slow subscriber; delivery conflates to the
//     newest value instead.
package state
