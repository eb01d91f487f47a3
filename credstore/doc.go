// Package credstore provides durable persistence for the current credential
// pair (access and refresh tokens) and the serialized identity record.
//
// The store holds exactly one signed-in user at a time. Its three entries —
// access token, refresh token, identity blob — are written and cleared as a
// unit, so a reader never finds a token without the matching identity or
// vice versa.
//
// [RedisStore] is the durable implementation; [MemoryStore] backs tests and
// embedded use where persistence across restarts is not required.
//
// # Architecture boundaries
//
// This package owns storage only. It does not interpret tokens, does not
// decode the identity blob, and performs no consistency repair at load time
// — the session manager decides what to do with a partial record.
//
// # What this package must NOT do
//
//   - Import labelkit or any sibling package (no upward imports).
//   - Encrypt or validate tokens; they are opaque strings issued elsewhere.
package credstore
