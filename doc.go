// Package labelkit is the client-side session and request-authorization
// core for the LabelReader artist/label content-submission platform.
//
// It holds the current authenticated identity, attaches the bearer
// credential to every outgoing API call, reacts to authorization failures
// with a forced logout and a redirect signal, and feeds an observable
// unread-notification counter from a background poll loop. CRUD surfaces
// (submissions, discovery, notifications) are thin gateways layered on
// top of this core.
//
// A [Manager] is built once through [Builder.Build] and is safe for
// concurrent use afterwards. All gateways share the manager's authorized
// HTTP client, so credential injection and the 401 reaction apply
// uniformly to every call path.
//
// # Architecture boundaries
//
// labelkit is the public surface. It exposes [Manager], [Builder],
// [Config], the identity and auth payload types, and the audit/metrics
// value types. Storage lives in credstore, value broadcasting in state,
// transport plumbing in httpclient, polling in notify, CRUD in gateway.
//
// # What this package must NOT do
//
//   - Validate, parse, or sign tokens. They are opaque strings issued by
//     the remote auth endpoint; only the server interprets them.
//   - Retry remote calls. Failures surface once, verbatim, to the caller.
//   - Mutate cached state on any failure path: credential and session
//     changes happen only on the success paths of login, register, and
//     logout (explicit or forced).
package labelkit
