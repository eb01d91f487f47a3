// Package httpclient provides the outbound HTTP plumbing shared by every
// gateway: the credential-injecting [Authorizer], the request-ID decorator,
// the [APIError] taxonomy, and the JSON call helper.
//
// The Authorizer is the single chokepoint for request authorization. Every
// call path — session manager, notification poller, CRUD gateways — runs
// through one authorized *http.Client, so bearer injection and the
// 401-forced-logout reaction hold uniformly for all current and future
// call sites.
//
// # Architecture boundaries
//
// This package knows nothing about which gateway issued a request and does
// not interpret response bodies beyond carrying them in [APIError]. Session
// mutation happens through the narrow [Session] interface only.
//
// # What this package must NOT do
//
//   - Import labelkit or any sibling package (no upward imports).
//   - Swallow errors: a 401 still reaches its original caller after the
//     forced logout and redirect side effects have fired.
//   - Retry: every call fails once and surfaces the error.
package httpclient
