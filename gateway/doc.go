// Package gateway holds the thin CRUD request builders for the platform
// API: artist submissions and label-side discovery/rating.
//
// Gateways carry no session logic. They must be constructed with the
// session manager's authorized client so every call flows through the
// credential-injection chokepoint; a gateway never knows whether a token
// was attached or why a 401 logged the user out.
//
// # What this package must NOT do
//
//   - Touch session state or tokens.
//   - Retry: each call fails once and the *httpclient.APIError surfaces
//     to the caller verbatim.
package gateway
