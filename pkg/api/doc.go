// Package api is the transport layer shared by the algorithm and data
// clients.
//
// # Overview
//
// A Client owns the HTTP client, the API key and the base URL. It composes
// request URLs, injects the Authorization, User-Agent and X-Request-Id
// headers, logs every call through hclog and optionally records Prometheus
// metrics. It performs no retries: every failure is returned to the caller on
// first occurrence.
//
// # Configuration Example
//
//	cfg := api.ConfigFromEnv()
//	cfg.Timeout = 5 * time.Minute
//	client, err := api.NewClient(cfg, api.WithLogger(logger))
//
// # Error Handling
//
// Errors shared by the algorithm and data clients live here:
//   - RemoteError for `{"error": ..., "stacktrace": ...}` envelopes
//   - NotFoundError for 404 responses
//   - StatusError for other non-success responses without an envelope
//   - RequestError for transport and body read failures, annotated with the
//     operation and target
//   - DecodeError for payloads that do not have the expected shape
package api
