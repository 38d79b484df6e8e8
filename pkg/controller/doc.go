// Package controller contains HTTP middlewares and helper handlers used by the
// launch page server.
//
// Provided middlewares:
//   - WithCORS: Allows cross-origin GET/POST so the page can be embedded elsewhere.
//   - WithLogger: Attaches a request-scoped logger and request ID, logs access
//     info and observes request latency.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
//   - GetClientIP: Resolves the originating client address behind proxies.
package controller
