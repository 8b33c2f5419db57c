// Package server exposes dombili's document façade over HTTP.
//
// Endpoints:
//
//	POST /v1/query    run a selector against posted HTML, return matches
//	POST /v1/mutate   apply an ordered list of mutations, return the result
//	GET  /v1/session  WebSocket: hold a document and stream commands at it
//	GET  /healthz     liveness
//	GET  /metrics     Prometheus metrics
//
// Queries and mutations are traced with OpenTelemetry and counted in
// Prometheus. A session keeps its document in memory for the lifetime of
// the connection only; nothing is persisted.
package server
