// Package httpapi exposes a configuration root over HTTP.
//
// Routes, relative to the handler:
//
//	GET  /api/configuration/all            merged flat view of every provider
//	GET  /api/configuration/value/{key}    one value; 404 when absent or null
//	GET  /api/configuration/section/{name} the section rebuilt as a JSON tree
//	POST /api/configuration/reload         reload every provider
//	GET  /metrics                          Prometheus metrics, when a gatherer is set
//
// Keys and section names use the colon-separated path syntax, e.g.
// "Notifications:Email:Enabled".
package httpapi
