// Package http implements the HTTP front of the server.
//
// Every request passes the same chain before it reaches a route: trace id,
// access log, gzip, the client address filter, the workflow save watcher,
// token authentication and the request policy. Routes then delegate to the
// service layer and to the caller-scoped queue.
package http
