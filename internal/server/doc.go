// Package server runs the HTTP server and the queue workers side by side
// and shuts both down on SIGINT, SIGTERM or SIGQUIT.
package server
