// Package config provides configuration loading, merging, and validation
// for the usgromana server.
//
// Configuration is assembled from several sources. A field set by an earlier
// source is never overridden by a later one:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (path from CONFIG, -c or -config)
//  4. Built-in defaults ([Defaults])
//
// The main entry point is [GetStructuredConfig].
package config
