// Package queue holds the shared job queue of the execution engine and the
// per-user view over it.
//
// [PromptQueue] is the single process-wide structure: a priority queue of
// pending entries, the set of running tasks and the bounded job history.
// Every entry carries the owner it was submitted under. [Isolator] wraps it
// and scopes each operation to the identity found in the request context, so
// that callers only ever see and change their own jobs.
package queue
