// Package lookup adapts the configuration store to the host plugin contract
// used by playbook-style callers: a positional key string per invocation,
// answered with a single-element result list.
package lookup
