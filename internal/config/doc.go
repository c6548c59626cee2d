// Package config locates, parses, and caches the activist configuration
// document and resolves dotted key paths against it. The document is loaded
// from the first existing file among a fixed list of search paths (project
// directory, then per-user, then system-wide) and is immutable for the
// remainder of the process. Lookups are permissive: absent keys, explicit
// nulls, and traversals through non-mapping values all degrade to the
// caller-supplied default instead of failing.
package config
