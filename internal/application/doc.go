// Package application provides application initialization and dependency
// wiring. It connects the configuration store, the lookup module, and the
// HTTP layer into a runnable server, keeping the main package focused on CLI
// parsing and orchestration.
package application
