// Package application provides application initialization and dependency wiring.
// It builds the property cache, the keyset sources and aggregator, the HTTP
// router and server, keeping the main package focused on CLI parsing and
// signal handling.
package application
