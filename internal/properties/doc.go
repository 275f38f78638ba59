// Package properties resolves named settings from the finance configuration
// file (Java .properties syntax) located under the configured base directory.
// Successful lookups are memoised in a storage.PropertyCache for the lifetime
// of the process; failures are logged and retried on the next lookup.
package properties
