// Package types defines the record kinds captured by the app, the shared
// location and completeness helpers, configuration, and standard errors.
package types
