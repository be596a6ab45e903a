// Package types defines the roadmap entity types, the collaborator interfaces
// the progression engine depends on (Catalog, Store, Surface), configuration,
// and the standard error values shared across packages.
package types
