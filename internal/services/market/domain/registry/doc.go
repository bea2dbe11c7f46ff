// Package registry is the asset registry: the catalog of unique assets with
// their creator, current owner, title and content identifier.
//
// Mutations are accepted only from the single configured caller (the
// gateway). The caller is set once by the administrator that created the
// registry.
package registry
