// Package registry maps step type names to the functions building them, so definition
// loaders can be extended with custom steps.
package registry
