// Package repository exposes the CRUD contracts over the embedded store.
// Repositories enforce the per-entity acceptance constraints (trimming,
// required fields, positive values) so every caller gets the same rules.
package repository

import "strings"

// trimPtr trims an optional text field and collapses blank input to nil,
// so "not provided" and "provided but blank" both store the same explicit
// absence marker.
func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
