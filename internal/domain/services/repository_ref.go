package services

import (
	"fmt"
	"strings"
)

// RepositoryRef identifies a repository on the hosting service
type RepositoryRef struct {
	Owner string
	Name  string
}

// String returns the owner/name form
func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository parses an "owner/repo" string
func ParseRepository(s string) (RepositoryRef, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepositoryRef{}, fmt.Errorf("invalid repository %q: expected owner/repo", s)
	}
	return RepositoryRef{Owner: parts[0], Name: parts[1]}, nil
}
