// Package services implements domain business logic and use cases.
package services

import (
	"strings"

	"github.com/mkrail/winmedia/internal/domain/entities"
)

// SelectionService picks a catalog entry matching the operator's criteria.
// Pure business logic - no I/O.
type SelectionService struct{}

// NewSelectionService creates a new selection service
func NewSelectionService() *SelectionService {
	return &SelectionService{}
}

// Select filters entries against the criteria and returns the chosen entry
// together with the total number of matches. Ties break deterministically to
// the first match in catalog document order. Zero matches yields a
// *entities.NoMatchError.
func (s *SelectionService) Select(entries []entities.CatalogEntry, criteria entities.SelectionCriteria) (*entities.CatalogEntry, int, error) {
	var chosen *entities.CatalogEntry
	matched := 0

	for i := range entries {
		if !s.Matches(&entries[i], criteria) {
			continue
		}
		if chosen == nil {
			chosen = &entries[i]
		}
		matched++
	}

	if chosen == nil {
		return nil, 0, &entities.NoMatchError{Criteria: criteria}
	}

	return chosen, matched, nil
}

// Matches reports whether a single entry satisfies the criteria.
// Architecture and language compare exactly (case-insensitive); the edition
// compares as a substring after stripping spaces, so "Enterprise N" matches
// the catalog's "EnterpriseN".
func (s *SelectionService) Matches(entry *entities.CatalogEntry, criteria entities.SelectionCriteria) bool {
	if criteria.Architecture != "" && !strings.EqualFold(entry.Architecture, criteria.Architecture) {
		return false
	}
	if criteria.Language != "" && !strings.EqualFold(entry.LanguageCode, criteria.Language) {
		return false
	}
	if criteria.Edition != "" && !strings.Contains(normalizeEdition(entry.Edition), normalizeEdition(criteria.Edition)) {
		return false
	}
	return true
}

func normalizeEdition(edition string) string {
	return strings.ToLower(strings.ReplaceAll(edition, " ", ""))
}
