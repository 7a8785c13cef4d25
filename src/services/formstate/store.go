package formstate

import (
	"Backend-Procure/src/models"
)

// SectionStore holds the canonical ordered section list backing one rendered
// request form. Operations are synchronous full replacements; the store is
// used from a single goroutine and never exposes a partially-updated list.
//
// The store does not renumber Section.Order on insert or remove. Callers that
// care about stored order re-derive it from position before persisting.
type SectionStore struct {
	sections []models.Section
}

// NewSectionStore copies the given sections into a fresh store.
func NewSectionStore(sections []models.Section) *SectionStore {
	s := &SectionStore{}
	s.ReplaceAll(sections)
	return s
}

// Len returns the number of sections.
func (s *SectionStore) Len() int {
	return len(s.sections)
}

// Sections returns a copy of the current section list.
func (s *SectionStore) Sections() []models.Section {
	out := make([]models.Section, len(s.sections))
	copy(out, s.sections)
	return out
}

// Section returns a copy of the section at position index.
func (s *SectionStore) Section(index int) (models.Section, error) {
	if index < 0 || index >= len(s.sections) {
		return models.Section{}, ErrIndexOutOfRange
	}
	return s.sections[index], nil
}

// InsertSection inserts a section at position index, shifting later sections.
func (s *SectionStore) InsertSection(index int, section models.Section) error {
	if index < 0 || index > len(s.sections) {
		return ErrIndexOutOfRange
	}
	s.sections = append(s.sections, models.Section{})
	copy(s.sections[index+1:], s.sections[index:])
	s.sections[index] = section
	return nil
}

// RemoveSection removes the section at position index. Cross-section
// recomputation (option pools, signer list) is the caller's concern.
func (s *SectionStore) RemoveSection(index int) error {
	if index < 0 || index >= len(s.sections) {
		return ErrIndexOutOfRange
	}
	s.sections = append(s.sections[:index], s.sections[index+1:]...)
	return nil
}

// UpdateSection fully replaces the section at position index.
func (s *SectionStore) UpdateSection(index int, section models.Section) error {
	if index < 0 || index >= len(s.sections) {
		return ErrIndexOutOfRange
	}
	s.sections[index] = section
	return nil
}

// ReplaceAll replaces the whole list, used when loading fetched data or
// resetting to the template's original sections.
func (s *SectionStore) ReplaceAll(sections []models.Section) {
	s.sections = make([]models.Section, len(sections))
	copy(s.sections, sections)
}
