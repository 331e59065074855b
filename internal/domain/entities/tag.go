package entities

import (
	"strings"
	"unicode/utf8"
)

const TagNameMaxLength = 50

type Tag struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewTag(name string) *Tag {
	return &Tag{Name: strings.TrimSpace(name)}
}

func (t *Tag) validate() error {
	n := utf8.RuneCountInString(t.Name)
	if n == 0 || n > TagNameMaxLength {
		return NewValidationError("name", "tag name must be between 1 and 50 characters")
	}
	return nil
}

// TagNames returns the names of tags in order.
func TagNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}
