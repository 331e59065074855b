package entities

import "fmt"

// Level is the experience level a post targets.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

var levels = map[Level]struct{}{
	LevelBeginner:     {},
	LevelIntermediate: {},
	LevelAdvanced:     {},
}

// Levels returns every level in declaration order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !l.Valid() {
		return "", NewValidationError("level", fmt.Sprintf("unknown level %q", s))
	}
	return l, nil
}

func (l Level) Valid() bool {
	_, ok := levels[l]
	return ok
}

func (l Level) String() string {
	return string(l)
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Category is the subject area of a post. It is fixed once the post exists.
type Category string

const (
	CategoryPythonBasics Category = "Python Basics"
	CategoryFastAPI      Category = "FastAPI"
	CategoryFlask        Category = "Flask"
	CategoryDjango       Category = "Django"
	CategoryDataScience  Category = "Data Science"
	CategoryWebDev       Category = "Web Dev"
)

var categories = map[Category]struct{}{
	CategoryPythonBasics: {},
	CategoryFastAPI:      {},
	CategoryFlask:        {},
	CategoryDjango:       {},
	CategoryDataScience:  {},
	CategoryWebDev:       {},
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryPythonBasics,
		CategoryFastAPI,
		CategoryFlask,
		CategoryDjango,
		CategoryDataScience,
		CategoryWebDev,
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", NewValidationError("category", fmt.Sprintf("unknown category %q", s))
	}
	return c, nil
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DefaultTagVocabulary is the tag set seeded when no vocabulary is configured.
var DefaultTagVocabulary = []string{
	"Tutorial",
	"Tips",
	"Asynchronous",
	"Data Structures",
	"Performance",
}
