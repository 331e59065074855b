package entities

import (
	"sort"
	"time"
	"unicode/utf8"
)

// Column names accepted by PostRepository.Update.
const (
	PostFieldTitle    = "title"
	PostFieldContent  = "content"
	PostFieldUserID   = "user_id"
	PostFieldLevel    = "level"
	PostFieldCategory = "category"
)

const (
	TitleMinLength   = 2
	TitleMaxLength   = 100
	ContentMinLength = 2
)

type Post struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    uint      `json:"user_id"`
	Author    *User     `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Level     Level     `json:"level"`
	Category  Category  `json:"category"`
	Tags      []Tag     `json:"tags"`
	Published bool      `json:"published"`
}

func NewPost(userID uint, title, content string, level Level, category Category, createdAt time.Time) *Post {
	return &Post{
		Title:     title,
		Content:   content,
		UserID:    userID,
		CreatedAt: createdAt.UTC(),
		Level:     level,
		Category:  category,
		Tags:      make([]Tag, 0),
		Published: true,
	}
}

func (p *Post) validate() error {
	n := utf8.RuneCountInString(p.Title)
	if n < TitleMinLength || n > TitleMaxLength {
		return NewValidationError(PostFieldTitle, "must be between 2 and 100 characters")
	}
	if utf8.RuneCountInString(p.Content) < ContentMinLength {
		return NewValidationError(PostFieldContent, "must be at least 2 characters")
	}
	if p.UserID == 0 {
		return NewValidationError(PostFieldUserID, "is required")
	}
	if !p.Level.Valid() {
		return NewValidationError(PostFieldLevel, "unknown level "+string(p.Level))
	}
	if !p.Category.Valid() {
		return NewValidationError(PostFieldCategory, "unknown category "+string(p.Category))
	}
	seen := make(map[uint]struct{}, len(p.Tags))
	for _, t := range p.Tags {
		if _, dup := seen[t.ID]; dup {
			return NewValidationError("tags", "duplicate tag "+t.Name)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// SetTags replaces the tag set, ordered by name.
func (p *Post) SetTags(tags []Tag) {
	p.Tags = append(make([]Tag, 0, len(tags)), tags...)
	SortTags(p.Tags)
}

// Clone returns a deep copy of the post.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Author = p.Author.Clone()
	c.Tags = append(make([]Tag, 0, len(p.Tags)), p.Tags...)
	return &c
}

func SortTags(tags []Tag) {
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
}

// PostPatch holds the fields of a sparse post update. Nil means not supplied;
// a non-nil Tags pointing to an empty slice clears the tag set.
type PostPatch struct {
	Title    *string
	Content  *string
	Level    *Level
	Category *Category
	Tags     *[]string
}

// PostReplacement carries every writable field of a full post update.
type PostReplacement struct {
	UserID   uint
	Title    string
	Content  string
	Level    Level
	Category Category
	Tags     []string
}
