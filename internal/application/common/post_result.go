package common

import "time"

type PostResult struct {
	Id        uint        `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	UserId    uint        `json:"user_id"`
	Author    *UserResult `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
	Published bool        `json:"published"`
	Level     string      `json:"level"`
	Category  string      `json:"category"`
	Tags      []string    `json:"tags"`
}

type TagResult struct {
	Id   uint   `json:"id"`
	Name string `json:"name"`
}
