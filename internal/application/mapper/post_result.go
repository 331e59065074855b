package mapper

import (
	"blog-service/internal/application/common"
	"blog-service/internal/domain/entities"
)

func NewPostResultFromEntity(post *entities.Post) *common.PostResult {
	return &common.PostResult{
		Id:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		UserId:    post.UserID,
		Author:    NewUserResultFromEntity(post.Author),
		CreatedAt: post.CreatedAt,
		Published: post.Published,
		Level:     post.Level.String(),
		Category:  post.Category.String(),
		Tags:      entities.TagNames(post.Tags),
	}
}

func NewPostResultsFromEntities(posts []*entities.Post) []*common.PostResult {
	results := make([]*common.PostResult, 0, len(posts))
	for _, p := range posts {
		results = append(results, NewPostResultFromEntity(p))
	}
	return results
}

func NewTagResultsFromEntities(tags []entities.Tag) []*common.TagResult {
	results := make([]*common.TagResult, 0, len(tags))
	for _, t := range tags {
		results = append(results, &common.TagResult{Id: t.ID, Name: t.Name})
	}
	return results
}
