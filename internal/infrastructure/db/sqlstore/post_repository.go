package sqlstore

import (
	"context"
	"errors"

	"blog-service/internal/domain/entities"
	"blog-service/internal/domain/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	db *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *entities.ValidatedPost) (*entities.Post, error) {
	postEntity := post.GetPost()
	postModel := mapPostToModel(postEntity)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&postModel).Error; err != nil {
			return translateError(err, "post", entities.PostFieldUserID)
		}
		return insertPostTags(tx, postModel.ID, postEntity.Tags)
	})
	if err != nil {
		return nil, err
	}
	postEntity.ID = postModel.ID

	return r.FindById(ctx, postModel.ID)
}

func (r *PostRepository) FindById(ctx context.Context, id uint) (*entities.Post, error) {
	var postModel PostModel
	err := r.preloaded(ctx).Where("id = ?", id).First(&postModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return mapPostToEntity(&postModel), nil
}

func (r *PostRepository) List(ctx context.Context, filter repositories.PostFilter) ([]*entities.Post, error) {
	query := r.preloaded(ctx)
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var postModels []PostModel
	if err := query.Order("id").Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entities.Post, 0, len(postModels))
	for i := range postModels {
		posts = append(posts, mapPostToEntity(&postModels[i]))
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, post *entities.ValidatedPost, fields ...string) error {
	postEntity := post.GetPost()

	values := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		switch field {
		case entities.PostFieldTitle:
			values[field] = postEntity.Title
		case entities.PostFieldContent:
			values[field] = postEntity.Content
		case entities.PostFieldUserID:
			values[field] = postEntity.UserID
		case entities.PostFieldLevel:
			values[field] = string(postEntity.Level)
		case entities.PostFieldCategory:
			values[field] = string(postEntity.Category)
		}
	}
	if len(values) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Model(&PostModel{ID: postEntity.ID}).Updates(values).Error
	return translateError(err, "post", entities.PostFieldUserID)
}

func (r *PostRepository) ReplaceTags(ctx context.Context, postID uint, tags []entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&PostTagModel{}).Error; err != nil {
			return err
		}
		return insertPostTags(tx, postID, tags)
	})
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&PostTagModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&PostModel{}, "id = ?", id).Error
	})
}

func (r *PostRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name")
		})
}

func insertPostTags(tx *gorm.DB, postID uint, tags []entities.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	links := make([]PostTagModel, 0, len(tags))
	for _, t := range tags {
		links = append(links, PostTagModel{PostID: postID, TagID: t.ID})
	}
	if err := tx.Create(&links).Error; err != nil {
		return translateError(err, "post", "tags")
	}
	return nil
}

func mapPostToModel(post *entities.Post) PostModel {
	return PostModel{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		UserID:    post.UserID,
		CreatedAt: post.CreatedAt,
		Level:     string(post.Level),
		Category:  string(post.Category),
		Published: post.Published,
	}
}

func mapPostToEntity(postModel *PostModel) *entities.Post {
	tags := make([]entities.Tag, 0, len(postModel.Tags))
	for _, t := range postModel.Tags {
		tags = append(tags, entities.Tag{ID: t.ID, Name: t.Name})
	}
	entities.SortTags(tags)

	post := &entities.Post{
		ID:        postModel.ID,
		Title:     postModel.Title,
		Content:   postModel.Content,
		UserID:    postModel.UserID,
		CreatedAt: postModel.CreatedAt.UTC(),
		Level:     entities.Level(postModel.Level),
		Category:  entities.Category(postModel.Category),
		Tags:      tags,
		Published: postModel.Published,
	}
	if postModel.Author.ID != 0 {
		post.Author = mapUserToEntity(&postModel.Author)
	}
	return post
}
