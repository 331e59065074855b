package sqlstore

import (
	"context"
	"errors"

	"blog-service/internal/domain/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository struct {
	db *gorm.DB
}

func (r *TagRepository) EnsureByName(ctx context.Context, tag *entities.ValidatedTag) (*entities.Tag, error) {
	tagModel := TagModel{Name: tag.GetTag().Name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&tagModel).Error
	if err != nil {
		return nil, translateError(err, "tag", "name")
	}
	return r.FindByName(ctx, tagModel.Name)
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*entities.Tag, error) {
	var tagModel TagModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tagModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entities.Tag{ID: tagModel.ID, Name: tagModel.Name}, nil
}

func (r *TagRepository) FindByNames(ctx context.Context, names []string) ([]entities.Tag, error) {
	if len(names) == 0 {
		return []entities.Tag{}, nil
	}
	var tagModels []TagModel
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Order("name").Find(&tagModels).Error; err != nil {
		return nil, err
	}
	return mapTagsToEntities(tagModels), nil
}

func (r *TagRepository) List(ctx context.Context) ([]entities.Tag, error) {
	var tagModels []TagModel
	if err := r.db.WithContext(ctx).Order("name").Find(&tagModels).Error; err != nil {
		return nil, err
	}
	return mapTagsToEntities(tagModels), nil
}

func mapTagsToEntities(tagModels []TagModel) []entities.Tag {
	tags := make([]entities.Tag, 0, len(tagModels))
	for _, t := range tagModels {
		tags = append(tags, entities.Tag{ID: t.ID, Name: t.Name})
	}
	return tags
}
