package sqlstore

import (
	"context"
	"errors"

	"blog-service/internal/domain/entities"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	userEntity := user.GetUser()

	userModel := UserModel{
		Username: userEntity.Username,
		Email:    userEntity.Email,
	}

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		return nil, translateError(err, "user", "username or email")
	}
	userEntity.ID = userModel.ID

	// Read back the created user to ensure data integrity
	return r.FindById(ctx, userModel.ID)
}

func (r *UserRepository) FindById(ctx context.Context, id uint) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	var userModels []UserModel
	if err := r.db.WithContext(ctx).Order("id").Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, mapUserToEntity(&userModels[i]))
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entities.ValidatedUser, fields ...string) (*entities.User, error) {
	userEntity := user.GetUser()

	values := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		switch field {
		case entities.UserFieldUsername:
			values[field] = userEntity.Username
		case entities.UserFieldEmail:
			values[field] = userEntity.Email
		}
	}

	if len(values) > 0 {
		err := r.db.WithContext(ctx).Model(&UserModel{ID: userEntity.ID}).Updates(values).Error
		if err != nil {
			return nil, translateError(err, "user", "username or email")
		}
	}

	// Read back the updated user to ensure data integrity
	return r.FindById(ctx, userEntity.ID)
}

// Delete removes the user's posts, their tag links and then the user.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postIDs := tx.Model(&PostModel{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&PostTagModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&PostModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&UserModel{}, "id = ?", id).Error
	})
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return mapUserToEntity(&userModel), nil
}

func mapUserToEntity(userModel *UserModel) *entities.User {
	return &entities.User{
		ID:       userModel.ID,
		Username: userModel.Username,
		Email:    userModel.Email,
	}
}
