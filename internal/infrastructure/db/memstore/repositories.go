package memstore

import (
	"context"

	"blog-service/internal/domain/entities"
	"blog-service/internal/domain/repositories"
)

type userRepository struct {
	sc scope
}

func (r *userRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	var created *entities.User
	err := r.sc.write(ctx, func(d *dataset) error {
		var err error
		created, err = d.createUser(user.GetUser())
		return err
	})
	return created, err
}

func (r *userRepository) FindById(ctx context.Context, id uint) (*entities.User, error) {
	var found *entities.User
	err := r.sc.read(func(d *dataset) error {
		found = d.Users[id].Clone()
		return nil
	})
	return found, err
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	var found *entities.User
	err := r.sc.read(func(d *dataset) error {
		found = d.userBy(func(u *entities.User) bool { return u.Username == username })
		return nil
	})
	return found, err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var found *entities.User
	err := r.sc.read(func(d *dataset) error {
		found = d.userBy(func(u *entities.User) bool { return u.Email == email })
		return nil
	})
	return found, err
}

func (r *userRepository) List(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	err := r.sc.read(func(d *dataset) error {
		users = make([]*entities.User, 0, len(d.Users))
		for id := uint(1); id <= d.NextUserID; id++ {
			if u, ok := d.Users[id]; ok {
				users = append(users, u.Clone())
			}
		}
		return nil
	})
	return users, err
}

func (r *userRepository) Update(ctx context.Context, user *entities.ValidatedUser, fields ...string) (*entities.User, error) {
	var updated *entities.User
	err := r.sc.write(ctx, func(d *dataset) error {
		var err error
		updated, err = d.updateUser(user.GetUser(), fields)
		return err
	})
	return updated, err
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.sc.write(ctx, func(d *dataset) error {
		d.deleteUser(id)
		return nil
	})
}

type postRepository struct {
	sc scope
}

func (r *postRepository) Create(ctx context.Context, post *entities.ValidatedPost) (*entities.Post, error) {
	var created *entities.Post
	err := r.sc.write(ctx, func(d *dataset) error {
		var err error
		created, err = d.createPost(post.GetPost())
		return err
	})
	return created, err
}

func (r *postRepository) FindById(ctx context.Context, id uint) (*entities.Post, error) {
	var found *entities.Post
	err := r.sc.read(func(d *dataset) error {
		if record, ok := d.Posts[id]; ok {
			found = d.postView(record)
		}
		return nil
	})
	return found, err
}

func (r *postRepository) List(ctx context.Context, filter repositories.PostFilter) ([]*entities.Post, error) {
	var posts []*entities.Post
	err := r.sc.read(func(d *dataset) error {
		posts = d.listPosts(filter.UserID)
		return nil
	})
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *entities.ValidatedPost, fields ...string) error {
	return r.sc.write(ctx, func(d *dataset) error {
		return d.updatePost(post.GetPost(), fields)
	})
}

func (r *postRepository) ReplaceTags(ctx context.Context, postID uint, tags []entities.Tag) error {
	return r.sc.write(ctx, func(d *dataset) error {
		return d.replacePostTags(postID, tags)
	})
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.sc.write(ctx, func(d *dataset) error {
		d.deletePost(id)
		return nil
	})
}

type tagRepository struct {
	sc scope
}

func (r *tagRepository) EnsureByName(ctx context.Context, tag *entities.ValidatedTag) (*entities.Tag, error) {
	var ensured *entities.Tag
	err := r.sc.write(ctx, func(d *dataset) error {
		ensured = d.ensureTag(tag.GetTag().Name)
		return nil
	})
	return ensured, err
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*entities.Tag, error) {
	var found *entities.Tag
	err := r.sc.read(func(d *dataset) error {
		found = d.tagByName(name)
		return nil
	})
	return found, err
}

func (r *tagRepository) FindByNames(ctx context.Context, names []string) ([]entities.Tag, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	var found []entities.Tag
	err := r.sc.read(func(d *dataset) error {
		found = make([]entities.Tag, 0, len(names))
		for _, t := range d.listTags() {
			if _, ok := wanted[t.Name]; ok {
				found = append(found, t)
			}
		}
		return nil
	})
	return found, err
}

func (r *tagRepository) List(ctx context.Context) ([]entities.Tag, error) {
	var tags []entities.Tag
	err := r.sc.read(func(d *dataset) error {
		tags = d.listTags()
		return nil
	})
	return tags, err
}
