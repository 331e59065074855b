package memstore

import (
	"sort"
	"time"

	"blog-service/internal/domain/entities"
)

type postRecord struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Published bool      `json:"published"`
}

// dataset is the whole store state. It doubles as the snapshot file format.
type dataset struct {
	NextUserID uint                    `json:"next_user_id"`
	NextPostID uint                    `json:"next_post_id"`
	NextTagID  uint                    `json:"next_tag_id"`
	Users      map[uint]*entities.User `json:"users"`
	Posts      map[uint]*postRecord    `json:"posts"`
	Tags       map[uint]*entities.Tag  `json:"tags"`
	// PostTags is the post/tag join index: post id to its tag ids.
	PostTags map[uint][]uint `json:"post_tags"`
}

func newDataset() *dataset {
	return &dataset{
		Users:    make(map[uint]*entities.User),
		Posts:    make(map[uint]*postRecord),
		Tags:     make(map[uint]*entities.Tag),
		PostTags: make(map[uint][]uint),
	}
}

// ensureMaps fills maps left nil by a decoded snapshot.
func (d *dataset) ensureMaps() {
	if d.Users == nil {
		d.Users = make(map[uint]*entities.User)
	}
	if d.Posts == nil {
		d.Posts = make(map[uint]*postRecord)
	}
	if d.Tags == nil {
		d.Tags = make(map[uint]*entities.Tag)
	}
	if d.PostTags == nil {
		d.PostTags = make(map[uint][]uint)
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		NextUserID: d.NextUserID,
		NextPostID: d.NextPostID,
		NextTagID:  d.NextTagID,
		Users:      make(map[uint]*entities.User, len(d.Users)),
		Posts:      make(map[uint]*postRecord, len(d.Posts)),
		Tags:       make(map[uint]*entities.Tag, len(d.Tags)),
		PostTags:   make(map[uint][]uint, len(d.PostTags)),
	}
	for id, u := range d.Users {
		c.Users[id] = u.Clone()
	}
	for id, p := range d.Posts {
		cp := *p
		c.Posts[id] = &cp
	}
	for id, t := range d.Tags {
		ct := *t
		c.Tags[id] = &ct
	}
	for id, tagIDs := range d.PostTags {
		c.PostTags[id] = append([]uint(nil), tagIDs...)
	}
	return c
}

// Users

func (d *dataset) userBy(match func(u *entities.User) bool) *entities.User {
	for _, u := range d.Users {
		if match(u) {
			return u.Clone()
		}
	}
	return nil
}

func (d *dataset) identityTaken(username, email string, exceptID uint) error {
	for _, u := range d.Users {
		if u.ID == exceptID {
			continue
		}
		if u.Username == username {
			return entities.NewConflictError("user", entities.UserFieldUsername, username)
		}
		if u.Email == email {
			return entities.NewConflictError("user", entities.UserFieldEmail, email)
		}
	}
	return nil
}

func (d *dataset) createUser(user *entities.User) (*entities.User, error) {
	if err := d.identityTaken(user.Username, user.Email, 0); err != nil {
		return nil, err
	}
	d.NextUserID++
	stored := user.Clone()
	stored.ID = d.NextUserID
	d.Users[stored.ID] = stored
	user.ID = stored.ID
	return stored.Clone(), nil
}

func (d *dataset) updateUser(user *entities.User, fields []string) (*entities.User, error) {
	current, ok := d.Users[user.ID]
	if !ok {
		return nil, nil
	}
	next := current.Clone()
	for _, f := range fields {
		switch f {
		case entities.UserFieldUsername:
			next.Username = user.Username
		case entities.UserFieldEmail:
			next.Email = user.Email
		}
	}
	if err := d.identityTaken(next.Username, next.Email, next.ID); err != nil {
		return nil, err
	}
	d.Users[next.ID] = next
	return next.Clone(), nil
}

func (d *dataset) deleteUser(id uint) {
	for postID, p := range d.Posts {
		if p.UserID == id {
			d.deletePost(postID)
		}
	}
	delete(d.Users, id)
}

// Posts

func (d *dataset) checkTags(tags []entities.Tag) error {
	seen := make(map[uint]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := d.Tags[t.ID]; !ok {
			return entities.NewValidationError("tags", "references a missing entity")
		}
		if _, dup := seen[t.ID]; dup {
			return entities.NewValidationError("tags", "duplicate tag "+t.Name)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

func (d *dataset) createPost(post *entities.Post) (*entities.Post, error) {
	if _, ok := d.Users[post.UserID]; !ok {
		return nil, entities.NewValidationError(entities.PostFieldUserID, "references a missing entity")
	}
	if err := d.checkTags(post.Tags); err != nil {
		return nil, err
	}

	d.NextPostID++
	record := &postRecord{
		ID:        d.NextPostID,
		Title:     post.Title,
		Content:   post.Content,
		UserID:    post.UserID,
		CreatedAt: post.CreatedAt.UTC(),
		Level:     string(post.Level),
		Category:  string(post.Category),
		Published: post.Published,
	}
	d.Posts[record.ID] = record
	d.setPostTags(record.ID, post.Tags)
	post.ID = record.ID
	return d.postView(record), nil
}

func (d *dataset) updatePost(post *entities.Post, fields []string) error {
	record, ok := d.Posts[post.ID]
	if !ok {
		return nil
	}
	next := *record
	for _, f := range fields {
		switch f {
		case entities.PostFieldTitle:
			next.Title = post.Title
		case entities.PostFieldContent:
			next.Content = post.Content
		case entities.PostFieldUserID:
			if _, ok := d.Users[post.UserID]; !ok {
				return entities.NewValidationError(entities.PostFieldUserID, "references a missing entity")
			}
			next.UserID = post.UserID
		case entities.PostFieldLevel:
			next.Level = string(post.Level)
		case entities.PostFieldCategory:
			next.Category = string(post.Category)
		}
	}
	d.Posts[next.ID] = &next
	return nil
}

func (d *dataset) replacePostTags(postID uint, tags []entities.Tag) error {
	if _, ok := d.Posts[postID]; !ok {
		return nil
	}
	if err := d.checkTags(tags); err != nil {
		return err
	}
	d.setPostTags(postID, tags)
	return nil
}

func (d *dataset) setPostTags(postID uint, tags []entities.Tag) {
	if len(tags) == 0 {
		delete(d.PostTags, postID)
		return
	}
	ids := make([]uint, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	d.PostTags[postID] = ids
}

func (d *dataset) deletePost(id uint) {
	delete(d.PostTags, id)
	delete(d.Posts, id)
}

func (d *dataset) postView(record *postRecord) *entities.Post {
	tags := make([]entities.Tag, 0, len(d.PostTags[record.ID]))
	for _, tagID := range d.PostTags[record.ID] {
		if t, ok := d.Tags[tagID]; ok {
			tags = append(tags, *t)
		}
	}
	entities.SortTags(tags)

	return &entities.Post{
		ID:        record.ID,
		Title:     record.Title,
		Content:   record.Content,
		UserID:    record.UserID,
		Author:    d.Users[record.UserID].Clone(),
		CreatedAt: record.CreatedAt,
		Level:     entities.Level(record.Level),
		Category:  entities.Category(record.Category),
		Tags:      tags,
		Published: record.Published,
	}
}

func (d *dataset) listPosts(userID uint) []*entities.Post {
	posts := make([]*entities.Post, 0, len(d.Posts))
	for _, record := range d.Posts {
		if userID != 0 && record.UserID != userID {
			continue
		}
		posts = append(posts, d.postView(record))
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts
}

// Tags

func (d *dataset) tagByName(name string) *entities.Tag {
	for _, t := range d.Tags {
		if t.Name == name {
			c := *t
			return &c
		}
	}
	return nil
}

func (d *dataset) ensureTag(name string) *entities.Tag {
	if existing := d.tagByName(name); existing != nil {
		return existing
	}
	d.NextTagID++
	t := &entities.Tag{ID: d.NextTagID, Name: name}
	d.Tags[t.ID] = t
	c := *t
	return &c
}

func (d *dataset) listTags() []entities.Tag {
	tags := make([]entities.Tag, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, *t)
	}
	entities.SortTags(tags)
	return tags
}
