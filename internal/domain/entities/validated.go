package entities

type ValidatedUser struct {
	*User
}

func NewValidatedUser(user *User) (*ValidatedUser, error) {
	if err := user.validate(); err != nil {
		return nil, err
	}

	return &ValidatedUser{User: user}, nil
}

func (vu *ValidatedUser) GetUser() *User {
	return vu.User
}

type ValidatedPost struct {
	*Post
}

func NewValidatedPost(post *Post) (*ValidatedPost, error) {
	if err := post.validate(); err != nil {
		return nil, err
	}

	return &ValidatedPost{Post: post}, nil
}

func (vp *ValidatedPost) GetPost() *Post {
	return vp.Post
}

type ValidatedTag struct {
	*Tag
}

func NewValidatedTag(tag *Tag) (*ValidatedTag, error) {
	if err := tag.validate(); err != nil {
		return nil, err
	}

	return &ValidatedTag{Tag: tag}, nil
}

func (vt *ValidatedTag) GetTag() *Tag {
	return vt.Tag
}
