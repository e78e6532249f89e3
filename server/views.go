package server

import (
	"time"

	"github.com/devworkshq/devworks/model"
)

// Response views decouple the wire shape from the gorm models. Password
// hashes never appear here.

type userView struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	AvatarUrl string `json:"avatarUrl"`
}

type commentView struct {
	Id           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"createdAt"`
}

type postView struct {
	Id          string        `json:"id"`
	Author      userView      `json:"author"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	TechTags    []string      `json:"techTags"`
	LiveUrl     string        `json:"liveUrl"`
	CodeUrl     string        `json:"codeUrl,omitempty"`
	ImageUrls   []string      `json:"images"`
	Likes       []string      `json:"likes,omitempty"`
	Comments    []commentView `json:"comments,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type profileView struct {
	User           userView  `json:"user"`
	Bio            string    `json:"bio"`
	Website        string    `json:"website"`
	Skills         []string  `json:"skills"`
	Location       string    `json:"location"`
	GithubUserName string    `json:"githubUserName,omitempty"`
	Twitter        string    `json:"twitter,omitempty"`
	LinkedIn       string    `json:"linkedIn,omitempty"`
	Github         string    `json:"github,omitempty"`
	Codepen        string    `json:"codepen,omitempty"`
	Followers      []string  `json:"followers"`
	Following      []string  `json:"following"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toUserView(user *model.User) userView {
	return userView{
		Id:        user.Id,
		Name:      user.Name,
		Email:     user.Email,
		AvatarUrl: user.AvatarUrl,
	}
}

// authorView omits the email: other users' addresses are not public.
func authorView(user *model.User) userView {
	v := toUserView(user)
	v.Email = ""
	return v
}

func toCommentView(comment *model.Comment) commentView {
	return commentView{
		Id:           comment.Id,
		AuthorID:     comment.AuthorID,
		AuthorName:   comment.AuthorName,
		AuthorAvatar: comment.AuthorAvatar,
		Text:         comment.Text,
		CreatedAt:    comment.CreatedAt,
	}
}

func toPostView(post *model.Post, likes []string) postView {
	comments := make([]commentView, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, toCommentView(comment))
	}
	return postView{
		Id:          post.Id,
		Author:      authorView(&post.Author),
		Title:       post.Title,
		Description: post.Description,
		TechTags:    post.TechTagList(),
		LiveUrl:     post.LiveUrl,
		CodeUrl:     post.CodeUrl,
		ImageUrls:   post.ImageUrlList(),
		Likes:       likes,
		Comments:    comments,
		CreatedAt:   post.CreatedAt,
	}
}

func toPostViews(posts []*model.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, toPostView(post, nil))
	}
	return views
}

func toProfileView(profile *model.Profile, followers, following []string) profileView {
	return profileView{
		User:           authorView(&profile.User),
		Bio:            profile.Bio,
		Website:        profile.Website,
		Skills:         profile.SkillList(),
		Location:       profile.Location,
		GithubUserName: profile.GithubUserName,
		Twitter:        profile.Twitter,
		LinkedIn:       profile.LinkedIn,
		Github:         profile.Github,
		Codepen:        profile.Codepen,
		Followers:      followers,
		Following:      following,
		CreatedAt:      profile.CreatedAt,
	}
}
