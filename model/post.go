package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

Post is a project showcase published by a user

Id: primary key
CreatedAt: time when entity is created

AuthorID:
Author: user who published this post, "belongs-to" relation, immutable after
creation

Title: post's title in plain text
Description: post's description in plain text
TechTags: ordered list of technology tags, at least one, immutable after
creation
LiveUrl: where the project is deployed
CodeUrl: optional link to the source code
ImageUrls: ordered list of uploaded image references, immutable after creation

LikedByUsers: users who liked this post, "many-to-many" relation through
post_likes
Comments: comment log, most recent first, "has-many" relation

Cursor: the auto-inc global-unique index to keep the relative order of posts
*/
type Post struct {
	Id           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	AuthorID     string `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Author       User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title        string
	Description  string
	TechTags     datatypes.JSON
	LiveUrl      string
	CodeUrl      string
	ImageUrls    datatypes.JSON
	LikedByUsers []*User    `json:"liked_by_users" gorm:"many2many:post_likes;"`
	Comments     []*Comment `json:"comments" gorm:"constraint:OnDelete:CASCADE;"`
	Cursor       int32      `gorm:"autoIncrement"`
}
