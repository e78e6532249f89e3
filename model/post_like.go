package model

import "time"

/*

PostLike is a "many-to-many" relation of a user liking a post

PostID: post id
UserID: user id
CreatedAt: time when relation is created, kept so the like list can be
rendered in insertion order

The composite primary key is what makes a like unique per (post, user). Toggle
is implemented as a conditional insert/delete on this table, never as a
read-modify-write of the owning post.

*/
type PostLike struct {
	PostID    string `gorm:"primaryKey"`
	UserID    string `gorm:"primaryKey"`
	CreatedAt time.Time
}
