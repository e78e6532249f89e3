package model

import "time"

/*

Comment is an entry in a post's comment log

Id: primary key
CreatedAt: time when entity is created
PostID: owning post, "belongs-to" relation
AuthorID: user who wrote the comment, only they may delete it

AuthorName, AuthorAvatar: snapshot of the author's display name and avatar
taken at write time. Deliberately denormalized so the historical rendering of
the comment survives later profile changes.

Text: free-text body, non-empty
*/
type Comment struct {
	Id           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	PostID       string `gorm:"index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID     string
	AuthorName   string
	AuthorAvatar string
	Text         string
}
