package model

import "time"

/*

User is an identity record created at signup

Id: primary key
CreatedAt: time when entity is created

Name: display name shown next to posts and comments
Email: unique login identifier
PasswordHash: salted bcrypt hash, the plaintext is never stored
AvatarUrl: derived deterministically from the email at signup, the client
can replace it later through the profile

LikedPosts: posts this user liked, "many-to-many" relation

*/
type User struct {
	Id           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	AvatarUrl    string
	LikedPosts   []*Post `json:"liked_posts" gorm:"many2many:post_likes;"`
}
