package model

import "time"

/*

FollowEdge is the directed follow relation follower -> followee

FollowerID: user who follows
FolloweeID: user being followed
CreatedAt: time when relation is created

One row is the single source of truth for both sides of the edge: the
followee's follower set and the follower's following set are two reads of the
same rows, so the symmetry invariant (A follows B iff B is followed by A)
holds structurally and cannot be half-applied.

Self edges are rejected at the store level before any write.

*/
type FollowEdge struct {
	FollowerID string `gorm:"primaryKey"`
	FolloweeID string `gorm:"primaryKey"`
	CreatedAt  time.Time
}
