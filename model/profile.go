package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

Profile is the social-graph node attached one-to-one to a user. It is created
lazily on the first profile write, there is at most one per user.

UserID: primary key, the owning user's id
User: "belongs-to" relation
CreatedAt / UpdatedAt: entity timestamps

Bio, Website, Location: free-form presentation fields
Skills: list of skill strings
GithubUserName: handle used for the third-party github lookup

Twitter, LinkedIn, Github, Codepen: social link fields

Follower and following sets are NOT stored here. They are derived from
follow_edges rows (see FollowEdge) so that the two sides of an edge can never
disagree.
*/
type Profile struct {
	UserID    string `gorm:"primaryKey"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Bio            string
	Website        string
	Skills         datatypes.JSON
	Location       string
	GithubUserName string

	Twitter  string
	LinkedIn string
	Github   string
	Codepen  string
}
