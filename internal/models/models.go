package models

import (
	"strings"
	"time"
)

// User is the single admin account. Password holds a bcrypt hash.
type User struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Username string `gorm:"uniqueIndex;not null;size:80" json:"username"`
	Password string `gorm:"not null" json:"-"`
}

// Post is a blog entry. ImageFile is either an uploaded file URL or an external URL.
type Post struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Title      string    `gorm:"size:100" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	ImageFile  *string   `json:"imageFile"`
	DatePosted time.Time `gorm:"not null;index" json:"datePosted"`
	Comments   []Comment `gorm:"foreignKey:PostID" json:"-"` // Has-many relationship
}

// Comment is left by a visitor on a post. Username is free text.
type Comment struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Username   string    `gorm:"size:80" json:"username"`
	Content    string    `gorm:"type:text" json:"content"`
	PostID     uint      `gorm:"not null;index" json:"postId"`
	DatePosted time.Time `gorm:"not null" json:"datePosted"`
}

// Project is a portfolio entry. Category drives client-side filtering.
type Project struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"size:100" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Link        *string   `json:"link"`
	GithubLink  *string   `json:"githubLink"`
	Category    string    `gorm:"size:50" json:"category"`
	Tags        string    `json:"tags"` // comma separated
	DateCreated time.Time `gorm:"not null;index" json:"dateCreated"`
}

// TagList splits Tags on commas, dropping blanks.
func (p Project) TagList() []string {
	var tags []string
	for _, t := range strings.Split(p.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Skill is rendered on the landing page grouped by Category. Icon is a CSS icon class.
type Skill struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `gorm:"size:50" json:"name"`
	Icon     string `gorm:"size:50" json:"icon"`
	Category string `gorm:"size:50" json:"category"`
}

// Session backs a signed login cookie. Deleting the row logs the holder out.
type Session struct {
	ID        string    `gorm:"primarykey;size:36"`
	UserID    uint      `gorm:"not null;index"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"not null;index"`
}

// All lists every model for schema migration.
func All() []any {
	return []any{&User{}, &Post{}, &Comment{}, &Project{}, &Skill{}, &Session{}}
}
