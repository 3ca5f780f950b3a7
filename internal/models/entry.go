package models

import "time"

// Entry holds the columns shared by posts and samples.
type Entry struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Slug        string     `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	Excerpt     *string    `json:"excerpt" gorm:"type:text"`
	AuthorID    int64      `json:"author_id" gorm:"not null;index"`
	CategoryID  *int64     `json:"category_id" gorm:"index"`
	IsPublished bool       `json:"is_published" gorm:"not null;default:false;index"`
	PublishedAt *time.Time `json:"published_at"`
	ViewsCount  int        `json:"views_count" gorm:"not null;default:0"`
	LikesCount  int        `json:"likes_count" gorm:"not null;default:0"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GetEntry exposes the shared columns of the embedding model.
func (e *Entry) GetEntry() *Entry {
	return e
}

// SetPublished updates the publish flag and reports whether this is the
// entry's first publish. PublishedAt is written only here, on the first
// false to true flip, so a non-nil value records that the flip already
// happened and later unpublish/republish cycles leave it alone.
func (e *Entry) SetPublished(published bool, at time.Time) bool {
	first := published && !e.IsPublished && e.PublishedAt == nil
	e.IsPublished = published
	if first {
		e.PublishedAt = &at
	}
	return first
}

// OwnedBy reports whether userID authored the entry.
func (e *Entry) OwnedBy(userID int64) bool {
	return e.AuthorID == userID
}

// EntryModel is satisfied by pointers to models embedding Entry.
type EntryModel[T any] interface {
	*T
	GetEntry() *Entry
	Relations() (*User, *Category)
	TableName() string
}

// Post is a blog post.
type Post struct {
	Entry
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

// TableName returns the database table name for the Post model.
func (Post) TableName() string {
	return "posts"
}

// Relations returns the preloaded author and category.
func (p *Post) Relations() (*User, *Category) {
	return p.Author, p.Category
}

// Sample mirrors Post in its own table.
type Sample struct {
	Entry
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

// TableName returns the database table name for the Sample model.
func (Sample) TableName() string {
	return "samples"
}

// Relations returns the preloaded author and category.
func (s *Sample) Relations() (*User, *Category) {
	return s.Author, s.Category
}
