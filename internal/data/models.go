package data

import "time"

// User is a row in the users table. Users are created on first external
// sign-in and never hard-deleted.
type User struct {
	ID           int64      `db:"id" json:"id"`
	OpenID       string     `db:"open_id" json:"openId"`
	Name         *string    `db:"name" json:"name"`
	Email        *string    `db:"email" json:"email"`
	LoginMethod  *string    `db:"login_method" json:"loginMethod"`
	Role         string     `db:"role" json:"role"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
	LastSignedIn time.Time  `db:"last_signed_in" json:"lastSignedIn"`
}

// Category groups articles and quotes for display.
type Category struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description *string   `db:"description" json:"description"`
	Icon        *string   `db:"icon" json:"icon"`
	Color       *string   `db:"color" json:"color"`
	Order       int       `db:"display_order" json:"order"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Article is a blog post. Content is opaque HTML supplied by the editor
// and stored as-is. PublishedAt is stamped when the article is published
// and deliberately left untouched when it is unpublished.
type Article struct {
	ID            int64      `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Slug          string     `db:"slug" json:"slug"`
	Content       string     `db:"content" json:"content"`
	Excerpt       *string    `db:"excerpt" json:"excerpt"`
	CategoryID    *int64     `db:"category_id" json:"categoryId"`
	AuthorID      int64      `db:"author_id" json:"authorId"`
	FeaturedImage *string    `db:"featured_image" json:"featuredImage"`
	IsPublished   bool       `db:"is_published" json:"isPublished"`
	PublishedAt   *time.Time `db:"published_at" json:"publishedAt"`
	ViewCount     int64      `db:"view_count" json:"viewCount"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// Quote is an inspirational quote shown on the public site.
type Quote struct {
	ID          int64     `db:"id" json:"id"`
	Text        string    `db:"text" json:"text"`
	Author      string    `db:"author" json:"author"`
	Source      *string   `db:"source" json:"source"`
	CategoryID  *int64    `db:"category_id" json:"categoryId"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	Order       int       `db:"display_order" json:"order"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// MenuItem is a navigation entry. ParentID nests items one level deep.
type MenuItem struct {
	ID         int64     `db:"id" json:"id"`
	Label      string    `db:"label" json:"label"`
	URL        string    `db:"url" json:"url"`
	Icon       *string   `db:"icon" json:"icon"`
	Order      int       `db:"display_order" json:"order"`
	ParentID   *int64    `db:"parent_id" json:"parentId"`
	IsActive   bool      `db:"is_active" json:"isActive"`
	IsExternal bool      `db:"is_external" json:"isExternal"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// SiteSetting is one entry in the untyped key-value configuration store.
// Type is a display hint for the admin UI (e.g. "string", "color").
type SiteSetting struct {
	ID        int64     `db:"id" json:"id"`
	Key       string    `db:"setting_key" json:"key"`
	Value     *string   `db:"setting_value" json:"value"`
	Type      string    `db:"setting_type" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Comment belongs to one article and one authoring user. New comments
// start unapproved and only appear publicly once moderated.
type Comment struct {
	ID         int64     `db:"id" json:"id"`
	ArticleID  int64     `db:"article_id" json:"articleId"`
	AuthorID   int64     `db:"author_id" json:"authorId"`
	Content    string    `db:"content" json:"content"`
	IsApproved bool      `db:"is_approved" json:"isApproved"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// Tag labels articles through the article_tags junction table.
type Tag struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ArticleTag is a row in the article/tag junction table.
type ArticleTag struct {
	ID        int64 `db:"id" json:"id"`
	ArticleID int64 `db:"article_id" json:"articleId"`
	TagID     int64 `db:"tag_id" json:"tagId"`
}
