package model

// TitleNotFound is the placeholder title used when a page title cannot be fetched.
const TitleNotFound = "Title Not Found"

// Bookmark represents a saved URL with its title and tags.
type Bookmark struct {
	ID    int64    `json:"id" yaml:"id"`
	URL   string   `json:"url" yaml:"url"`
	Title string   `json:"title" yaml:"title"`
	Tags  []string `json:"tags" yaml:"tags"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	URL   string
	Title string
	Tags  []string
}

// TagString returns the stored representation of the bookmark's tags.
func (b Bookmark) TagString() string {
	return JoinTags(b.Tags)
}

// HasTag reports whether the bookmark carries exactly the given tag.
func (b Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
