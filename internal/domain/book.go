package domain

// Book is one catalog entry together with the metadata scraped from its page.
// The parser only constructs a Book from a page that actually resolved, so
// Title and Author are always non-empty.
type Book struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	CoverURL string   `json:"cover_url"`
	Genres   []string `json:"genres,omitempty"`
	Comments []string `json:"comments,omitempty"`
}
