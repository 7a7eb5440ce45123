package client

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tululu/loader/internal/domain"
)

// The h1 inside #content reads "Title   ::   Author"; the
// non-breaking spaces around the separator are what we split on.
const headerSeparator = " "

type bookParser struct{}

func newBookParser() *bookParser {
	return &bookParser{}
}

// ParseBookPage extracts a book record from the page markup. pageURL is the
// URL the page was actually served from and anchors the relative cover src.
func (p *bookParser) ParseBookPage(body []byte, id int, pageURL string) (*domain.Book, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &MarkupError{ID: id, Element: "parsable HTML"}
	}

	content := doc.Find("#content")
	if content.Length() == 0 {
		return nil, &MarkupError{ID: id, Element: "#content region"}
	}

	title, author, err := p.splitHeader(content, id)
	if err != nil {
		return nil, err
	}

	coverURL, err := p.resolveCover(content, id, pageURL)
	if err != nil {
		return nil, err
	}

	return &domain.Book{
		ID:       id,
		Title:    title,
		Author:   author,
		CoverURL: coverURL,
		Genres:   p.extractGenres(doc),
		Comments: p.extractComments(doc),
	}, nil
}

func (p *bookParser) splitHeader(content *goquery.Selection, id int) (string, string, error) {
	header := content.Find("h1").First()
	if header.Length() == 0 {
		return "", "", &MarkupError{ID: id, Element: "h1 header"}
	}

	parts := strings.Split(header.Text(), headerSeparator)
	if len(parts) < 3 {
		return "", "", &MarkupError{ID: id, Element: "title :: author header"}
	}

	title := strings.TrimSpace(parts[0])
	author := strings.TrimSpace(parts[2])
	if title == "" || author == "" {
		return "", "", &MarkupError{ID: id, Element: "title :: author header"}
	}

	return title, author, nil
}

func (p *bookParser) resolveCover(content *goquery.Selection, id int, pageURL string) (string, error) {
	src, ok := content.Find("img").First().Attr("src")
	if !ok {
		return "", &MarkupError{ID: id, Element: "cover image"}
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", &MarkupError{ID: id, Element: "resolvable page URL"}
	}
	ref, err := url.Parse(src)
	if err != nil {
		return "", &MarkupError{ID: id, Element: "resolvable cover src"}
	}

	return base.ResolveReference(ref).String(), nil
}

func (p *bookParser) extractGenres(doc *goquery.Document) []string {
	var genres []string
	doc.Find("span.d_book a").Each(func(_ int, link *goquery.Selection) {
		if genre := strings.TrimSpace(link.Text()); genre != "" {
			genres = append(genres, genre)
		}
	})
	return genres
}

func (p *bookParser) extractComments(doc *goquery.Document) []string {
	var comments []string
	doc.Find("div.texts").Each(func(_ int, block *goquery.Selection) {
		// Blocks read "Username (profile)comment text": the body sits
		// between the first and second closing parenthesis.
		parts := strings.Split(block.Text(), ")")
		if len(parts) < 2 {
			return
		}
		if comment := strings.TrimSpace(parts[1]); comment != "" {
			comments = append(comments, comment)
		}
	})
	return comments
}
