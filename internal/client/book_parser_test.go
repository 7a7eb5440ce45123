package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookPageURL = "https://tululu.org/b5/"

func bookPageHTML() string {
	return `<html><body><div id="content">` +
		"<h1>Пески Марса   ::   Артур Кларк</h1>" +
		`<div class="bookimage"><img src="/shots/5.jpg"></div>` +
		`<span class="d_book">Жанр книги: <a href="/l55/">Научная фантастика</a>, <a href="/l21/">Космос</a></span>` +
		`</div>` +
		`<div class="texts"><b>Вася (профиль)</b><span>Захватывает с первой страницы</span></div>` +
		`<div class="texts"><b>Оля (профиль)</b><span>Перечитывала дважды</span></div>` +
		`</body></html>`
}

func TestParseBookPage(t *testing.T) {
	parser := newBookParser()

	book, err := parser.ParseBookPage([]byte(bookPageHTML()), 5, bookPageURL)
	require.NoError(t, err)

	assert.Equal(t, 5, book.ID)
	assert.Equal(t, "Пески Марса", book.Title)
	assert.Equal(t, "Артур Кларк", book.Author)
	assert.Equal(t, "https://tululu.org/shots/5.jpg", book.CoverURL)
	assert.Equal(t, []string{"Научная фантастика", "Космос"}, book.Genres)
	assert.Equal(t, []string{"Захватывает с первой страницы", "Перечитывала дважды"}, book.Comments)
}

func TestParseBookPageAbsoluteCoverKept(t *testing.T) {
	html := `<div id="content"><h1>A` + " :: " + `B</h1>` +
		`<img src="https://cdn.example.org/covers/img.png"></div>`

	book, err := newBookParser().ParseBookPage([]byte(html), 1, bookPageURL)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/covers/img.png", book.CoverURL)
}

func TestParseBookPageNoGenresNoComments(t *testing.T) {
	html := `<div id="content"><h1>A` + " :: " + `B</h1><img src="/i.jpg"></div>`

	book, err := newBookParser().ParseBookPage([]byte(html), 7, bookPageURL)
	require.NoError(t, err)
	assert.Empty(t, book.Genres)
	assert.Empty(t, book.Comments)
}

func TestParseBookPageCommentWithoutDelimiterIgnored(t *testing.T) {
	html := `<div id="content"><h1>A` + " :: " + `B</h1><img src="/i.jpg"></div>` +
		`<div class="texts">нет скобок вовсе</div>` +
		`<div class="texts"><b>Имя (профиль)</b>норм</div>`

	book, err := newBookParser().ParseBookPage([]byte(html), 7, bookPageURL)
	require.NoError(t, err)
	assert.Equal(t, []string{"норм"}, book.Comments)
}

func TestParseBookPageMissingMarkup(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		element string
	}{
		{
			name:    "no content region",
			html:    `<html><body><h1>A` + " :: " + `B</h1></body></html>`,
			element: "#content region",
		},
		{
			name:    "no header",
			html:    `<div id="content"><img src="/i.jpg"></div>`,
			element: "h1 header",
		},
		{
			name:    "header without separator",
			html:    `<div id="content"><h1>Просто заголовок</h1><img src="/i.jpg"></div>`,
			element: "title :: author header",
		},
		{
			name:    "empty title segment",
			html:    `<div id="content"><h1>` + "  ::  Автор" + `</h1><img src="/i.jpg"></div>`,
			element: "title :: author header",
		},
		{
			name:    "no cover image",
			html:    `<div id="content"><h1>A` + " :: " + `B</h1></div>`,
			element: "cover image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newBookParser().ParseBookPage([]byte(tt.html), 9, bookPageURL)
			require.Error(t, err)

			var markupErr *MarkupError
			require.True(t, errors.As(err, &markupErr))
			assert.Equal(t, 9, markupErr.ID)
			assert.Equal(t, tt.element, markupErr.Element)
		})
	}
}
