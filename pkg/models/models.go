package models

import (
	"strings"
	"unicode/utf8"

	"library-api/pkg/validator"
)

// Book is a single catalog record in the books table. Optional fields are
// pointers so absent values round-trip as JSON null and map to nullable
// columns.
type Book struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Title  string  `gorm:"size:200;not null" json:"title"`
	Author string  `gorm:"size:100;not null" json:"author"`
	Isbn   *string `gorm:"size:20" json:"isbn"`
	Year   *int    `json:"year"`
	Genre  *string `gorm:"size:50" json:"genre"`
}

// BookCreate is the request body for POST /api/books.
type BookCreate struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Isbn   *string `json:"isbn"`
	Year   *int    `json:"year"`
	Genre  *string `json:"genre"`
}

// BookUpdate is the request body for PUT /api/books/:id. Every field is a
// pointer so "not provided" (nil) can be told apart from a provided value.
// Nil fields are left untouched by the update.
type BookUpdate struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Isbn   *string `json:"isbn"`
	Year   *int    `json:"year"`
	Genre  *string `json:"genre"`
}

// Validate checks every field constraint and returns the Book ready for
// insertion (title and author trimmed) together with the collected errors.
func (r *BookCreate) Validate() (Book, *validator.Validator) {
	v := validator.New()

	book := Book{
		Title:  checkTitle(v, r.Title),
		Author: checkAuthor(v, r.Author),
		Isbn:   r.Isbn,
		Year:   r.Year,
		Genre:  r.Genre,
	}
	if r.Isbn != nil {
		checkIsbn(v, *r.Isbn)
	}
	if r.Year != nil {
		checkYear(v, *r.Year)
	}
	if r.Genre != nil {
		checkGenre(v, *r.Genre)
	}

	return book, v
}

// Validate applies the create rules to every provided field. Nil fields
// are skipped entirely.
func (r *BookUpdate) Validate() *validator.Validator {
	v := validator.New()

	if r.Title != nil {
		checkTitle(v, *r.Title)
	}
	if r.Author != nil {
		checkAuthor(v, *r.Author)
	}
	if r.Isbn != nil {
		checkIsbn(v, *r.Isbn)
	}
	if r.Year != nil {
		checkYear(v, *r.Year)
	}
	if r.Genre != nil {
		checkGenre(v, *r.Genre)
	}

	return v
}

// Patch translates the provided fields into a column-to-value map for a
// partial UPDATE. Column names are fixed here, never taken from the request.
func (r *BookUpdate) Patch() map[string]interface{} {
	patch := map[string]interface{}{}

	if r.Title != nil {
		patch["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Author != nil {
		patch["author"] = strings.TrimSpace(*r.Author)
	}
	if r.Isbn != nil {
		patch["isbn"] = *r.Isbn
	}
	if r.Year != nil {
		patch["year"] = *r.Year
	}
	if r.Genre != nil {
		patch["genre"] = *r.Genre
	}

	return patch
}

// Whitespace-only values are rejected, not trimmed to empty and accepted.
// Lengths are counted in runes, after trimming.

func checkTitle(v *validator.Validator, title string) string {
	title = strings.TrimSpace(title)
	v.Check(title != "", "title", "must not be empty or whitespace only")
	v.Check(utf8.RuneCountInString(title) <= 200, "title", "must not exceed 200 characters")
	return title
}

func checkAuthor(v *validator.Validator, author string) string {
	author = strings.TrimSpace(author)
	v.Check(author != "", "author", "must not be empty or whitespace only")
	v.Check(utf8.RuneCountInString(author) <= 100, "author", "must not exceed 100 characters")
	return author
}

func checkIsbn(v *validator.Validator, isbn string) {
	v.Check(utf8.RuneCountInString(isbn) <= 20, "isbn", "must not exceed 20 characters")
}

func checkYear(v *validator.Validator, year int) {
	v.Check(year >= 1000 && year <= 2100, "year", "must be between 1000 and 2100")
}

func checkGenre(v *validator.Validator, genre string) {
	v.Check(utf8.RuneCountInString(genre) <= 50, "genre", "must not exceed 50 characters")
}
