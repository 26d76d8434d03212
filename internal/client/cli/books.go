package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/bookreviews/internal/client/client"
)

func (a *App) Books(ctx context.Context, args []string) error {
	opts := parseOptions(args, "page")

	var q client.BookQuery
	var err error
	if v, ok := opts["page"]; ok {
		if q.Page, err = strconv.Atoi(v); err != nil {
			return a.report(fmt.Errorf("page must be a number: %q", v))
		}
	}
	if v, ok := opts["limit"]; ok {
		if q.Limit, err = strconv.Atoi(v); err != nil {
			return a.report(fmt.Errorf("limit must be a number: %q", v))
		}
	}
	q.Genre = opts["genre"]
	q.Author = opts["author"]

	list, err := a.api.ListBooks(ctx, q)
	if err != nil {
		return a.report(err)
	}

	if len(list.Books) == 0 {
		fmt.Fprintln(a.out, "No books found")
	}
	for _, b := range list.Books {
		a.printBook(b)
	}
	p := list.Pagination
	fmt.Fprintf(a.out, "page %d of %d (%d books)\n", p.CurrentPage, p.TotalPages, p.TotalBooks)
	return nil
}

func (a *App) AddBook(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return a.report(err)
	}
	author, err := GetSimpleText(a.reader, "Enter author", a.out)
	if err != nil {
		return a.report(err)
	}
	genre, err := GetSimpleText(a.reader, "Enter genre", a.out)
	if err != nil {
		return a.report(err)
	}

	b, err := a.api.AddBook(ctx, title, author, genre)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Book added: %s\n", b.ID)
	return nil
}

func (a *App) ShowBook(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter book id")
	if err != nil {
		return a.report(err)
	}

	d, err := a.api.GetBook(ctx, id)
	if err != nil {
		return a.report(err)
	}

	a.printBook(d.Book)
	if len(d.Reviews) == 0 {
		fmt.Fprintln(a.out, "  no reviews yet")
	}
	for _, r := range d.Reviews {
		a.printReview(r)
	}
	return nil
}

func (a *App) DeleteBook(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter book id")
	if err != nil {
		return a.report(err)
	}
	if err := a.api.DeleteBook(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Book deleted")
	return nil
}

func (a *App) printBook(b client.Book) {
	fmt.Fprintf(a.out, "%s  %q by %s [%s] rating %.2f\n", b.ID, b.Title, b.Author, b.Genre, b.AverageRating)
}

func (a *App) printReview(r client.Review) {
	who := r.ReviewerUserName
	if who == "" {
		who = r.ReviewerID
	}
	fmt.Fprintf(a.out, "  %s  %d/5 by %s: %s\n", r.ID, r.Rating, who, r.ReviewText)
}
