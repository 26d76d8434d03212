package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookreviews/internal/client/client"
)

func (a *App) AddReview(ctx context.Context, args []string) error {
	bookID, err := a.argOrPrompt(args, "Enter book id")
	if err != nil {
		return a.report(err)
	}
	text, err := GetSimpleText(a.reader, "Enter review", a.out)
	if err != nil {
		return a.report(err)
	}
	rating, ok, err := GetRating(a.reader, "Enter rating (1-5)", a.out)
	if err != nil {
		return a.report(err)
	}
	if !ok {
		return a.report(errors.New("rating is required"))
	}

	r, err := a.api.AddReview(ctx, bookID, text, rating)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Review added: %s\n", r.ID)
	return nil
}

func (a *App) EditReview(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter review id")
	if err != nil {
		return a.report(err)
	}
	text, err := GetSimpleText(a.reader, "Enter new review text (empty keeps current)", a.out)
	if err != nil {
		return a.report(err)
	}
	rating, ok, err := GetRating(a.reader, "Enter new rating (empty keeps current)", a.out)
	if err != nil {
		return a.report(err)
	}

	var patch client.ReviewPatch
	if text != "" {
		patch.ReviewText = &text
	}
	if ok {
		patch.Rating = &rating
	}
	if patch.ReviewText == nil && patch.Rating == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	r, err := a.api.UpdateReview(ctx, id, patch)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Review updated")
	a.printReview(*r)
	return nil
}

func (a *App) DeleteReview(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter review id")
	if err != nil {
		return a.report(err)
	}
	if err := a.api.DeleteReview(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Review deleted")
	return nil
}
