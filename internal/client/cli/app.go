package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bookreviews/internal/client/client"
	"github.com/dmitrijs2005/bookreviews/internal/client/config"
)

// apiClient is the subset of client.APIClient the commands use.
type apiClient interface {
	Token() string
	SetToken(token string)

	Register(ctx context.Context, userName, email string, password []byte) (*client.User, error)
	Login(ctx context.Context, email string, password []byte) (*client.User, error)
	Me(ctx context.Context) (*client.User, error)
	DeleteAccount(ctx context.Context) error

	ListBooks(ctx context.Context, q client.BookQuery) (*client.BookList, error)
	AddBook(ctx context.Context, title, author, genre string) (*client.Book, error)
	GetBook(ctx context.Context, id string) (*client.BookDetails, error)
	DeleteBook(ctx context.Context, id string) error

	AddReview(ctx context.Context, bookID, text string, rating int) (*client.Review, error)
	UpdateReview(ctx context.Context, id string, patch client.ReviewPatch) (*client.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

type App struct {
	config   *config.Config
	api      apiClient
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    client.NewAPIClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to the book reviews CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) endSession() {
	a.api.SetToken("")
	a.userName = ""
}

// report prints err for the user. A 401 from the server ends the local
// session since the token is no longer usable.
func (a *App) report(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && errors.Is(err, client.ErrUnauthorized):
		a.endSession()
		fmt.Fprintf(a.out, "Session ended: %s. Please login again.\n", apiErr.Message)
	case apiErr != nil:
		fmt.Fprintf(a.out, "Error: %s\n", apiErr.Message)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
	return err
}

// argOrPrompt returns args[0] when present, otherwise asks for the value.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, a.out)
}
