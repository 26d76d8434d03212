package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Me(ctx context.Context) error
	Books(ctx context.Context, args []string) error
	AddBook(ctx context.Context) error
	ShowBook(ctx context.Context, args []string) error
	DeleteBook(ctx context.Context, args []string) error
	AddReview(ctx context.Context, args []string) error
	EditReview(ctx context.Context, args []string) error
	DeleteReview(ctx context.Context, args []string) error
	DeleteAccount(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: me, books, addbook, book, delbook, review, editreview, delreview, delete-account, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit" or "quit". Commands other than help, register, login and
// exit require a session. Handler errors are reported by the handlers.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("br%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "register":
			_ = a.Register(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			if isSessionCommand(cmd) {
				printlnFn("Please login or register first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "me":
			_ = a.Me(ctx)
		case "books", "l":
			_ = a.Books(ctx, args)
		case "addbook":
			_ = a.AddBook(ctx)
		case "book":
			_ = a.ShowBook(ctx, args)
		case "delbook":
			_ = a.DeleteBook(ctx, args)
		case "review":
			_ = a.AddReview(ctx, args)
		case "editreview":
			_ = a.EditReview(ctx, args)
		case "delreview":
			_ = a.DeleteReview(ctx, args)
		case "delete-account":
			_ = a.DeleteAccount(ctx)
		case "logout":
			_ = a.Logout(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func isSessionCommand(cmd string) bool {
	switch cmd {
	case "me", "books", "l", "addbook", "book", "delbook", "review", "editreview", "delreview", "delete-account", "logout":
		return true
	}
	return false
}
