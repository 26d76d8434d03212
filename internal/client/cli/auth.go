package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookreviews/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return a.report(err)
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Register(ctx, userName, email, password)
	if err != nil {
		return a.report(err)
	}

	a.userName = u.UserName
	fmt.Fprintf(a.out, "Registered and logged in as %s\n", u.UserName)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Login(ctx, email, password)
	if err != nil {
		return a.report(err)
	}

	a.userName = u.UserName
	fmt.Fprintf(a.out, "Logged in as %s\n", u.UserName)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return a.report(err)
	}
	a.userName = u.UserName
	fmt.Fprintf(a.out, "id:       %s\nusername: %s\nemail:    %s\n", u.ID, u.UserName, u.Email)
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "This deletes your account and all your reviews. Type 'yes' to confirm", a.out)
	if err != nil {
		return a.report(err)
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.api.DeleteAccount(ctx); err != nil {
		return a.report(err)
	}
	a.endSession()
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.endSession()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
