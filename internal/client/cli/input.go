package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The line is trimmed. If EOF occurs after some input was read, the partial
// line is returned.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password from the
// terminal without echo. The caller wipes the returned slice.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetRating reads a rating line. An empty line returns ok == false so that
// callers editing a review can keep the current value.
func GetRating(reader *bufio.Reader, prompt string, w io.Writer) (rating int, ok bool, err error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil || s == "" {
		return 0, false, err
	}
	rating, err = strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("rating must be a number: %q", s)
	}
	return rating, true, nil
}

// parseOptions splits "key=value" arguments. A bare first argument is taken
// as the value of defaultKey.
func parseOptions(args []string, defaultKey string) map[string]string {
	opts := make(map[string]string, len(args))
	for i, arg := range args {
		k, v, found := strings.Cut(arg, "=")
		if !found {
			if i == 0 && defaultKey != "" {
				opts[defaultKey] = arg
			}
			continue
		}
		opts[strings.ToLower(k)] = v
	}
	return opts
}
