package cat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// ErrIsDirectory reports a directory named as an input.
var ErrIsDirectory = errors.New("is a directory")

// StdinName is the argument that selects standard input.
const StdinName = "-"

// Input is one unit of the concatenation.
type Input struct {
	// Name is the argument the input was created from.
	Name string
	// Stdin marks standard input, which is read line by line.
	Stdin bool
	// Path is set for local files and checked by CheckInput.
	Path string
	// Open returns the input's contents. It is not used for Stdin.
	Open func(ctx context.Context) (io.ReadCloser, error)
}

// StdinInput returns the Input for standard input.
func StdinInput() Input {
	return Input{Name: StdinName, Stdin: true}
}

// FileInput returns an Input reading path from the local filesystem.
func FileInput(path string) Input {
	return Input{
		Name: path,
		Path: path,
		Open: func(context.Context) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// URLInput returns an Input fetching raw with client, or
// http.DefaultClient when client is nil.
func URLInput(raw string, client *http.Client) Input {
	return Input{
		Name: raw,
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			return openURL(ctx, client, raw)
		},
	}
}

// ParseInput maps a command line argument to an Input: "-" is standard
// input, file:// URLs are local paths, http(s) URLs are fetched and anything
// else is a local path.
func ParseInput(arg string) (Input, error) {
	if arg == "" {
		return Input{}, fmt.Errorf("empty input argument")
	}
	if arg == StdinName {
		return StdinInput(), nil
	}
	u, err := url.Parse(arg)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return URLInput(arg, nil), nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			in := FileInput(path)
			in.Name = arg
			return in, nil
		}
	}
	return FileInput(arg), nil
}

// ParseInputs maps every argument with ParseInput. No arguments select
// standard input.
func ParseInputs(args []string) ([]Input, error) {
	if len(args) == 0 {
		return []Input{StdinInput()}, nil
	}
	inputs := make([]Input, 0, len(args))
	for _, arg := range args {
		in, err := ParseInput(arg)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// CheckInput verifies that a local file input exists, is readable and is
// not a directory. Other inputs are not checked.
func CheckInput(in Input) error {
	if in.Path == "" {
		return nil
	}
	info, err := os.Stat(in.Path)
	if err != nil {
		return inputError(in, err)
	}
	if info.IsDir() {
		return inputError(in, ErrIsDirectory)
	}
	f, err := os.Open(in.Path)
	if err != nil {
		return inputError(in, err)
	}
	return f.Close()
}

// inputError names the input once, dropping the path an *fs.PathError
// would repeat.
func inputError(in Input, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return fmt.Errorf("%s: %w", in.Name, err)
}

func openURL(ctx context.Context, client *http.Client, raw string) (io.ReadCloser, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("status %s", resp.Status)
	}
	return resp.Body, nil
}
