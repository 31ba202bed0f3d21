package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const helpText = `Commands:
  greet <name>     get a personalized greeting
  echo <message>   send a message to the echo endpoint
  refresh          refresh the message from the backend
  health           re-check backend health
  show             redraw the page
  help             show this help
  quit             exit
`

// Console is a line-oriented front end for a Session. It is also the
// session's Alerter: an alert blocks until the user presses Enter.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	baseURL string
}

// NewConsole reads commands from in and writes pages to out.
func NewConsole(in io.Reader, out io.Writer, baseURL string) *Console {
	return &Console{in: bufio.NewReader(in), out: out, baseURL: baseURL}
}

// Alert prints msg and waits for a line of input.
func (c *Console) Alert(_ context.Context, msg string) {
	fmt.Fprintf(c.out, "\n[alert] %s (press Enter)\n", msg)
	_, _ = c.in.ReadString('\n')
}

// Run mounts the session, draws it, then executes commands until quit, EOF
// or ctx is done.
func (c *Console) Run(ctx context.Context, s *Session) error {
	// Mount failures are already reflected in the session state.
	_ = s.Mount(ctx)
	if err := c.show(s); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if line == "" && err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		quit, cmdErr := c.exec(ctx, s, strings.TrimRight(line, "\r\n"))
		if quit {
			return nil
		}
		if cmdErr != nil {
			continue
		}
		if err := c.show(s); err != nil {
			return err
		}
	}
}

// exec runs one command. A non-nil error means nothing needs redrawing.
func (c *Console) exec(ctx context.Context, s *Session, line string) (quit bool, err error) {
	cmd, arg, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	switch cmd {
	case "greet":
		s.SetName(arg)
		if err := s.SubmitGreeting(ctx); errors.Is(err, ErrEmptyInput) {
			return false, err
		}
	case "echo":
		s.SetEchoMessage(arg)
		if err := s.SubmitEcho(ctx); errors.Is(err, ErrEmptyInput) {
			return false, err
		}
	case "refresh":
		_ = s.Refresh(ctx)
	case "health":
		_ = s.CheckHealth(ctx)
	case "show":
	case "quit", "exit":
		return true, nil
	case "":
		return false, errNoCommand
	case "help":
		fmt.Fprint(c.out, helpText)
		return false, errNoCommand
	default:
		fmt.Fprintf(c.out, "unknown command %q\n%s", cmd, helpText)
		return false, errNoCommand
	}
	return false, nil
}

var errNoCommand = errors.New("no command")

func (c *Console) show(s *Session) error {
	fmt.Fprintln(c.out)
	return Render(c.out, NewView(s.Snapshot(), c.baseURL))
}
