// Package script drives an editor from a line-oriented command file.
//
// One command per line; blank lines and everything after '#' are ignored.
//
//	mode create|delete
//	down X Y [EDGE]     up X Y [EDGE]     click X Y [EDGE]
//	move X Y [pressed]
//	vertex X Y [R]      edge A B
//	rmv ID              rme ID
//	select ID           deselect
//	status
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ritzau/graphsketch/pkg/editor"
	"github.com/ritzau/graphsketch/pkg/graph"
	"github.com/ritzau/graphsketch/pkg/logging"
	"github.com/ritzau/graphsketch/pkg/model"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrUnknownCommand is returned for a command word the runner does not know
	ErrUnknownCommand = errors.New("unknown command")
	// ErrSyntax is returned for a known command with malformed arguments
	ErrSyntax = errors.New("syntax error")
)

// LineError reports the script line a command failed on
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Runner executes script commands against a controller
type Runner struct {
	editor *editor.Controller
	out    io.Writer
}

// NewRunner creates a runner; status lines are written to out
func NewRunner(c *editor.Controller, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{editor: c, out: out}
}

// Run executes every line of in, stopping at the first failing command or
// when ctx is cancelled
func (r *Runner) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	n := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		text := scanner.Text()
		if err := r.Exec(text); err != nil {
			return &LineError{Line: n, Text: strings.TrimSpace(text), Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	logging.Debug("Script finished", "lines", n, "status", r.editor.Status().String())
	return nil
}

// Exec executes a single command line
func (r *Runner) Exec(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	logging.Trace("Script command", "cmd", cmd, "args", args)

	switch cmd {
	case "mode":
		if err := arity(args, 1, 1); err != nil {
			return err
		}
		mode, err := model.ParseMode(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		r.editor.SetMode(mode)

	case "down", "up", "click":
		p, err := pointer(args)
		if err != nil {
			return err
		}
		switch cmd {
		case "down":
			r.editor.Down(p)
		case "up":
			r.editor.Up(p)
		default:
			r.editor.Click(p)
		}

	case "move":
		if err := arity(args, 2, 3); err != nil {
			return err
		}
		pos, err := position(args[0], args[1])
		if err != nil {
			return err
		}
		p := editor.Pointer{Pos: pos}
		if len(args) == 3 {
			if strings.ToLower(args[2]) != "pressed" {
				return fmt.Errorf("%w: expected \"pressed\", got %q", ErrSyntax, args[2])
			}
			p.Pressed = true
		}
		r.editor.Move(p)

	case "vertex":
		if err := arity(args, 2, 3); err != nil {
			return err
		}
		pos, err := position(args[0], args[1])
		if err != nil {
			return err
		}
		var radius float64
		if len(args) == 3 {
			if radius, err = number(args[2]); err != nil {
				return err
			}
		}
		id := r.editor.PlaceVertex(pos, radius)
		logging.Debug("Placed vertex", "id", id)

	case "edge":
		if err := arity(args, 2, 2); err != nil {
			return err
		}
		from, err := handle(args[0])
		if err != nil {
			return err
		}
		to, err := handle(args[1])
		if err != nil {
			return err
		}
		// An edge to a missing vertex is dropped, like an interactive connect
		r.editor.Connect(graph.VertexID(from), graph.VertexID(to))

	case "rmv", "rme", "select":
		if err := arity(args, 1, 1); err != nil {
			return err
		}
		id, err := handle(args[0])
		if err != nil {
			return err
		}
		switch cmd {
		case "rmv":
			r.editor.DeleteVertex(graph.VertexID(id))
		case "rme":
			r.editor.DeleteEdge(graph.EdgeID(id))
		default:
			if !r.editor.Select(graph.VertexID(id)) {
				logging.Debug("Select ignored", "id", id)
			}
		}

	case "deselect":
		if err := arity(args, 0, 0); err != nil {
			return err
		}
		r.editor.ClearSelection()

	case "status":
		if err := arity(args, 0, 0); err != nil {
			return err
		}
		fmt.Fprintln(r.out, r.editor.Status())

	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return nil
}

func arity(args []string, min, max int) error {
	if len(args) < min || len(args) > max {
		if min == max {
			return fmt.Errorf("%w: expected %d argument(s), got %d", ErrSyntax, min, len(args))
		}
		return fmt.Errorf("%w: expected %d to %d arguments, got %d", ErrSyntax, min, max, len(args))
	}
	return nil
}

func pointer(args []string) (editor.Pointer, error) {
	if err := arity(args, 2, 3); err != nil {
		return editor.Pointer{}, err
	}
	pos, err := position(args[0], args[1])
	if err != nil {
		return editor.Pointer{}, err
	}
	p := editor.Pointer{Pos: pos}
	if len(args) == 3 {
		id, err := handle(args[2])
		if err != nil {
			return editor.Pointer{}, err
		}
		p.Edge = graph.EdgeID(id)
	}
	return p, nil
}

func position(xs, ys string) (r2.Vec, error) {
	x, err := number(xs)
	if err != nil {
		return r2.Vec{}, err
	}
	y, err := number(ys)
	if err != nil {
		return r2.Vec{}, err
	}
	return r2.Vec{X: x, Y: y}, nil
}

func number(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number %q", ErrSyntax, s)
	}
	return v, nil
}

func handle(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrSyntax, s)
	}
	return v, nil
}
