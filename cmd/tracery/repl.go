package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nickandperla.net/tracery/pkg/tracery"
)

func (a *app) replCmd() *cobra.Command {
	var src source

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Resolve lines interactively",
		Long: `Each line is resolved against the grammar and printed.

Commands:
  :seed N     reseed the random source
  :symbols    list the grammar's symbols
  :quit       leave (Ctrl+D also works)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), cmd, &src)
			if err != nil {
				return err
			}
			r := &repl{g: g, out: a.out}

			// Check if stdin is a terminal
			if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				r.runRaw(f)
				return nil
			}
			r.runBasic(a.in)
			return nil
		},
	}
	src.bind(cmd)
	return cmd
}

type repl struct {
	g   *tracery.Grammar
	out io.Writer
	eol string
}

func (r *repl) printf(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	if r.eol != "" {
		s = strings.ReplaceAll(s, "\n", r.eol)
	}
	fmt.Fprint(r.out, s)
}

func (r *repl) banner() {
	r.printf("tracery REPL (Ctrl+D to exit)\n")
	r.printf("Type text with #tags# and [actions]; :symbols, :seed N, :quit\n\n")
}

// eval handles one input line. It reports false when the session should end.
func (r *repl) eval(line string) bool {
	input := strings.TrimSpace(line)
	switch {
	case input == "":
		return true

	case input == ":quit" || input == ":q":
		return false

	case input == ":symbols":
		r.printf("%s\n", strings.Join(r.g.Symbols(), " "))

	case strings.HasPrefix(input, ":seed"):
		arg := strings.TrimSpace(strings.TrimPrefix(input, ":seed"))
		seed, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			r.printf("Error: bad seed %q\n", arg)
			return true
		}
		r.g.Seed(seed)

	default:
		r.printf("%s\n", r.g.Resolve(line))
	}
	return true
}

// runBasic handles non-TTY input (piped input)
func (r *repl) runBasic(in io.Reader) {
	r.banner()
	reader := bufio.NewReader(in)

	for {
		r.printf(">>> ")

		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if err != nil {
			if line != "" {
				r.eval(line)
			}
			r.printf("\n")
			return
		}
		if !r.eval(line) {
			return
		}
	}
}

// runRaw handles TTY input with line editing
func (r *repl) runRaw(f *os.File) {
	fd := int(f.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
		r.runBasic(f)
		return
	}
	defer term.Restore(fd, oldState)

	r.eol = "\r\n"
	r.banner()

	for {
		r.printf(">>> ")

		line, eof := readLineRaw(f, r.out)
		if eof {
			r.printf("\n")
			return
		}
		if !r.eval(line) {
			return
		}
	}
}

// readLineRaw reads a line in raw mode.
// Returns the line and whether EOF was encountered
func readLineRaw(in io.Reader, out io.Writer) (string, bool) {
	var line []rune
	cursor := 0 // Position in line (for arrow key navigation)
	buf := make([]byte, 1)

	read := func() (byte, bool) {
		n, err := in.Read(buf)
		if err != nil || n == 0 {
			return 0, false
		}
		return buf[0], true
	}

	// Helper to redraw line from cursor position
	redrawFromCursor := func() {
		// Clear from cursor to end of line
		fmt.Fprint(out, "\x1b[K")
		fmt.Fprint(out, string(line[cursor:]))
		// Move cursor back to position
		if cursor < len(line) {
			fmt.Fprintf(out, "\x1b[%dD", len(line)-cursor)
		}
	}

	insert := func(r rune) {
		line = append(line[:cursor], append([]rune{r}, line[cursor:]...)...)
		cursor++
		fmt.Fprint(out, string(r))
		if cursor < len(line) {
			redrawFromCursor()
		}
	}

	for {
		b, ok := read()
		if !ok {
			return string(line), true
		}

		switch b {
		case 0x04: // Ctrl+D
			if len(line) == 0 {
				return "", true
			}
			// Delete character at cursor (like Delete key)
			if cursor < len(line) {
				line = append(line[:cursor], line[cursor+1:]...)
				redrawFromCursor()
			}

		case 0x03: // Ctrl+C
			fmt.Fprint(out, "^C\r\n")
			return "", false

		case 0x0d, 0x0a: // Enter (CR or LF)
			fmt.Fprint(out, "\r\n")
			return string(line), false

		case 0x7f, 0x08: // Backspace (DEL or BS)
			if cursor > 0 {
				cursor--
				line = append(line[:cursor], line[cursor+1:]...)
				fmt.Fprint(out, "\b")
				redrawFromCursor()
			}

		case 0x1b: // ESC - arrow key sequence
			next, ok := read()
			if !ok || next != '[' {
				continue
			}
			key, ok := read()
			if !ok {
				continue
			}
			switch key {
			case 'C': // Right arrow
				if cursor < len(line) {
					cursor++
					fmt.Fprint(out, "\x1b[C")
				}
			case 'D': // Left arrow
				if cursor > 0 {
					cursor--
					fmt.Fprint(out, "\x1b[D")
				}
			case '3': // Delete key: ESC [ 3 ~
				if tilde, ok := read(); ok && tilde == '~' && cursor < len(line) {
					line = append(line[:cursor], line[cursor+1:]...)
					redrawFromCursor()
				}
			}

		case 0x01: // Ctrl+A - beginning of line
			if cursor > 0 {
				fmt.Fprintf(out, "\x1b[%dD", cursor)
				cursor = 0
			}

		case 0x05: // Ctrl+E - end of line
			if cursor < len(line) {
				fmt.Fprintf(out, "\x1b[%dC", len(line)-cursor)
				cursor = len(line)
			}

		case 0x0b: // Ctrl+K - kill to end of line
			if cursor < len(line) {
				line = line[:cursor]
				fmt.Fprint(out, "\x1b[K")
			}

		case 0x15: // Ctrl+U - kill to beginning of line
			if cursor > 0 {
				fmt.Fprintf(out, "\x1b[%dD", cursor)
				line = line[cursor:]
				cursor = 0
				redrawFromCursor()
			}

		default:
			if b >= 0x20 && b < 0x7f {
				insert(rune(b))
			} else if b >= 0x80 {
				// UTF-8 multi-byte sequence - read remaining bytes
				utfBuf := []byte{b}

				numBytes := 0
				if b&0xE0 == 0xC0 {
					numBytes = 1
				} else if b&0xF0 == 0xE0 {
					numBytes = 2
				} else if b&0xF8 == 0xF0 {
					numBytes = 3
				}

				for i := 0; i < numBytes; i++ {
					c, ok := read()
					if !ok {
						break
					}
					utfBuf = append(utfBuf, c)
				}
				insert([]rune(string(utfBuf))[0])
			}
		}
	}
}
