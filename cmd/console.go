package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/itihas/internal/apperr"
	"github.com/abhisek/itihas/internal/session"
)

var errInputClosed = errors.New("input closed")

// console drives the line-oriented subcommands.
type console struct {
	in  *bufio.Scanner
	out io.Writer
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{in: bufio.NewScanner(in), out: out}
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) heading(title string) {
	c.printf("── %s ──\n", title)
}

func (c *console) warnings(ws []string) {
	for _, w := range ws {
		c.printf("⚠ %s\n", w)
	}
}

// line prints s when it is not empty.
func (c *console) line(s string) {
	if s != "" {
		c.printf("%s\n", s)
	}
}

// userError turns a pipeline error into the message a learner sees.
func userError(err error) error {
	return errors.New(apperr.UserMessage(err))
}

// chooseTitle picks one of cands. A single candidate, or first set,
// returns the top-ranked title without prompting.
func (c *console) chooseTitle(cands []string, first bool) (string, error) {
	if len(cands) == 0 {
		return "", errors.New("no candidates to choose from")
	}
	if first || len(cands) == 1 {
		return cands[0], nil
	}

	c.printf("Matching articles:\n")
	for i, t := range cands {
		c.printf("  %d) %s\n", i+1, t)
	}
	for {
		c.printf("Choose [1-%d]: ", len(cands))
		if !c.in.Scan() {
			return "", errInputClosed
		}
		n, err := strconv.Atoi(strings.TrimSpace(c.in.Text()))
		if err == nil && n >= 1 && n <= len(cands) {
			return cands[n-1], nil
		}
		c.printf("Please enter a number from the list.\n")
	}
}

// parseChoice maps input to one of options. Letters (A, b), 1-based
// numbers and the option text itself are accepted.
func parseChoice(input string, options []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if len(input) == 1 {
		ch := strings.ToUpper(input)[0]
		if ch >= 'A' && int(ch-'A') < len(options) {
			return options[ch-'A'], true
		}
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	for _, o := range options {
		if strings.EqualFold(o, input) {
			return o, true
		}
	}
	return "", false
}

// runQuiz asks every remaining item of l's session and returns the
// feedback for the final answer. Closing the input abandons the quiz.
func (c *console) runQuiz(ctx context.Context, l *session.Learner) (session.Feedback, error) {
	for {
		item, ok := l.Current()
		if !ok {
			return session.Feedback{}, errors.New("no quiz in progress")
		}
		s := l.Session()
		v := item.View()

		c.heading(fmt.Sprintf("Question %d/%d", s.CurrentIndex+1, s.Total()))
		c.printf("%s\n", v.Question)
		for j, o := range v.Options {
			c.printf("  %c) %s\n", 'A'+j, o)
		}

		var answer string
		for answer == "" {
			c.printf("\nYour answer: ")
			if !c.in.Scan() {
				_ = l.Abandon()
				c.printf("\n(input closed)\n")
				return session.Feedback{}, errInputClosed
			}
			a, ok := parseChoice(c.in.Text(), v.Options)
			if !ok {
				c.printf("Pick one of the letters shown.\n")
				continue
			}
			answer = a
		}

		fb, err := l.Submit(ctx, answer)
		if err != nil {
			return fb, err
		}
		if fb.Correct {
			c.printf("\033[32m✓ Correct!\033[0m\n")
		} else {
			c.printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", fb.CorrectAnswer)
		}
		if fb.Completed {
			return fb, nil
		}
		c.printf("\n")
	}
}
