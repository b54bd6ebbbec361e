// Package console implements the line-oriented front end: it reads commands,
// calls the expense manager and prints tables, charts and user-facing messages.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"expenses/internal/analysis"
	"expenses/internal/core"
	"expenses/internal/export"
	applog "expenses/internal/log"
	"expenses/internal/report"
	"expenses/internal/services"
)

// Manager is the subset of services.ExpenseManager the console drives.
type Manager interface {
	Add(ctx context.Context, date, description, amount string) (core.Expense, error)
	Delete(ctx context.Context, index int) (core.Expense, error)
	Records() []core.Expense
	Display(ctx context.Context) (services.Report, error)
	Save(ctx context.Context) ([]export.Result, error)
}

const helpText = `Commands:
  add        record an expense (prompts for date, description and amount)
  list       show all expenses with their numbers
  delete N   remove expense number N
  display    show totals and charts
  save       export expenses to the configured sinks
  help       show this help
  quit       leave`

// Console reads commands from in and writes output to out.
type Console struct {
	mgr        Manager
	in         io.Reader
	out        io.Writer
	chartWidth int
	logger     *applog.Logger

	lines <-chan string
}

func New(mgr Manager, in io.Reader, out io.Writer, chartWidth int) *Console {
	return &Console{
		mgr:        mgr,
		in:         in,
		out:        out,
		chartWidth: chartWidth,
	}
}

// Run processes commands until quit, end of input or ctx cancellation. Only
// cancellation is reported as an error; user mistakes are printed and the
// session continues.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.logger = applog.FromContext(ctx).WithComponent(applog.ComponentConsole)
	c.lines = readLines(ctx, c.in)

	c.println("Expense Tracker. Type 'help' for commands.")
	for {
		line, ok, err := c.prompt(ctx, "> ")
		if err != nil {
			return err
		}
		if !ok {
			c.println("")
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]
		c.logger.DebugContext(ctx, "Command received", applog.FieldCommand, cmd)

		switch cmd {
		case "add", "a":
			if err := c.add(ctx); err != nil {
				return err
			}
		case "delete", "del", "d":
			c.delete(ctx, args)
		case "list", "ls", "l":
			c.list()
		case "display", "show":
			c.display(ctx)
		case "save", "s":
			c.save(ctx)
		case "help", "h", "?":
			c.println(helpText)
		case "quit", "exit", "q":
			c.println("Bye.")
			return nil
		default:
			c.printf("Unknown command %q. Type 'help' for commands.\n", cmd)
		}
	}
}

func (c *Console) add(ctx context.Context) error {
	var inputs [3]string
	for i, label := range []string{"Date (YYYY-MM-DD): ", "Description: ", "Amount: "} {
		line, ok, err := c.prompt(ctx, label)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		inputs[i] = line
	}

	e, err := c.mgr.Add(ctx, inputs[0], inputs[1], inputs[2])
	if err != nil {
		c.println(userMessage(err))
		return nil
	}
	c.printf("Added: %s  %s  %s\n", e.Date, e.Description, core.FormatAmount(e.Amount))
	return nil
}

func (c *Console) delete(ctx context.Context, args []string) {
	// Positions are shown 1-based by list; anything unparseable selects nothing.
	index := -1
	if len(args) == 1 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			index = n - 1
		}
	}

	e, err := c.mgr.Delete(ctx, index)
	if err != nil {
		c.println(userMessage(err))
		return
	}
	c.printf("Deleted: %s  %s  %s\n", e.Date, e.Description, core.FormatAmount(e.Amount))
}

func (c *Console) list() {
	records := c.mgr.Records()
	if len(records) == 0 {
		c.println("No expenses recorded.")
		return
	}
	c.println(report.Table(records))
}

func (c *Console) display(ctx context.Context) {
	r, err := c.mgr.Display(ctx)
	if err != nil {
		if errors.Is(err, core.ErrNoData) {
			c.println("No expenses to display.")
			return
		}
		c.println(userMessage(err))
		return
	}

	c.println(report.Summary(r.Summary))
	c.println("")
	if pie, err := analysis.PieSlices(r.Chart); err != nil {
		c.printf("Category chart unavailable: %v\n", err)
	} else {
		c.println(report.Pie(pie, c.chartWidth))
	}
	c.println("")
	c.println(report.Bars(r.Chart, c.chartWidth))
}

func (c *Console) save(ctx context.Context) {
	results, err := c.mgr.Save(ctx)
	if err != nil {
		if errors.Is(err, core.ErrNoData) {
			c.println("No expenses to save.")
			return
		}
		c.println(userMessage(err))
		return
	}
	for _, r := range results {
		c.printf("Expenses saved to %s (%s)\n", r.Ref, r.Sink)
	}
}

// prompt prints label and waits for the next line. ok is false at end of input.
func (c *Console) prompt(ctx context.Context, label string) (line string, ok bool, err error) {
	io.WriteString(c.out, label)
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok = <-c.lines:
		return line, ok, nil
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// userMessage maps domain errors to the messages shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyField):
		return "Input Error: All fields are required!"
	case errors.Is(err, core.ErrInvalidDateFormat):
		return "Input Error: Invalid date format!"
	case errors.Is(err, core.ErrInvalidAmount):
		return "Input Error: Amount must be a number!"
	case errors.Is(err, core.ErrNoSelection):
		return "Delete Error: No expense selected!"
	case errors.Is(err, core.ErrNoData):
		return "No Data: No expenses recorded."
	default:
		return "Error: " + err.Error()
	}
}

// readLines feeds lines from r until EOF or ctx is done, so a blocked read
// never keeps Run from returning on cancellation.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- strings.TrimRight(sc.Text(), "\r"):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
