package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/watchfire-io/autodeploy/internal/clock"
	"github.com/watchfire-io/autodeploy/internal/console"
	"github.com/watchfire-io/autodeploy/internal/models"
)

var runFast bool

var runCmd = &cobra.Command{
	Use:   "run [command...]",
	Short: "Run console commands without the interactive console",
	Long: `Run console commands in order and print the log.

Each argument is one command line. Without arguments, commands are read from
stdin, one per line. Every command waits for its pipeline to finish before
the next one is submitted.

Examples:
  autodeploy run help "deploy to production" status
  printf 'analyze\ndeploy\n' | autodeploy run --fast`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runFast, "fast", false, "skip real waiting between pipeline steps")
}

// scriptOptions configures runScript.
type scriptOptions struct {
	Start    time.Time
	TimeUnit time.Duration
	Sleep    clock.Sleeper
	Color    bool
}

func runRun(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings()
	if err != nil {
		return err
	}
	if debugFlag || settings.Debug {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}

	commands := args
	if len(commands) == 0 {
		commands, err = readCommands(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	opts := scriptOptions{
		Start:    time.Now(),
		TimeUnit: settings.Pipeline.TimeUnit,
		Sleep:    clock.RealSleep,
		Color:    useColor(cmd.OutOrStdout()),
	}
	if runFast {
		opts.Sleep = clock.NoSleep
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return runScript(ctx, cmd.OutOrStdout(), commands, opts)
}

// readCommands returns the non-empty lines of r.
func readCommands(r io.Reader) ([]string, error) {
	var commands []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		commands = append(commands, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read commands: %w", err)
	}
	return commands, nil
}

// runScript submits each command to a fresh session and waits for the
// session to settle before the next one. Entries are printed as they are
// written.
func runScript(ctx context.Context, out io.Writer, commands []string, opts scriptOptions) error {
	clk := clock.NewManual(opts.Start)
	session := console.NewSession(clk, console.WithTimeUnit(opts.TimeUnit))

	p := &entryPrinter{w: out, color: opts.Color}
	session.Subscribe(p.observe)

	for _, line := range commands {
		session.Submit(line)
		if p.err != nil {
			return p.err
		}
		if err := clk.Drain(ctx, opts.Sleep); err != nil {
			return err
		}
		if p.err != nil {
			return p.err
		}
	}

	status := session.Status()
	summary := console.StatusMessagePrefix + status.String()
	if opts.Color {
		summary = styleHint.Render(summary)
	}
	_, err := fmt.Fprintln(out, summary)
	return err
}

// entryPrinter writes session entries as "[HH:MM:SS] LEVEL message".
type entryPrinter struct {
	w     io.Writer
	color bool
	err   error
}

func (p *entryPrinter) observe(e console.Event) {
	if p.err != nil {
		return
	}
	switch e.Kind {
	case console.EventAppend:
		_, p.err = fmt.Fprintln(p.w, p.format(e.Entry))
	case console.EventClear:
		line := "--- log cleared ---"
		if p.color {
			line = styleHint.Render(line)
		}
		_, p.err = fmt.Fprintln(p.w, line)
	}
}

func (p *entryPrinter) format(e models.LogEntry) string {
	ts := "[" + e.Timestamp + "]"
	level := fmt.Sprintf("%-7s", strings.ToUpper(string(e.Level)))
	if !p.color {
		return ts + " " + level + " " + e.Message
	}
	style, ok := levelStyles[e.Level]
	if !ok {
		style = styleValue
	}
	return styleLabel.Render(ts) + " " + style.Render(level) + " " + style.Render(e.Message)
}

// useColor reports whether out is a terminal that accepts color.
func useColor(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
