package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/config"
	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/scene"
	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/templates"
	"github.com/go-drift/pagestatus/pkg/errors"
	"github.com/go-drift/pagestatus/pkg/graphics"
	"github.com/go-drift/pagestatus/pkg/platform"
)

var flagInstant bool

func init() {
	renderCmd := &cobra.Command{
		Use:   "render <scenario>",
		Short: "Play a scenario and print the view tree after every step",
		Long: `Play the steps of a scenario on a UI looper, honoring their delays, and
print the view tree after each one.

The argument is a scenario file, a scenario name looked up in the
scenarios directory, or the name of a built-in demo scenario.

Examples:
  pagestatus render linear
  pagestatus render ./scenarios/inbox.yaml --instant`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}
	renderCmd.Flags().BoolVar(&flagInstant, "instant", false, "Ignore step delays")
	RegisterCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return play(ctx, cmd.OutOrStdout(), sc, playOptions{
		Size:    graphics.Size{Width: resolved.Width, Height: resolved.Height},
		Instant: flagInstant,
		Logger:  logger,
	})
}

// loadScenario resolves a scenario argument: a file, a name in the
// scenarios directory, then a built-in demo.
func loadScenario(arg string) (*config.Scenario, error) {
	path := resolved.ScenarioPath(arg)
	if _, err := os.Stat(path); err == nil {
		return config.LoadScenario(path)
	}
	if slices.Contains(templates.DemoScenarios, arg) {
		return config.LoadScenarioFS(templates.FS, templates.ScenarioPath(arg))
	}
	err := fmt.Errorf("scenario %q not found (looked for %s)", arg, path)
	if guess := suggest(arg, knownScenarios()); guess != "" {
		err = fmt.Errorf("%w, did you mean %q?", err, guess)
	}
	return nil, err
}

// knownScenarios lists the scenario files of the project followed by the
// built-in demos.
func knownScenarios() []string {
	files, _ := filepath.Glob(filepath.Join(resolved.Scenarios, "*.yaml"))
	names := make([]string, 0, len(files)+len(templates.DemoScenarios))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(filepath.Base(f), ".yaml"))
	}
	return append(names, templates.DemoScenarios...)
}

// suggest returns the best fuzzy match for name, or "".
func suggest(name string, candidates []string) string {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

type playOptions struct {
	Size    graphics.Size
	Instant bool
	Logger  *slog.Logger
}

// play builds the scene on a looper and runs the steps on it one after
// the other, each after its delay. The first failing or panicking step is
// reported and stops the playback.
func play(ctx context.Context, w io.Writer, sc *config.Scenario, opts playOptions) error {
	looper := platform.NewLooper()
	// Quitting also stops the timer of a delayed step that has not fired.
	defer looper.Quit()
	out := newStepPrinter(w)

	var result error
	fail := func(err error) {
		if result == nil {
			result = err
			errors.Report("render.play", err)
		}
		looper.Quit()
	}
	looper.OnPanic(func(r any) {
		fail(fmt.Errorf("scenario %s: panic: %v", sc.Name, r))
	})

	var s *scene.Scene
	var step func(i int)
	step = func(i int) {
		if i == len(sc.Steps) {
			looper.Quit()
			return
		}
		st := sc.Steps[i]
		run := func() {
			if err := s.Apply(st); err != nil {
				fail(fmt.Errorf("step %d: %w", i+1, err))
				return
			}
			out.print(i+1, describeStep(st), s)
			step(i + 1)
		}
		if opts.Instant || st.After == 0 {
			looper.Post(run)
			return
		}
		looper.PostDelayed(run, st.After)
	}

	looper.Post(func() {
		var err error
		s, err = scene.Build(sc, scene.Options{Size: opts.Size, Logger: opts.Logger, Thread: looper})
		if err != nil {
			fail(err)
			return
		}
		out.print(0, "initial", s)
		step(0)
	})

	if err := looper.Run(ctx); err != nil {
		return err
	}
	return result
}

func describeStep(st config.Step) string {
	if st.Visible != nil {
		if *st.Visible {
			return "show statuses"
		}
		return "hide statuses"
	}
	if len(st.Params) == 0 {
		return "transform " + st.Transform
	}
	keys := make([]string, 0, len(st.Params))
	for k := range st.Params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return fmt.Sprintf("transform %s %v", st.Transform, keys)
}

type stepPrinter struct {
	w      io.Writer
	header lipgloss.Style
	status lipgloss.Style
}

func newStepPrinter(w io.Writer) *stepPrinter {
	r := lipgloss.NewRenderer(w)
	return &stepPrinter{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}),
		status: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}),
	}
}

func (p *stepPrinter) print(n int, what string, s *scene.Scene) {
	current, ok := s.Transformer.CurrentStatusName()
	if !ok {
		current = "-"
	}
	state := fmt.Sprintf("current=%s visible=%t", current, s.Transformer.Visible())
	fmt.Fprintf(p.w, "%s %s\n%s", p.header.Render(fmt.Sprintf("[%d] %s", n, what)), p.status.Render(state), s.Dump())
}
