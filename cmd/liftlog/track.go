// ABOUTME: Interactive tracker that runs a live workout session in the terminal.
// ABOUTME: One event loop owns the session and serializes input lines, ticks and save results.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harperreed/liftlog/internal/catalog"
	"github.com/harperreed/liftlog/internal/clock"
	"github.com/harperreed/liftlog/internal/editor"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/session"
	"github.com/harperreed/liftlog/internal/storage"
)

const trackHelp = `COMMANDS:

  pick <exercise>   Start an exercise by name or catalog ID
  recent            Show exercises recently used for this workout type
  set               Start a set (stops the rest timer)
  stop              End the set (starts the rest timer)
  reps <n>          Repetitions for the current set
  weight <kg>       Weight for the current set (carries over)
  fail [yes|no]     Mark the set as failed (default yes)
  partial <n>       Partial reps after failure
  commit            Record the current set
  dist <amount>     Distance for a distance exercise
  unit <m|km|mi>    Distance unit
  done              Finish the current exercise
  discard           Drop the current exercise without recording it
  finish            Save the workout
  status            Show the whole session
  reset             Throw the session away
  start <type>      Start a new workout after finish or reset
  quit              Leave the tracker`

var trackCmd = &cobra.Command{
	Use:     "track <workout type>",
	Aliases: []string{"t"},
	Short:   "Track a workout live",
	Long: `Track a workout as you do it. Sets and rest are timed for you.

The prompt shows elapsed workout time, the rest timer and the set timer,
refreshed every tick (tick_interval in config, default 1s).

` + trackHelp + `

EXAMPLE:

  $ liftlog track "Push Day"
  > pick bench press
  > set
  > stop
  > reps 8
  > weight 60
  > commit
  > done
  > finish`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		clk := clock.Real{}
		cache := catalog.NewCache(db, cfg.GetCatalogCacheTTL(), logger)
		tr := newTracker(db, cache, clk, cmd.OutOrStdout(), cfg.GetRecentLimit(), logger)
		if err := tr.start(ctx, strings.Join(args, " ")); err != nil {
			return err
		}

		ticker := clk.NewTicker(cfg.GetTickInterval())
		defer ticker.Stop()
		return tr.run(ctx, os.Stdin, ticker.C())
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
}

// setEditor is the shared surface of the set-based editors.
type setEditor interface {
	editor.Editor
	StartSet() error
	EndSet() error
	CommitSet() error
	SetFailure(failed bool)
}

type saveResult struct {
	saved *models.SavedWorkout
	err   error
}

// tracker binds a session to terminal input. It is not safe for concurrent
// use; only run's goroutine touches it.
type tracker struct {
	s           *session.Session
	repo        storage.Repository
	catalog     *catalog.Cache
	out         io.Writer
	log         zerolog.Logger
	recentLimit int

	ed     editor.Editor
	saves  chan saveResult
	saving bool
}

func newTracker(repo storage.Repository, cache *catalog.Cache, clk clock.Clock, out io.Writer, recentLimit int, log zerolog.Logger) *tracker {
	return &tracker{
		s:           session.New(clk, session.WithLogger(log)),
		repo:        repo,
		catalog:     cache,
		out:         out,
		log:         log.With().Str("component", "tracker").Logger(),
		recentLimit: recentLimit,
		saves:       make(chan saveResult, 1),
	}
}

// run processes input until quit, EOF or ctx is done. A save in flight is
// always awaited before returning.
func (t *tracker) run(ctx context.Context, in io.Reader, tick <-chan time.Time) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	t.prompt()
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(t.out)
			t.waitForSave()
			t.warnUnsaved()
			return nil
		case line, ok := <-lines:
			if !ok {
				t.waitForSave()
				t.warnUnsaved()
				return nil
			}
			if t.handle(ctx, line) {
				t.waitForSave()
				t.warnUnsaved()
				return nil
			}
			t.prompt()
		case res := <-t.saves:
			fmt.Fprintln(t.out)
			t.saveDone(res)
			t.prompt()
		case <-tick:
			if t.s.Phase() == session.PhaseActive {
				fmt.Fprint(t.out, "\r\033[K")
				t.prompt()
			}
		}
	}
}

// handle runs one command line and reports whether the tracker should exit.
func (t *tracker) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, arg := strings.ToLower(fields[0]), strings.Join(fields[1:], " ")

	var err error
	switch cmd {
	case "help", "?":
		fmt.Fprintln(t.out, trackHelp)
	case "status", "s":
		t.status()
	case "recent":
		t.printRecent(ctx)
	case "start":
		err = t.start(ctx, arg)
	case "pick", "p":
		err = t.pick(ctx, arg)
	case "set", "go":
		err = t.startSet()
	case "stop", "end":
		err = t.endSet()
	case "reps", "r":
		err = t.withSetsReps(func(e *editor.SetsRepsEditor) { e.SetReps(arg) })
	case "weight", "kg", "w":
		err = t.withSetsReps(func(e *editor.SetsRepsEditor) { e.SetWeight(arg) })
	case "partial":
		err = t.withSetsReps(func(e *editor.SetsRepsEditor) { e.SetPartialReps(arg) })
	case "fail", "f":
		err = t.fail(arg)
	case "commit", "c":
		err = t.commit()
	case "dist", "d":
		err = t.withDistance(func(e *editor.DistanceEditor) error {
			e.SetDistance(arg)
			return nil
		})
	case "unit", "u":
		err = t.withDistance(func(e *editor.DistanceEditor) error { return e.SetUnit(arg) })
	case "done":
		err = t.completeExercise()
	case "discard":
		err = t.discard()
	case "finish":
		err = t.finish(ctx)
	case "reset":
		err = t.reset()
	case "quit", "exit", "q":
		return true
	default:
		err = fmt.Errorf("unknown command %q (try help)", cmd)
	}

	if err != nil {
		red.Fprintf(t.out, "✗ %v\n", err)
	}
	return false
}

func (t *tracker) prompt() {
	v := t.s.View()
	if v.Phase != session.PhaseActive {
		fmt.Fprintf(t.out, "(%s) > ", v.Phase)
		return
	}
	parts := []string{v.ElapsedText()}
	if v.RestActive {
		parts = append(parts, "rest "+v.RestText())
	}
	if v.ActiveSet != nil {
		parts = append(parts, "set "+v.SetText())
	}
	name := ""
	if v.ActiveExercise != nil {
		name = v.ActiveExercise.Name + " "
	}
	fmt.Fprintf(t.out, "%s%s> ", faint.Sprintf("[%s] ", strings.Join(parts, " | ")), name)
}

func (t *tracker) start(ctx context.Context, workoutType string) error {
	if err := t.s.StartWorkout(workoutType); err != nil {
		return err
	}
	t.ed = nil
	green.Fprintf(t.out, "✓ Started %s\n", t.s.WorkoutType())
	t.printRecent(ctx)
	return nil
}

func (t *tracker) printRecent(ctx context.Context) {
	if t.s.WorkoutType() == "" {
		return
	}
	wt, err := t.repo.GetWorkoutTypeByName(ctx, t.s.WorkoutType())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.log.Warn().Err(err).Msg("workout type lookup failed")
		}
		return
	}
	defs, err := t.catalog.ListRecentExerciseDefinitions(ctx, wt.ID, t.recentLimit)
	if err != nil {
		t.log.Warn().Err(err).Msg("recent exercises lookup failed")
		return
	}
	if len(defs) == 0 {
		return
	}
	fmt.Fprintln(t.out, "Recent exercises:")
	for _, d := range defs {
		fmt.Fprintf(t.out, "  %s %s %s\n", faint.Sprintf("%4d", d.ID), d.Name, faint.Sprint(d.Type))
	}
}

func (t *tracker) pick(ctx context.Context, nameOrID string) error {
	if strings.TrimSpace(nameOrID) == "" {
		return session.ValidationError("which exercise? see recent or 'liftlog exercise list'")
	}
	def, err := t.catalog.Find(ctx, nameOrID)
	if err != nil {
		return err
	}
	if err := t.s.SelectExercise(*def); err != nil {
		return err
	}
	if t.ed, err = editor.For(t.s); err != nil {
		return err
	}

	bold.Fprintf(t.out, "▶ %s", def.Name)
	fmt.Fprintf(t.out, " %s\n", faint.Sprint(def.Type))
	if def.Type == models.ExerciseDistance {
		fmt.Fprintf(t.out, "  rest before: %s\n", t.ed.Render().RestBefore)
	}
	return nil
}

func (t *tracker) setEditor() (setEditor, error) {
	if t.ed == nil {
		return nil, fmt.Errorf("%w: pick an exercise first", session.ErrInvalidState)
	}
	se, ok := t.ed.(setEditor)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a set-based exercise", session.ErrInvalidState, t.ed.Render().Exercise)
	}
	return se, nil
}

func (t *tracker) startSet() error {
	se, err := t.setEditor()
	if err != nil {
		return err
	}
	if err := se.StartSet(); err != nil {
		return err
	}
	ev := se.Render()
	fmt.Fprintf(t.out, "Set %d started after %s rest\n", ev.SetNumber, session.FormatDuration(t.s.View().ActiveSet.RestBeforeMs))
	return nil
}

func (t *tracker) endSet() error {
	se, err := t.setEditor()
	if err != nil {
		return err
	}
	if err := se.EndSet(); err != nil {
		return err
	}
	ev := se.Render()
	fmt.Fprintf(t.out, "Set %d: %s\n", ev.SetNumber, ev.SetText)
	return nil
}

func (t *tracker) withSetsReps(fn func(*editor.SetsRepsEditor)) error {
	e, ok := t.ed.(*editor.SetsRepsEditor)
	if !ok {
		return fmt.Errorf("%w: reps and weight apply to a sets-reps exercise", session.ErrInvalidState)
	}
	fn(e)
	return nil
}

func (t *tracker) withDistance(fn func(*editor.DistanceEditor) error) error {
	e, ok := t.ed.(*editor.DistanceEditor)
	if !ok {
		return fmt.Errorf("%w: distance applies to a distance exercise", session.ErrInvalidState)
	}
	return fn(e)
}

func (t *tracker) fail(arg string) error {
	se, err := t.setEditor()
	if err != nil {
		return err
	}
	switch strings.ToLower(arg) {
	case "", "y", "yes", "true":
		se.SetFailure(true)
	case "n", "no", "false":
		se.SetFailure(false)
	default:
		return session.ValidationError("fail takes yes or no, got %q", arg)
	}
	return nil
}

func (t *tracker) commit() error {
	se, err := t.setEditor()
	if err != nil {
		return err
	}
	if err := se.CommitSet(); err != nil {
		return err
	}
	if v := t.s.View(); v.ActiveExercise != nil {
		if sp, ok := v.ActiveExercise.Sets(); ok && len(sp.Sets) > 0 {
			last := sp.Sets[len(sp.Sets)-1]
			green.Fprintf(t.out, "✓ Set %d: %s\n", len(sp.Sets), describeSet(v.ActiveExercise.Type, last))
		}
	}
	return nil
}

func (t *tracker) completeExercise() error {
	if t.ed == nil {
		return fmt.Errorf("%w: no exercise in progress", session.ErrInvalidState)
	}
	name := t.ed.Render().Exercise
	if err := t.ed.Complete(); err != nil {
		return err
	}
	t.ed = nil
	green.Fprintf(t.out, "✓ Finished %s\n", name)
	return nil
}

func (t *tracker) discard() error {
	if err := t.s.DiscardExercise(); err != nil {
		return err
	}
	t.ed = nil
	yellow.Fprintln(t.out, "Exercise discarded")
	return nil
}

// finish completes the workout and saves it off the loop goroutine. The
// result comes back through t.saves. The save ignores ctx cancellation.
func (t *tracker) finish(ctx context.Context) error {
	w, err := t.s.CompleteWorkout()
	if err != nil {
		return err
	}
	t.saving = true
	fmt.Fprintln(t.out, "Saving...")
	go func() {
		saved, err := t.repo.SaveWorkout(context.WithoutCancel(ctx), w)
		t.saves <- saveResult{saved: saved, err: err}
	}()
	return nil
}

func (t *tracker) saveDone(res saveResult) {
	t.saving = false
	if res.err != nil {
		err := t.s.SaveFailed(res.err)
		red.Fprintf(t.out, "✗ %v\n", err)
		fmt.Fprintln(t.out, "Your workout is kept. Type finish to retry or reset to discard it.")
		return
	}
	if err := t.s.SaveSucceeded(res.saved); err != nil {
		t.log.Error().Err(err).Msg("save acknowledged in wrong phase")
		return
	}
	t.catalog.Invalidate()
	green.Fprintf(t.out, "✓ Saved %s workout\n", res.saved.WorkoutType)
	fmt.Fprintf(t.out, "  ID: %s\n", res.saved.ID.String()[:8])
	fmt.Fprintf(t.out, "  %s, %d exercises, %d sets\n",
		session.FormatDuration(res.saved.DurationMs()), len(res.saved.Exercises), res.saved.SetCount())
}

func (t *tracker) waitForSave() {
	if t.saving {
		t.saveDone(<-t.saves)
	}
}

func (t *tracker) warnUnsaved() {
	switch t.s.Phase() {
	case session.PhaseActive, session.PhaseError:
		yellow.Fprintln(t.out, "Workout not saved.")
	}
}

func (t *tracker) reset() error {
	if t.saving {
		return fmt.Errorf("%w: save in progress", session.ErrInvalidState)
	}
	t.s.Reset()
	t.ed = nil
	yellow.Fprintln(t.out, "Workout discarded")
	return nil
}

func (t *tracker) status() {
	v := t.s.View()
	fmt.Fprintf(t.out, "Phase: %s\n", v.Phase)
	if v.Phase == session.PhaseSetup {
		return
	}
	fmt.Fprintf(t.out, "Workout: %s, %s elapsed\n", v.WorkoutType, v.ElapsedText())
	if v.RestActive {
		fmt.Fprintf(t.out, "Rest: %s\n", v.RestText())
	}
	for _, e := range v.Exercises {
		if dp, ok := e.Distance(); ok {
			fmt.Fprintf(t.out, "  ✓ %s %g %s\n", e.Name, dp.Distance, dp.Unit)
			continue
		}
		sp, _ := e.Sets()
		fmt.Fprintf(t.out, "  ✓ %s %d sets\n", e.Name, len(sp.Sets))
	}
	if t.ed != nil {
		ev := t.ed.Render()
		bold.Fprintf(t.out, "▶ %s\n", ev.Exercise)
		for i, s := range ev.Sets {
			fmt.Fprintf(t.out, "    Set %d: %s\n", i+1, describeSet(ev.Type, s))
		}
		if ev.SetInProgress {
			state := "running"
			if ev.SetEnded {
				state = "ended"
			}
			fmt.Fprintf(t.out, "    Set %d %s %s\n", ev.SetNumber, state, ev.SetText)
		}
		if ev.Type == models.ExerciseDistance {
			fmt.Fprintf(t.out, "    Distance: %s %s\n", ev.Distance, ev.DistanceUnit)
		}
	}
	if v.ErrorMessage != "" {
		red.Fprintf(t.out, "Last save failed: %s\n", v.ErrorMessage)
	}
}
