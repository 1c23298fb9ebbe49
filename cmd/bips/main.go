// Command bips runs the scheduling engine end-to-end against a snapshot: it
// pre-checks the input, runs the two-pass engine, validates the result,
// prints an operator summary, and prompts before committing (spec §6.4).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"

	"github.com/bjornarhem/bips/internal/bipserrors"
	"github.com/bjornarhem/bips/internal/commands"
	"github.com/bjornarhem/bips/internal/domain"
	"github.com/bjornarhem/bips/internal/engine"
	"github.com/bjornarhem/bips/internal/logging"
	"github.com/bjornarhem/bips/internal/logging/gologger"
	"github.com/bjornarhem/bips/internal/precheck"
	"github.com/bjornarhem/bips/internal/report"
	"github.com/bjornarhem/bips/internal/runtimeconfig"
	"github.com/bjornarhem/bips/internal/snapshot"
	"github.com/bjornarhem/bips/internal/snapshot/fixture"
	"github.com/bjornarhem/bips/internal/validate"
	"github.com/bjornarhem/bips/pkg/interfaces"
)

var _ command.Message = RunScheduleCommand{}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, in *os.File, out *os.File) int {
	fs := flag.NewFlagSet("bips", flag.ExitOnError)
	fixturePath := fs.String("snapshot", "", "Path to a JSON snapshot fixture")
	seed := fs.Int64("seed", 0, "RNG seed")
	loadThreshold := fs.Int("load-threshold", 10, "Interviewer load above which the report flags a warning")
	silent := fs.Bool("silent", false, "Skip the commit confirmation prompt")
	logLevel := fs.String("log-level", "info", "Log level for the gologger provider")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *fixturePath == "" {
		fmt.Fprintln(out, "bips: -snapshot is required")
		return 1
	}

	provider, err := gologger.NewProvider(gologger.Config{Level: *logLevel, Format: "console"})
	if err != nil {
		log.Printf("bips: logger setup failed, falling back to no-op: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Seed = *seed
	cfg.InterviewerLoadThreshold = *loadThreshold
	cfg.Silent = *silent
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "bips: invalid configuration: %v\n", err)
		return 1
	}

	exitCode, runErr := runSchedule(context.Background(), cfg, *fixturePath, provider, in, out)
	if runErr != nil {
		fmt.Fprintf(out, "bips: %v\n", runErr)
	}
	return exitCode
}

// RunScheduleCommand is the single operator command of spec §6.4, wired
// through commands.Handler[T] exactly like ScheduleContentHandler in the
// teacher's internal/commands/content package.
type RunScheduleCommand struct {
	SnapshotPath string
	Config       runtimeconfig.Config
}

// Type implements command.Message.
func (RunScheduleCommand) Type() string { return "bips.schedule.run" }

// Validate implements command.Message's optional validation hook.
func (c RunScheduleCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(c.SnapshotPath) == "" {
		errs["snapshot_path"] = validation.NewError("bips.schedule.snapshot_path_required", "snapshot path is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// outcome carries the result of a successful schedule run back out of the
// command handler for the CLI to print and confirm against.
type outcome struct {
	interviews []domain.Interview
	applied    map[domain.ApplicantID][]domain.Job
	summary    report.Summary
}

func runSchedule(ctx context.Context, cfg runtimeconfig.Config, path string, provider interfaces.LoggerProvider, in *os.File, out *os.File) (int, error) {
	var captured outcome

	handler := commands.NewHandler[RunScheduleCommand](func(ctx context.Context, cmd RunScheduleCommand) error {
		o, err := execute(ctx, cmd, provider)
		if err != nil {
			return err
		}
		captured = o
		return nil
	},
		commands.WithLogger[RunScheduleCommand](commands.CommandLogger(provider, "schedule")),
		commands.WithOperation[RunScheduleCommand]("schedule.run"),
		commands.WithTelemetry[RunScheduleCommand](commands.DefaultTelemetry[RunScheduleCommand](commands.CommandLogger(provider, "schedule"))),
	)

	cmd := RunScheduleCommand{SnapshotPath: path, Config: cfg}
	if err := handler.Execute(ctx, cmd); err != nil {
		if bipserrors.IsInput(err) {
			return 1, err
		}
		if bipserrors.IsInvariant(err) {
			return 2, err
		}
		return 1, err
	}

	fmt.Fprint(out, report.Render(captured.summary, cfg.InterviewerLoadThreshold))

	if cfg.Silent {
		if err := commit(ctx, captured); err != nil {
			return 1, err
		}
		fmt.Fprintln(out, "Saved interviews.")
		return 0, nil
	}

	fmt.Fprint(out, "Save interviews? (y/n) ")
	reader := bufio.NewReader(in)
	line, _ := reader.ReadString('\n')
	if strings.TrimSpace(line) != "y" {
		fmt.Fprintln(out, "Didn't save interviews")
		return 0, nil
	}

	if err := commit(ctx, captured); err != nil {
		return 1, err
	}
	fmt.Fprintln(out, "Saved interviews.")
	return 0, nil
}

func execute(ctx context.Context, cmd RunScheduleCommand, provider interfaces.LoggerProvider) (outcome, error) {
	reader, err := fixture.Load(cmd.SnapshotPath)
	if err != nil {
		return outcome{}, err
	}
	logging.WithFields(commands.CommandLogger(provider, "schedule"), map[string]any{
		"snapshot_load_id": reader.LoadID.String(),
	}).Debug("schedule.snapshot.loaded")

	applied, err := reader.LoadApplications(ctx)
	if err != nil {
		return outcome{}, bipserrors.WrapInput(err)
	}
	slots, err := reader.LoadAvailableSlots(ctx)
	if err != nil {
		return outcome{}, bipserrors.WrapInput(err)
	}
	busy, err := reader.LoadBusyTimes(ctx)
	if err != nil {
		return outcome{}, bipserrors.WrapInput(err)
	}

	if err := precheck.NoRoomOverlap(slots); err != nil {
		return outcome{}, err
	}

	e := engine.New(applied, slots, busy.Applicant, busy.Interviewer, engine.Tunables{
		Seed:              cmd.Config.Seed,
		TravelTime:        cmd.Config.TravelTime,
		MaxContinuousWork: cmd.Config.MaxContinuousWork,
		BreakLength:       cmd.Config.BreakLength,
	}, engine.WithLogger(provider))
	e.Run()

	recheck, err := fixture.Load(cmd.SnapshotPath)
	if err != nil {
		return outcome{}, err
	}
	recheckApplied, err := recheck.LoadApplications(ctx)
	if err != nil {
		return outcome{}, bipserrors.WrapInput(err)
	}
	recheckBusy, err := recheck.LoadBusyTimes(ctx)
	if err != nil {
		return outcome{}, bipserrors.WrapInput(err)
	}

	validateTunables := validate.Tunables{
		TravelTime:        int64(cmd.Config.TravelTime),
		MaxContinuousWork: int64(cmd.Config.MaxContinuousWork),
		BreakLength:       int64(cmd.Config.BreakLength),
	}
	if err := validate.Validate(e.Interviews(), validate.Input{
		AppliedJobs:     recheckApplied,
		ApplicantBusy:   recheckBusy.Applicant,
		InterviewerBusy: recheckBusy.Interviewer,
	}, validateTunables); err != nil {
		return outcome{}, err
	}

	summary := report.Build(e.Interviews(), applied, cmd.Config.InterviewerLoadThreshold)

	return outcome{
		interviews: e.Interviews(),
		applied:    applied,
		summary:    summary,
	}, nil
}

// commit persists the schedule via a Committer. The fixture reader this
// command loads from is read-only by design (spec SPEC_FULL.md's "developer
// convenience, not a persistence layer" note), so committing here targets
// an in-memory snapshot.Memory seeded with the run's applicants and their
// jobs for the single run's lifetime; a host application wires a real Committer in
// place of this fallback.
func commit(ctx context.Context, o outcome) error {
	mem := snapshot.NewMemory()
	for applicant, jobs := range o.applied {
		for _, job := range jobs {
			mem.AddJob(job)
			mem.AddApplication(domain.Application{ApplicantID: applicant, JobID: job.ID})
		}
	}
	return mem.SaveScheduledInterviews(ctx, o.interviews)
}
