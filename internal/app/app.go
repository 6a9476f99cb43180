// Package app implements the host of the configuration cache. An invocation either reuses a
// stored build plan whose fingerprint still holds, or configures the build from its scripts and
// stores the result; the plan is then handed to the scheduler.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/core/ports"
	"go.trai.ch/recall/internal/engine/barrier"
	"go.trai.ch/recall/internal/engine/fingerprint"
	"go.trai.ch/recall/internal/engine/scheduler"
	"go.trai.ch/recall/internal/engine/serial"
)

// Stage is a state of the invocation state machine.
type Stage string

// Stages in protocol order. A run ends in StageCompleted or StageFailed.
const (
	StageInit      Stage = "INIT"
	StageLookup    Stage = "LOOKUP"
	StageLoad      Stage = "LOAD"
	StageMiss      Stage = "MISS"
	StageStore     Stage = "STORE"
	StageExecute   Stage = "EXECUTE"
	StageCompleted Stage = "COMPLETED"
	StageFailed    Stage = "FAILED"
)

// Outcome tells how the plan of an invocation was obtained.
type Outcome string

const (
	// OutcomeHit means the stored plan was reused.
	OutcomeHit Outcome = "hit"
	// OutcomeMiss means the build was configured and the plan stored.
	OutcomeMiss Outcome = "miss"
	// OutcomeDisabled means the cache was not consulted.
	OutcomeDisabled Outcome = "disabled"
)

// Result describes a finished invocation.
type Result struct {
	// Stage is the terminal stage, StageCompleted or StageFailed.
	Stage Stage
	// Trace lists every stage entered, in order.
	Trace []Stage
	// Outcome is empty when the invocation failed before the cache was consulted.
	Outcome Outcome
	// Reason explains a miss, e.g. "file 'recall.yaml' has changed".
	Reason string
	// Problems are the replayed problems of a hit followed by those reported by this invocation,
	// including access violations observed while executing.
	Problems []domain.Problem
	// Key is the cache key of the invocation.
	Key domain.CacheKey
}

func (r *Result) enter(s Stage) {
	r.Stage = s
	r.Trace = append(r.Trace, s)
}

// App represents the main application logic.
type App struct {
	configurer   ports.Configurer
	scheduler    *scheduler.Scheduler
	repositories ports.CacheRepositories
	environments ports.InputEnvironmentFactory
	telemetry    ports.Telemetry
	logger       ports.Logger
	registry     *serial.Registry
	now          func() time.Time
}

// New creates a new App instance.
func New(
	configurer ports.Configurer,
	sched *scheduler.Scheduler,
	repositories ports.CacheRepositories,
	environments ports.InputEnvironmentFactory,
	telemetry ports.Telemetry,
	log ports.Logger,
) (*App, error) {
	registry, err := serial.NewPlanRegistry()
	if err != nil {
		return nil, err
	}
	return &App{
		configurer:   configurer,
		scheduler:    sched,
		repositories: repositories,
		environments: environments,
		telemetry:    telemetry,
		logger:       log,
		registry:     registry,
		now:          time.Now,
	}, nil
}

// invocation is the state of one Run. The barrier lives here, so concurrent runs never share a phase.
type invocation struct {
	opts     RunOptions
	targets  []string
	key      domain.CacheKey
	env      ports.InputEnvironment
	repo     ports.CacheRepository
	barrier  *barrier.Barrier
	guard    *barrier.Guard
	problems *problemCollector
	replayed []domain.Problem
	result   *Result
}

// configured is the output of a configuration run.
type configured struct {
	plan     *domain.Plan
	tracker  *fingerprint.Tracker
	recorder *fingerprint.Recorder
}

// Run configures or restores the build plan for targets and executes them.
// The returned Result is never nil.
func (a *App) Run(ctx context.Context, targets []string, opts RunOptions) (*Result, error) {
	res := &Result{}
	res.enter(StageInit)

	inv, err := a.prepare(targets, opts, res)
	if err != nil {
		return fail(res, err)
	}

	plan, err := a.obtainPlan(ctx, inv)
	if err != nil {
		return fail(res, err)
	}

	err = a.execute(ctx, inv, plan)
	inv.snapshotProblems()
	if err != nil {
		return fail(res, err)
	}

	res.enter(StageCompleted)
	return res, nil
}

func fail(res *Result, err error) (*Result, error) {
	res.enter(StageFailed)
	return res, err
}

func (a *App) prepare(targets []string, opts RunOptions, res *Result) (*invocation, error) {
	if len(targets) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(opts.RootDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve build root"), "path", opts.RootDir)
	}
	opts.RootDir = root

	env, err := a.environments.Environment(root, opts.Properties)
	if err != nil {
		return nil, err
	}

	policy := barrier.SelectPolicy(!opts.NoCache, opts.TaskAccess)
	inv := &invocation{
		opts:     opts,
		targets:  targets,
		key:      cacheKey(root, targets, opts, policy),
		env:      env,
		barrier:  barrier.New(),
		problems: newProblemCollector(a.logger),
		result:   res,
	}
	res.Key = inv.key

	broadcaster := barrier.NewBroadcaster()
	broadcaster.Subscribe(func(v barrier.Violation) {
		severity := domain.SeverityWarning
		if opts.Mode == domain.ModeStrict {
			severity = domain.SeverityError
		}
		inv.problems.Report(domain.Problem{
			Kind:     domain.ProblemAccessViolation,
			Severity: severity,
			Message:  v.Description(),
			Location: v.Accessor,
		})
	})
	inv.guard = barrier.NewGuard(barrier.NewChecker(policy, inv.barrier, broadcaster), opts.Mode)

	if !opts.NoCache {
		inv.repo, err = a.openRepository(root)
		if err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// cacheKey derives the key from the root, the targets and every option that changes what
// configuration produces. Startup properties are not part of it; reads of them are fingerprinted.
func cacheKey(root string, targets []string, opts RunOptions, policy domain.AccessPolicy) domain.CacheKey {
	return domain.NewCacheKey(domain.CacheKeyParams{
		RootDir: root,
		Tasks:   targets,
		StartupParams: map[string]string{
			"mode":        string(opts.Mode),
			"task_access": string(policy),
			"mod_time":    fmt.Sprint(opts.TrustModTime),
		},
	})
}

func (a *App) openRepository(root string) (ports.CacheRepository, error) {
	return a.repositories.Repository(filepath.Join(root, domain.DefaultCachePath()))
}

func (a *App) obtainPlan(ctx context.Context, inv *invocation) (*domain.Plan, error) {
	res := inv.result

	if inv.opts.NoCache {
		res.Outcome = OutcomeDisabled
		a.logger.Info("configuration cache is disabled, calculating task graph")
		c, err := a.configure(ctx, inv)
		inv.snapshotProblems()
		if err != nil {
			return nil, err
		}
		return c.plan, nil
	}

	res.enter(StageLookup)
	plan, reason := a.lookup(ctx, inv)
	if plan != nil {
		res.Outcome = OutcomeHit
		a.logger.Info("reusing configuration cache")
		return plan, nil
	}

	res.Outcome = OutcomeMiss
	res.Reason = reason
	a.logger.Info("calculating task graph as " + reason)

	res.enter(StageMiss)
	c, err := a.configure(ctx, inv)
	if err != nil {
		inv.snapshotProblems()
		return nil, err
	}

	res.enter(StageStore)
	err = a.store(ctx, inv, c)
	inv.snapshotProblems()
	if err != nil {
		return nil, err
	}
	return c.plan, nil
}

// lookup returns the stored plan when its fingerprint still holds.
// Otherwise it returns the reason the entry cannot be reused; read failures are never fatal.
func (a *App) lookup(ctx context.Context, inv *invocation) (*domain.Plan, string) {
	if !inv.repo.Exists(inv.key) {
		return nil, "no configuration cache is available for tasks: " + strings.Join(inv.targets, " ")
	}

	ctx, v := a.telemetry.Record(ctx, domain.VertexLookup)
	defer v.Complete(nil)

	entry, err := inv.repo.Open(inv.key)
	if err != nil {
		return nil, a.unreadable(err)
	}
	defer func() { _ = entry.Close() }()

	data, err := entry.ReadFingerprint()
	if err != nil {
		return nil, a.unreadable(err)
	}
	fp, err := fingerprint.Decode(data)
	if err != nil {
		return nil, a.unreadable(err)
	}

	verdict := fingerprint.NewController(inv.env).Check(ctx, fp)
	if !verdict.Valid {
		return nil, "configuration cache cannot be reused because " + verdict.Reason
	}

	inv.result.enter(StageLoad)
	plan, err := a.load(ctx, entry)
	if err != nil {
		return nil, a.unreadable(err)
	}
	v.Cached()

	a.replayProblems(inv)
	return plan, ""
}

func (a *App) unreadable(err error) string {
	a.logger.Warn("configuration cache entry is unreadable: " + err.Error())
	return "configuration cache cannot be reused because the stored entry is unreadable"
}

func (a *App) load(ctx context.Context, entry ports.CacheEntry) (*domain.Plan, error) {
	_, v := a.telemetry.Record(ctx, domain.VertexLoad)

	plan, err := func() (*domain.Plan, error) {
		data, err := entry.ReadModel()
		if err != nil {
			return nil, err
		}
		root, err := serial.Unmarshal(a.registry, domain.SchemaVersion, data)
		if err != nil {
			return nil, errors.Join(domain.ErrCacheEntryUnreadable, err)
		}
		plan, ok := root.(*domain.Plan)
		if !ok {
			return nil, errors.Join(domain.ErrCacheEntryUnreadable,
				zerr.With(zerr.New("unexpected root object"), "root_type", fmt.Sprintf("%T", root)))
		}
		return plan, nil
	}()

	v.Complete(err)
	return plan, err
}

func (a *App) replayProblems(inv *invocation) {
	report, err := inv.repo.ReadProblems(inv.key)
	if err != nil {
		a.logger.Warn("stored configuration problems are unreadable: " + err.Error())
		return
	}
	if report == nil {
		return
	}
	for _, p := range report.Problems {
		a.logger.Warn(describeProblem(p))
	}
	inv.replayed = report.Problems
	inv.snapshotProblems()
}

// snapshotProblems publishes the replayed problems followed by those reported so far.
func (inv *invocation) snapshotProblems() {
	inv.result.Problems = append(slices.Clone(inv.replayed), inv.problems.Problems()...)
}

// configure runs the configuration engine with every input read recorded.
// Strict mode violations and unknown targets fail configuration, so nothing is stored for them.
func (a *App) configure(ctx context.Context, inv *invocation) (*configured, error) {
	ctx, v := a.telemetry.Record(ctx, domain.VertexConfigure)

	rec := fingerprint.NewRecorder()
	tracker := fingerprint.NewTracker(inv.env, rec, inv.opts.modTimePolicy())

	plan, err := a.configurer.Configure(ctx, ports.ConfigureRequest{
		RootDir:  inv.opts.RootDir,
		Inputs:   tracker,
		State:    inv.guard,
		Problems: inv.problems,
	})
	if err == nil {
		err = inv.problems.violationErr()
	}
	if err == nil {
		_, err = selectTasks(plan, inv.targets)
	}
	v.Complete(err)

	if err != nil {
		return nil, errors.Join(domain.ErrConfigurationFailed, err)
	}

	plan.Requested = domain.NewInternedStrings(inv.targets)
	return &configured{plan: plan, tracker: tracker, recorder: rec}, nil
}

func (a *App) store(ctx context.Context, inv *invocation, c *configured) error {
	_, v := a.telemetry.Record(ctx, domain.VertexStore)
	err := a.writeEntry(inv, c)
	v.Complete(err)
	return err
}

// writeEntry commits the plan, its fingerprint and the problems report as one entry.
// A plan that cannot be serialized is reported and not stored; the build still runs.
// Repository failures are fatal and leave no partial entry.
func (a *App) writeEntry(inv *invocation, c *configured) (err error) {
	var model []byte
	err = c.tracker.WithoutTracking(func() error {
		var merr error
		model, merr = serial.Marshal(a.registry, domain.SchemaVersion, c.plan)
		return merr
	})
	var fp []byte
	if err == nil {
		fp, err = fingerprint.Encode(c.recorder.Fingerprint())
	}
	if err != nil {
		inv.problems.Report(domain.Problem{
			Kind:     domain.ProblemSerialization,
			Severity: domain.SeverityWarning,
			Message:  errors.Join(domain.ErrSerializationFailed, err).Error(),
		})
		a.logger.Warn("configuration cache entry discarded")
		return nil
	}

	w, err := inv.repo.BeginWrite(inv.key)
	if err != nil {
		return repositoryErr(err)
	}
	defer func() {
		if err != nil {
			_ = w.Discard()
		}
	}()

	if err = w.WriteFingerprint(fp); err != nil {
		return repositoryErr(err)
	}
	if err = w.WriteModel(model); err != nil {
		return repositoryErr(err)
	}
	report := &domain.ProblemsReport{
		InvocationID: uuid.NewString(),
		CacheKey:     inv.key.String(),
		CreatedAt:    a.now().UTC(),
		Problems:     inv.problems.Problems(),
	}
	if err = w.WriteProblems(report); err != nil {
		return repositoryErr(err)
	}
	if err = w.Commit(); err != nil {
		return repositoryErr(err)
	}

	a.logger.Info("configuration cache entry stored")
	return nil
}

func repositoryErr(err error) error {
	if errors.Is(err, domain.ErrRepositoryIO) {
		return err
	}
	return errors.Join(domain.ErrRepositoryIO, err)
}

// execute crosses the barrier and runs the selected tasks. The barrier is crossed before any
// task is dispatched, so every worker observes PhaseExecuting.
func (a *App) execute(ctx context.Context, inv *invocation, plan *domain.Plan) error {
	inv.result.enter(StageExecute)

	if err := inv.barrier.Cross(); err != nil {
		return err
	}

	tasks, err := selectTasks(plan, inv.targets)
	if err != nil {
		return err
	}

	ctx, v := a.telemetry.Record(ctx, domain.VertexExecute)
	err = a.scheduler.Run(ctx, tasks, executionContext{Guard: inv.guard, env: inv.env}, inv.opts.Parallelism)
	v.Complete(err)

	if err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return nil
}

// selectTasks resolves targets into the tasks to execute, in dependency order.
// The target "all" selects every task of every project.
func selectTasks(plan *domain.Plan, targets []string) ([]*domain.Task, error) {
	var selected []*domain.Task
	if slices.Contains(targets, "all") {
		for _, project := range plan.Projects {
			selected = append(selected, project.Tasks...)
		}
	} else {
		var err error
		if selected, err = plan.Select(targets); err != nil {
			return nil, err
		}
	}
	return plan.ExecutionOrder(selected)
}

// executionContext resolves providers during execution.
type executionContext struct {
	*barrier.Guard
	env ports.InputEnvironment
}

func (c executionContext) LookupEnv(name string) (string, bool) {
	return c.env.LookupEnv(name)
}
