// Package config implements the configuration engine: it evaluates recall.yaml build scripts
// into a build plan, reading every input through the tracker it is given.
package config

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"maps"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/core/ports"
)

var validProjectNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+(/[a-zA-Z0-9_.-]+)*$`)

// Engine implements ports.Configurer for YAML build scripts.
type Engine struct {
	Logger ports.Logger
}

// NewEngine creates a new Engine with the given logger.
func NewEngine(logger ports.Logger) *Engine {
	return &Engine{Logger: logger}
}

// pending is a project whose script is loaded but whose tasks are not resolved yet.
type pending struct {
	project *domain.Project
	file    *Buildfile
	scope   *scope
}

// run is the state of a single Configure call.
type run struct {
	engine   *Engine
	req      ports.ConfigureRequest
	plan     *domain.Plan
	projects []*pending
}

// Configure implements ports.Configurer.
func (e *Engine) Configure(ctx context.Context, req ports.ConfigureRequest) (*domain.Plan, error) {
	r := &run{engine: e, req: req}

	if err := r.loadProject(ctx, ".", nil); err != nil {
		return nil, err
	}
	if err := r.createTasks(ctx); err != nil {
		return nil, err
	}
	if err := r.resolveTasks(ctx); err != nil {
		return nil, err
	}
	return r.plan, nil
}

// loadProject reads the script in relDir, then the scripts of its includes, depth first.
func (r *run) loadProject(ctx context.Context, relDir string, parent *domain.Project) error {
	scriptPath := path.Join(relDir, domain.ScriptFileName)
	data, err := r.req.Inputs.ReadFile(ctx, scriptPath)
	if err != nil {
		if parent == nil && errors.Is(err, iofs.ErrNotExist) {
			return errors.Join(domain.ErrConfigNotFound,
				zerr.With(zerr.Wrap(err, "no build script in root"), "dir", r.req.RootDir))
		}
		return errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", scriptPath))
	}

	var file Buildfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", scriptPath))
	}

	name, err := projectName(file.Project, relDir, r.req.RootDir)
	if err != nil {
		return zerr.With(err, "path", scriptPath)
	}

	project := domain.NewProject(name, filepath.Join(r.req.RootDir, filepath.FromSlash(relDir)))
	sc := &scope{inputs: r.req.Inputs, relDir: relDir}

	if parent == nil {
		r.plan = domain.NewPlan(project)
	} else {
		if err := r.plan.AddProject(project); err != nil {
			return zerr.With(err, "path", scriptPath)
		}
		parent.AddChild(project)
		maps.Copy(project.Properties, parent.Properties)
	}

	for _, key := range slices.Sorted(maps.Keys(file.Properties)) {
		value, err := sc.expand(ctx, file.Properties[key])
		if err != nil {
			return zerr.With(zerr.With(err, "project", name), "property", key)
		}
		project.Properties[key] = value
	}

	r.projects = append(r.projects, &pending{project: project, file: &file, scope: sc})

	includes, err := r.resolveIncludes(ctx, sc, file.Include)
	if err != nil {
		return zerr.With(err, "project", name)
	}
	for _, dir := range includes {
		if err := r.loadProject(ctx, dir, project); err != nil {
			return err
		}
	}
	return nil
}

// resolveIncludes expands include patterns into root-relative directories holding a build script.
// The set of matches is a value source so that creating a new sub-project invalidates the cache.
func (r *run) resolveIncludes(ctx context.Context, sc *scope, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	params := make([]string, len(patterns))
	for i, p := range patterns {
		params[i] = sc.rel(p)
	}
	listing, err := r.req.Inputs.Obtain(ctx, domain.ValueSourceDescriptor{Type: domain.SourceGlob, Params: params})
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, dir := range strings.Split(listing, "\n") {
		if dir == "" || dir == sc.relDir {
			continue
		}
		script := path.Join(dir, domain.ScriptFileName)
		if !r.req.Inputs.FileExists(script) {
			msg := fmt.Sprintf("%s missing in included directory %s, skipping", domain.ScriptFileName, dir)
			r.engine.Logger.Warn(msg)
			r.report(domain.Problem{
				Kind:     domain.ProblemInput,
				Severity: domain.SeverityWarning,
				Message:  msg,
				Location: path.Join(sc.relDir, domain.ScriptFileName),
			})
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

func (r *run) report(p domain.Problem) {
	if r.req.Problems != nil {
		r.req.Problems.Report(p)
	}
}

// createTasks creates every task of every project so that dependencies and state
// references can be resolved in any order.
func (r *run) createTasks(ctx context.Context) error {
	for _, pp := range r.projects {
		for _, name := range slices.Sorted(maps.Keys(pp.file.Tasks)) {
			task, err := r.buildTask(ctx, pp, name, pp.file.Tasks[name])
			if err != nil {
				return zerr.With(err, "task", pp.project.Name+":"+name)
			}
			if err := pp.project.AddTask(task); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *run) buildTask(ctx context.Context, pp *pending, name string, dto *TaskDTO) (*domain.Task, error) {
	if err := validateTaskName(name); err != nil {
		return nil, err
	}
	if dto == nil {
		dto = &TaskDTO{}
	}

	cmd, err := pp.scope.expandAll(ctx, dto.Cmd)
	if err != nil {
		return nil, err
	}
	inputs, err := pp.scope.expandAll(ctx, dto.Input)
	if err != nil {
		return nil, err
	}
	targets, err := pp.scope.expandAll(ctx, dto.Target)
	if err != nil {
		return nil, err
	}
	workingDir, err := pp.scope.expand(ctx, dto.WorkingDir)
	if err != nil {
		return nil, err
	}

	return &domain.Task{
		Name:       domain.NewInternedString(name),
		Command:    cmd,
		Inputs:     canonicalizePaths(pp.scope.relDir, inputs),
		Outputs:    canonicalizePaths(pp.scope.relDir, targets),
		Enabled:    true,
		WorkingDir: resolveTaskWorkingDir(pp.project.Dir, workingDir),
	}, nil
}

// resolveTasks links dependencies, builds environment providers and evaluates onlyIf.
func (r *run) resolveTasks(ctx context.Context) error {
	for _, pp := range r.projects {
		for _, task := range pp.project.Tasks {
			dto := pp.file.Tasks[task.Name.String()]
			if dto == nil {
				continue
			}
			if err := r.resolveTask(ctx, pp, task, dto); err != nil {
				return zerr.With(err, "task", task.Path())
			}
		}
	}
	return nil
}

func (r *run) resolveTask(ctx context.Context, pp *pending, task *domain.Task, dto *TaskDTO) error {
	for _, dep := range dto.DependsOn {
		target := r.lookupTask(pp.project, dep)
		if target == nil {
			return errors.Join(domain.ErrMissingDependency, zerr.With(zerr.New("unknown dependency "+dep), "missing_dependency", dep))
		}
		task.DependsOn = append(task.DependsOn, target)
	}

	if len(dto.Env) > 0 {
		task.Environment = make(map[string]domain.Provider, len(dto.Env))
		for _, key := range slices.Sorted(maps.Keys(dto.Env)) {
			provider, err := r.provider(ctx, pp, task, key, dto.Env[key])
			if err != nil {
				return zerr.With(err, "env", key)
			}
			task.Environment[key] = provider
		}
	}

	if dto.OnlyIf != "" {
		enabled, err := r.onlyIf(ctx, pp, task, dto.OnlyIf)
		if err != nil {
			return err
		}
		task.Enabled = enabled
	}
	return nil
}

// provider turns an env value into a lazy provider. ${env:...} and ${state:...} are resolved
// when the task runs; the remaining placeholders are configuration inputs.
func (r *run) provider(ctx context.Context, pp *pending, task *domain.Task, key, value string) (domain.Provider, error) {
	segments, err := parseTemplate(value)
	if err != nil {
		return nil, err
	}

	parts := make([]domain.Provider, 0, len(segments))
	for _, seg := range segments {
		switch {
		case !seg.isPlaceholder():
			parts = append(parts, &domain.ConstProvider{Value: seg.literal})
		case seg.kind == kindEnv:
			parts = append(parts, &domain.EnvProvider{Name: seg.arg})
		case seg.kind == kindState:
			target := r.lookupTask(pp.project, seg.arg)
			if target == nil {
				return nil, errors.Join(domain.ErrTaskNotFound, zerr.With(zerr.New("no task matches "+seg.arg), "task", seg.arg))
			}
			parts = append(parts, &domain.TaskStateProvider{
				Task:     target,
				Consumer: fmt.Sprintf("task '%s' env %s", task.Path(), key),
			})
		default:
			v, err := pp.scope.eval(ctx, seg)
			if err != nil {
				return nil, err
			}
			parts = append(parts, &domain.ConstProvider{Value: v})
		}
	}

	switch len(parts) {
	case 0:
		return &domain.ConstProvider{}, nil
	case 1:
		return parts[0], nil
	default:
		return &domain.ConcatProvider{Parts: parts}, nil
	}
}

// onlyIf evaluates the condition while configuring. A ${state:...} reference reads execution
// state before execution started: the state reader decides whether that is tolerated.
func (r *run) onlyIf(ctx context.Context, pp *pending, task *domain.Task, expr string) (bool, error) {
	segments, err := parseTemplate(expr)
	if err != nil {
		return false, err
	}

	var b strings.Builder
	for _, seg := range segments {
		switch {
		case !seg.isPlaceholder():
			b.WriteString(seg.literal)
		case seg.kind == kindState:
			target := r.lookupTask(pp.project, seg.arg)
			if target == nil {
				return false, errors.Join(domain.ErrTaskNotFound, zerr.With(zerr.New("no task matches "+seg.arg), "task", seg.arg))
			}
			state, err := r.req.State.ReadState(target, fmt.Sprintf("task '%s' onlyIf", task.Path()))
			if err != nil {
				return false, err
			}
			b.WriteString(state.String())
		default:
			v, err := pp.scope.eval(ctx, seg)
			if err != nil {
				return false, err
			}
			b.WriteString(v)
		}
	}
	return evalCondition(b.String())
}

// lookupTask resolves "task" in the given project, "project:task" anywhere and ":task"
// in the root project.
func (r *run) lookupTask(from *domain.Project, ref string) *domain.Task {
	projectName, taskName, qualified := strings.Cut(ref, ":")
	if !qualified {
		return from.Task(ref)
	}
	project := r.plan.Root
	if projectName != "" {
		project = r.plan.Project(projectName)
	}
	if project == nil {
		return nil
	}
	return project.Task(taskName)
}

func projectName(declared, relDir, rootDir string) (string, error) {
	name := declared
	if name == "" {
		name = relDir
		if relDir == "." {
			name = filepath.Base(rootDir)
		}
	}
	if !validProjectNameRegex.MatchString(name) {
		return "", errors.Join(domain.ErrInvalidProjectName, zerr.With(zerr.New("project name "+name+" is not allowed"), "project_name", name))
	}
	return name, nil
}

func validateTaskName(name string) error {
	if name == "all" {
		return errors.Join(domain.ErrReservedTaskName, zerr.With(zerr.New("task name "+name+" is not allowed"), "task_name", name))
	}
	if name == "" || strings.Contains(name, ":") {
		return errors.Join(domain.ErrInvalidTaskName, zerr.With(zerr.New("task name "+name+" is not allowed"), "task_name", name))
	}
	return nil
}

// canonicalizePaths rebases project-relative paths onto the build root, then sorts and
// de-duplicates them.
func canonicalizePaths(relDir string, paths []string) []domain.InternedString {
	if len(paths) == 0 {
		return nil
	}
	rebased := make([]string, len(paths))
	for i, p := range paths {
		rebased[i] = path.Join(relDir, filepath.ToSlash(p))
	}
	slices.Sort(rebased)
	return domain.NewInternedStrings(slices.Compact(rebased))
}

func resolveTaskWorkingDir(projectDir, workingDir string) domain.InternedString {
	if workingDir == "" {
		return domain.InternedString{}
	}
	if filepath.IsAbs(workingDir) {
		return domain.NewInternedString(filepath.Clean(workingDir))
	}
	return domain.NewInternedString(filepath.Join(projectDir, workingDir))
}
