// Package domain contains the core domain models of the configuration cache: the build plan,
// fingerprint entries, cache keys and problems.
package domain

import (
	"errors"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Plan is the fully configured build: every project, every task and the lazy values they carry.
// It is the root of the object graph that the configuration cache stores and restores.
type Plan struct {
	Root      *Project
	Projects  []*Project
	Requested []InternedString
}

// NewPlan creates a plan rooted at the given project.
func NewPlan(root *Project) *Plan {
	p := &Plan{Root: root}
	if root != nil {
		p.Projects = append(p.Projects, root)
	}
	return p
}

// AddProject registers a project with the plan.
// It returns an error if a project with the same name already exists.
func (p *Plan) AddProject(project *Project) error {
	for _, existing := range p.Projects {
		if existing.Name == project.Name {
			return errors.Join(ErrProjectAlreadyExists, zerr.With(zerr.New("duplicate project "+project.Name), "project", project.Name))
		}
	}
	p.Projects = append(p.Projects, project)
	return nil
}

// Project returns the project with the given name, or nil.
func (p *Plan) Project(name string) *Project {
	for _, project := range p.Projects {
		if project.Name == name {
			return project
		}
	}
	return nil
}

// TaskCount returns the number of tasks across all projects.
func (p *Plan) TaskCount() int {
	n := 0
	for _, project := range p.Projects {
		n += len(project.Tasks)
	}
	return n
}

// Select resolves task selectors into tasks.
// A selector "project:task" names one task; a bare "task" names every task with that name,
// in project order. The result has no duplicates and keeps selector order.
func (p *Plan) Select(selectors []string) ([]*Task, error) {
	var out []*Task
	seen := make(map[*Task]bool)
	add := func(t *Task) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	for _, sel := range selectors {
		projectName, taskName, qualified := strings.Cut(strings.TrimPrefix(sel, ":"), ":")
		if qualified {
			project := p.Project(projectName)
			if project == nil {
				return nil, errors.Join(ErrTaskNotFound, zerr.With(zerr.New("no task matches "+sel), "task", sel))
			}
			t := project.Task(taskName)
			if t == nil {
				return nil, errors.Join(ErrTaskNotFound, zerr.With(zerr.New("no task matches "+sel), "task", sel))
			}
			add(t)
			continue
		}

		found := false
		for _, project := range p.Projects {
			if t := project.Task(projectName); t != nil {
				add(t)
				found = true
			}
		}
		if !found {
			return nil, errors.Join(ErrTaskNotFound, zerr.With(zerr.New("no task matches "+sel), "task", sel))
		}
	}
	return out, nil
}

// ExecutionOrder returns the given targets and all their dependencies in dependency order.
// It returns ErrCycleDetected with the cycle path when dependencies form a cycle.
func (p *Plan) ExecutionOrder(targets []*Task) ([]*Task, error) {
	order := make([]*Task, 0, len(targets))
	visited := make(map[*Task]int) // 0: unvisited, 1: visiting, 2: visited
	var path []*Task

	var visit func(t *Task) error
	visit = func(t *Task) error {
		visited[t] = 1
		path = append(path, t)

		for _, dep := range t.DependsOn {
			switch visited[dep] {
			case 1:
				return buildCycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[t] = 2
		path = path[:len(path)-1]
		order = append(order, t)
		return nil
	}

	for _, t := range targets {
		if visited[t] == 0 {
			if err := visit(t); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []*Task, dep *Task) error {
	start := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-start+1)
	for _, t := range path[start:] {
		parts = append(parts, t.Path())
	}
	parts = append(parts, dep.Path())
	return errors.Join(ErrCycleDetected, zerr.With(zerr.New(strings.Join(parts, " -> ")), "cycle", strings.Join(parts, " -> ")))
}

// Project is one configured project. Children and Parent form the project hierarchy;
// every task points back at its owning project.
type Project struct {
	Name       string
	Dir        string
	Parent     *Project
	Children   []*Project
	Tasks      []*Task
	Properties map[string]string
}

// NewProject creates an empty project.
func NewProject(name, dir string) *Project {
	return &Project{
		Name:       name,
		Dir:        dir,
		Properties: make(map[string]string),
	}
}

// AddChild attaches a sub-project.
func (p *Project) AddChild(child *Project) {
	child.Parent = p
	p.Children = append(p.Children, child)
}

// AddTask adds a task to the project and sets its owner.
// It returns an error if a task with the same name already exists.
func (p *Project) AddTask(t *Task) error {
	if p.Task(t.Name.String()) != nil {
		return errors.Join(ErrTaskAlreadyExists, zerr.With(zerr.New("duplicate task "+p.Name+":"+t.Name.String()), "task_name", p.Name+":"+t.Name.String()))
	}
	t.Project = p
	p.Tasks = append(p.Tasks, t)
	return nil
}

// Task returns the task with the given name, or nil.
func (p *Project) Task(name string) *Task {
	for _, t := range p.Tasks {
		if t.Name.String() == name {
			return t
		}
	}
	return nil
}
