package domain_test

import (
	"errors"
	"strings"
	"testing"

	"go.trai.ch/recall/internal/core/domain"
)

func newTask(name string, deps ...*domain.Task) *domain.Task {
	return &domain.Task{
		Name:      domain.NewInternedString(name),
		DependsOn: deps,
		Enabled:   true,
	}
}

func twoProjectPlan(t *testing.T) (*domain.Plan, map[string]*domain.Task) {
	t.Helper()

	root := domain.NewProject("app", "/work")
	lib := domain.NewProject("lib", "/work/lib")
	root.AddChild(lib)

	plan := domain.NewPlan(root)
	if err := plan.AddProject(lib); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	libCompile := newTask("compile")
	appCompile := newTask("compile", libCompile)
	appTest := newTask("test", appCompile)
	if err := lib.AddTask(libCompile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, task := range []*domain.Task{appCompile, appTest} {
		if err := root.AddTask(task); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	return plan, map[string]*domain.Task{
		"lib:compile": libCompile,
		"app:compile": appCompile,
		"app:test":    appTest,
	}
}

func paths(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Path())
	}
	return out
}

func TestPlan_AddProject_Duplicate(t *testing.T) {
	plan := domain.NewPlan(domain.NewProject("app", "/work"))

	err := plan.AddProject(domain.NewProject("app", "/other"))
	if err == nil {
		t.Fatal("expected error when adding duplicate project, got nil")
	}
	if !errors.Is(err, domain.ErrProjectAlreadyExists) {
		t.Errorf("expected %q, got %q", domain.ErrProjectAlreadyExists, err)
	}
}

func TestProject_AddTask_Duplicate(t *testing.T) {
	project := domain.NewProject("app", "/work")
	if err := project.AddTask(newTask("build")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := project.AddTask(newTask("build")); err == nil {
		t.Error("expected error when adding duplicate task, got nil")
	}
	if got := project.Task("build").Project; got != project {
		t.Errorf("expected task owner to be set")
	}
}

func TestPlan_Select(t *testing.T) {
	plan, _ := twoProjectPlan(t)

	tests := []struct {
		name      string
		selectors []string
		want      []string
		wantErr   bool
	}{
		{name: "qualified", selectors: []string{"lib:compile"}, want: []string{"lib:compile"}},
		{name: "leading colon", selectors: []string{":app:test"}, want: []string{"app:test"}},
		{name: "bare name selects every project", selectors: []string{"compile"}, want: []string{"app:compile", "lib:compile"}},
		{name: "no duplicates", selectors: []string{"app:compile", "compile"}, want: []string{"app:compile", "lib:compile"}},
		{name: "unknown task", selectors: []string{"deploy"}, wantErr: true},
		{name: "unknown project", selectors: []string{"web:compile"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := plan.Select(tt.selectors)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrTaskNotFound) {
					t.Fatalf("expected %q, got %v", domain.ErrTaskNotFound, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(paths(got), ",") != strings.Join(tt.want, ",") {
				t.Errorf("expected %v, got %v", tt.want, paths(got))
			}
		})
	}
}

func TestPlan_ExecutionOrder(t *testing.T) {
	plan, tasks := twoProjectPlan(t)

	order, err := plan.ExecutionOrder([]*domain.Task{tasks["app:test"]})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"lib:compile", "app:compile", "app:test"}
	if strings.Join(paths(order), ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, paths(order))
	}
}

func TestPlan_ExecutionOrder_Cycle(t *testing.T) {
	project := domain.NewProject("app", "/work")
	a := newTask("a")
	b := newTask("b", a)
	a.DependsOn = []*domain.Task{b}
	_ = project.AddTask(a)
	_ = project.AddTask(b)
	plan := domain.NewPlan(project)

	_, err := plan.ExecutionOrder([]*domain.Task{a})
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Errorf("expected %q, got %q", domain.ErrCycleDetected, err)
	}
}

func TestPlan_TaskCount(t *testing.T) {
	plan, _ := twoProjectPlan(t)
	if got := plan.TaskCount(); got != 3 {
		t.Errorf("expected 3 tasks, got %d", got)
	}
}
