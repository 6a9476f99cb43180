package serial_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/engine/serial"
)

func samplePlan(t *testing.T) *domain.Plan {
	t.Helper()

	root := domain.NewProject("root", "/work")
	app := domain.NewProject("app", "/work/app")
	root.AddChild(app)
	app.Properties["flavor"] = "release"

	build := &domain.Task{
		Name:       domain.NewInternedString("build"),
		Command:    []string{"go", "build", "./..."},
		Inputs:     domain.NewInternedStrings([]string{"main.go", "go.mod"}),
		Enabled:    true,
		WorkingDir: domain.NewInternedString("/work/app"),
	}
	test := &domain.Task{
		Name:      domain.NewInternedString("test"),
		Command:   []string{"go", "test"},
		DependsOn: []*domain.Task{build},
		Enabled:   true,
	}
	test.Environment = map[string]domain.Provider{
		"BUILD_STATE": &domain.TaskStateProvider{Task: build, Consumer: "app:test"},
		"GREETING": &domain.ConcatProvider{Parts: []domain.Provider{
			&domain.ConstProvider{Value: "hello "},
			&domain.EnvProvider{Name: "USER", Default: "nobody"},
		}},
	}
	require.NoError(t, app.AddTask(build))
	require.NoError(t, app.AddTask(test))

	plan := domain.NewPlan(root)
	require.NoError(t, plan.AddProject(app))
	plan.Requested = domain.NewInternedStrings([]string{"test"})
	return plan
}

func TestPlanRegistry_RoundTrip(t *testing.T) {
	t.Parallel()

	reg, err := serial.NewPlanRegistry()
	require.NoError(t, err)

	plan := samplePlan(t)
	plan.Project("app").Task("build").MarkExecuted(true, nil)

	data, err := serial.Marshal(reg, domain.SchemaVersion, plan)
	require.NoError(t, err)

	got, err := serial.Unmarshal(reg, domain.SchemaVersion, data)
	require.NoError(t, err)

	restored, ok := got.(*domain.Plan)
	require.True(t, ok)
	require.Len(t, restored.Projects, 2)

	root := restored.Root
	app := restored.Project("app")
	require.NotNil(t, app)
	assert.Same(t, root, restored.Projects[0])
	assert.Same(t, root, app.Parent)
	assert.Same(t, app, root.Children[0])
	assert.Equal(t, "release", app.Properties["flavor"])

	build := app.Task("build")
	test := app.Task("test")
	require.NotNil(t, build)
	require.NotNil(t, test)
	assert.Same(t, app, build.Project)
	assert.Same(t, build, test.DependsOn[0])
	assert.Equal(t, "app:build", build.Path())
	assert.Equal(t, []string{"main.go", "go.mod"}, domain.Strings(build.Inputs))
	assert.Equal(t, domain.NewInternedString("/work/app"), build.WorkingDir)
	assert.Equal(t, []string{"test"}, domain.Strings(restored.Requested))

	stateProvider, ok := test.Environment["BUILD_STATE"].(*domain.TaskStateProvider)
	require.True(t, ok)
	assert.Same(t, build, stateProvider.Task)

	concat, ok := test.Environment["GREETING"].(*domain.ConcatProvider)
	require.True(t, ok)
	require.Len(t, concat.Parts, 2)
	assert.Equal(t, &domain.EnvProvider{Name: "USER", Default: "nobody"}, concat.Parts[1])

	// Execution state is never persisted.
	assert.Equal(t, domain.StateNotStarted, build.CurrentState())
	assert.False(t, build.DidWork())
}

func TestPlanRegistry_StrategyPerType(t *testing.T) {
	t.Parallel()

	reg, err := serial.NewPlanRegistry()
	require.NoError(t, err)

	strategy, ok := reg.Strategy(reflect.TypeFor[domain.Task]())
	require.True(t, ok)
	assert.Equal(t, serial.StrategyBean, strategy)

	strategy, ok = reg.Strategy(reflect.TypeFor[domain.InternedString]())
	require.True(t, ok)
	assert.Equal(t, serial.StrategyConstructor, strategy)
}

func TestPlanRegistry_ZeroInternedStringStaysZero(t *testing.T) {
	t.Parallel()

	reg, err := serial.NewPlanRegistry()
	require.NoError(t, err)

	data, err := serial.Marshal(reg, domain.SchemaVersion, &domain.Task{Name: domain.NewInternedString("t")})
	require.NoError(t, err)
	got, err := serial.Unmarshal(reg, domain.SchemaVersion, data)
	require.NoError(t, err)

	task := got.(*domain.Task)
	assert.True(t, task.WorkingDir.IsZero())
	assert.Equal(t, "t", task.Name.String())
}
