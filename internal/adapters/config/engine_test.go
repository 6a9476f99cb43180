package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/recall/internal/adapters/config"
	"go.trai.ch/recall/internal/adapters/env"
	"go.trai.ch/recall/internal/adapters/fs"
	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/core/ports"
	"go.trai.ch/recall/internal/core/ports/mocks"
	"go.trai.ch/recall/internal/engine/barrier"
	"go.trai.ch/recall/internal/engine/fingerprint"
)

type problems []domain.Problem

func (p *problems) Report(problem domain.Problem) { *p = append(*p, problem) }

type result struct {
	plan        *domain.Plan
	err         error
	fingerprint *domain.Fingerprint
	violations  []barrier.Violation
	problems    problems
}

type options struct {
	mode    domain.EnforcementMode
	props   map[string]string
	environ []string
}

func configure(t *testing.T, root string, opts options) result {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	if opts.mode == "" {
		opts.mode = domain.ModeAdvisory
	}
	if opts.environ == nil {
		opts.environ = []string{"PATH=" + os.Getenv("PATH")}
	}

	environment := env.New(root, fs.NewHasher(fs.NewWalker()), fs.NewResolver(), opts.props, env.WithEnviron(opts.environ))
	rec := fingerprint.NewRecorder()
	tracker := fingerprint.NewTracker(environment, rec, domain.PolicyContent)

	var res result
	broadcast := barrier.NewBroadcaster()
	broadcast.Subscribe(func(v barrier.Violation) { res.violations = append(res.violations, v) })
	guard := barrier.NewGuard(barrier.NewChecker(domain.AccessBarrierBased, barrier.New(), broadcast), opts.mode)

	res.plan, res.err = config.NewEngine(log).Configure(t.Context(), ports.ConfigureRequest{
		RootDir:  root,
		Inputs:   tracker,
		State:    guard,
		Problems: &res.problems,
	})
	res.fingerprint = rec.Fingerprint()
	return res
}

func writeScript(t *testing.T, dir, content string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, domain.ScriptFileName), content)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func described(fp *domain.Fingerprint) []string {
	out := make([]string, 0, fp.Len())
	for _, e := range fp.Entries {
		out = append(out, e.Describe())
	}
	return out
}

func TestConfigure_SingleProject(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, `
project: app
tasks:
  compile:
    cmd: ["go", "build", "./..."]
    input: ["src/b.go", "src/a.go", "src/a.go"]
    target: ["bin/app"]
    workingDir: src
  test:
    cmd: ["go", "test"]
    dependsOn: [compile]
`)

	res := configure(t, root, options{})
	require.NoError(t, res.err)

	plan := res.plan
	require.NotNil(t, plan.Root)
	assert.Equal(t, "app", plan.Root.Name)
	assert.Equal(t, root, plan.Root.Dir)
	require.Len(t, plan.Root.Tasks, 2)

	compile := plan.Root.Task("compile")
	require.NotNil(t, compile)
	assert.Equal(t, "app:compile", compile.Path())
	assert.Same(t, plan.Root, compile.Project)
	assert.Equal(t, []string{"go", "build", "./..."}, compile.Command)
	assert.Equal(t, []string{"src/a.go", "src/b.go"}, domain.Strings(compile.Inputs))
	assert.Equal(t, []string{"bin/app"}, domain.Strings(compile.Outputs))
	assert.Equal(t, filepath.Join(root, "src"), compile.WorkingDir.String())
	assert.True(t, compile.Enabled)

	test := plan.Root.Task("test")
	require.Len(t, test.DependsOn, 1)
	assert.Same(t, compile, test.DependsOn[0])
	assert.True(t, test.WorkingDir.IsZero())

	assert.Equal(t, []string{"file 'recall.yaml'"}, described(res.fingerprint))
}

func TestConfigure_PlaceholdersAreRecorded(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "VERSION"), "1.4.2\n")
	writeScript(t, root, `
project: app
properties:
  version: ${file:VERSION}
tasks:
  release:
    cmd:
      - "publish"
      - "--channel=${prop:channel}"
      - "--ci=${env:CI}"
      - "--signed=${exists:keys/release.asc}"
      - "${exec:echo hello}"
      - "${envPrefix:APP_}"
`)

	res := configure(t, root, options{
		props:   map[string]string{"channel": "beta"},
		environ: []string{"PATH=" + os.Getenv("PATH"), "CI=true", "APP_MODE=fast"},
	})
	require.NoError(t, res.err)

	assert.Equal(t, "1.4.2", res.plan.Root.Properties["version"])
	assert.Equal(t, []string{
		"publish", "--channel=beta", "--ci=true", "--signed=false", "hello", "APP_MODE=fast",
	}, res.plan.Root.Task("release").Command)

	assert.Equal(t, []string{
		"file 'recall.yaml'",
		"file 'VERSION'",
		"system property 'channel'",
		"environment variable 'CI'",
		"existence of file 'keys/release.asc'",
		"value from source 'exec:echo hello'",
		"value from source 'envPrefix:APP_'",
	}, described(res.fingerprint))
}

func TestConfigure_Includes(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, `
project: root
include: ["libs/*"]
properties:
  org: acme
tasks:
  setup:
    cmd: ["true"]
`)
	writeScript(t, filepath.Join(root, "libs", "core"), `
tasks:
  build:
    cmd: ["make"]
    input: ["core.c"]
    dependsOn: [":setup"]
`)
	writeScript(t, filepath.Join(root, "libs", "net"), `
project: net
tasks:
  build:
    cmd: ["make"]
    dependsOn: ["libs/core:build"]
`)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "libs", "docs"), domain.DirPerm))

	res := configure(t, root, options{})
	require.NoError(t, res.err)

	plan := res.plan
	require.Len(t, plan.Projects, 3)
	core := plan.Project("libs/core")
	net := plan.Project("net")
	require.NotNil(t, core)
	require.NotNil(t, net)

	assert.Same(t, plan.Root, core.Parent)
	assert.Equal(t, []*domain.Project{core, net}, plan.Root.Children)
	assert.Equal(t, "acme", core.Properties["org"])
	assert.Equal(t, filepath.Join(root, "libs", "core"), core.Dir)
	assert.Equal(t, []string{"libs/core/core.c"}, domain.Strings(core.Task("build").Inputs))

	assert.Same(t, plan.Root.Task("setup"), core.Task("build").DependsOn[0])
	assert.Same(t, core.Task("build"), net.Task("build").DependsOn[0])

	require.Len(t, res.problems, 1)
	assert.Equal(t, domain.ProblemInput, res.problems[0].Kind)
	assert.Contains(t, res.problems[0].Message, "libs/docs")

	assert.Contains(t, described(res.fingerprint), "value from source 'glob:libs/*'")
	assert.Contains(t, described(res.fingerprint), "existence of file 'libs/docs/recall.yaml'")
	assert.Contains(t, described(res.fingerprint), "file 'libs/net/recall.yaml'")
}

func TestConfigure_EnvironmentProviders(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, `
project: app
tasks:
  compile:
    cmd: ["make"]
  pkg:
    cmd: ["tar"]
    dependsOn: [compile]
    env:
      LEVEL: "3"
      HOME_DIR: ${env:HOME}
      COMPILE_STATE: "compile is ${state:compile}"
`)

	res := configure(t, root, options{})
	require.NoError(t, res.err)

	pkg := res.plan.Root.Task("pkg")
	require.Len(t, pkg.Environment, 3)

	assert.Equal(t, &domain.ConstProvider{Value: "3"}, pkg.Environment["LEVEL"])
	assert.Equal(t, &domain.EnvProvider{Name: "HOME"}, pkg.Environment["HOME_DIR"])

	concat, ok := pkg.Environment["COMPILE_STATE"].(*domain.ConcatProvider)
	require.True(t, ok)
	require.Len(t, concat.Parts, 2)
	state, ok := concat.Parts[1].(*domain.TaskStateProvider)
	require.True(t, ok)
	assert.Same(t, res.plan.Root.Task("compile"), state.Task)

	// Lazy values are execution inputs: nothing but the script is recorded and no state was read.
	assert.Equal(t, []string{"file 'recall.yaml'"}, described(res.fingerprint))
	assert.Empty(t, res.violations)
}

const onlyIfScript = `
project: app
tasks:
  compile:
    cmd: ["make"]
  pkg:
    cmd: ["tar"]
    onlyIf: "${state:compile} == executed"
`

func TestConfigure_OnlyIfStateAdvisory(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, onlyIfScript)

	res := configure(t, root, options{mode: domain.ModeAdvisory})
	require.NoError(t, res.err)

	assert.False(t, res.plan.Root.Task("pkg").Enabled)
	require.Len(t, res.violations, 1)
	assert.Equal(t, "app:compile", res.violations[0].Task)
	assert.Equal(t, "task 'app:pkg' onlyIf", res.violations[0].Accessor)
	assert.Equal(t, domain.PhaseConfiguring, res.violations[0].Phase)
}

func TestConfigure_OnlyIfStateStrict(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, onlyIfScript)

	res := configure(t, root, options{mode: domain.ModeStrict})
	require.ErrorIs(t, res.err, domain.ErrAccessViolation)
	assert.Nil(t, res.plan)
	assert.Len(t, res.violations, 1)
}

func TestConfigure_OnlyIfConditions(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		want      bool
	}{
		{name: "true", condition: "true", want: true},
		{name: "false", condition: "false", want: false},
		{name: "equal", condition: "${prop:mode} == release", want: true},
		{name: "not equal", condition: "${prop:mode} != release", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeScript(t, root, "project: app\ntasks:\n  pkg:\n    cmd: [tar]\n    onlyIf: \""+tt.condition+"\"\n")

			res := configure(t, root, options{props: map[string]string{"mode": "release"}})
			require.NoError(t, res.err)
			assert.Equal(t, tt.want, res.plan.Root.Task("pkg").Enabled)
		})
	}
}

func TestConfigure_Errors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
	}{
		{
			name:    "parse failure",
			script:  "tasks: [",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "reserved task name",
			script:  "tasks:\n  all:\n    cmd: [x]\n",
			wantErr: domain.ErrReservedTaskName,
		},
		{
			name:    "missing dependency",
			script:  "tasks:\n  a:\n    dependsOn: [b]\n",
			wantErr: domain.ErrMissingDependency,
		},
		{
			name:    "unterminated placeholder",
			script:  "tasks:\n  a:\n    cmd: [\"${env:HOME\"]\n",
			wantErr: domain.ErrInvalidPlaceholder,
		},
		{
			name:    "state outside env and onlyIf",
			script:  "tasks:\n  a:\n    cmd: [x]\n  b:\n    cmd: [\"${state:a}\"]\n",
			wantErr: domain.ErrInvalidPlaceholder,
		},
		{
			name:    "unknown placeholder",
			script:  "tasks:\n  a:\n    cmd: [\"${vault:secret}\"]\n",
			wantErr: domain.ErrInvalidPlaceholder,
		},
		{
			name:    "invalid condition",
			script:  "tasks:\n  a:\n    onlyIf: maybe\n",
			wantErr: domain.ErrInvalidCondition,
		},
		{
			name:    "invalid project name",
			script:  "project: \"my app\"\n",
			wantErr: domain.ErrInvalidProjectName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeScript(t, root, tt.script)

			res := configure(t, root, options{})
			require.Error(t, res.err)
			assert.ErrorIs(t, res.err, tt.wantErr)
		})
	}
}

func TestConfigure_MissingScript(t *testing.T) {
	res := configure(t, t.TempDir(), options{})
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, domain.ErrConfigNotFound)

	// The absent script is still an input: creating it must invalidate.
	assert.Equal(t, []string{"file 'recall.yaml'"}, described(res.fingerprint))
}

func TestConfigure_FailingValueSource(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "tasks:\n  a:\n    cmd: [\"${exec:false}\"]\n")

	res := configure(t, root, options{})
	require.ErrorIs(t, res.err, domain.ErrValueSourceFailed)
}
