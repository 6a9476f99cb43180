package config

// Buildfile is the structure of a recall.yaml build script.
type Buildfile struct {
	Version string `yaml:"version"`
	// Project names the project. The root defaults to the name of its directory,
	// included projects to their root-relative path.
	Project string `yaml:"project"`
	// Include lists sub-project directories (glob patterns) relative to this script.
	Include    []string            `yaml:"include"`
	Properties map[string]string   `yaml:"properties"`
	Tasks      map[string]*TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in a build script.
//
// Every string may contain ${kind:arg} placeholders. Inside env, ${env:NAME} and
// ${state:TASK} stay lazy and are resolved when the task runs; everywhere else placeholders
// are evaluated while configuring.
type TaskDTO struct {
	Input      []string          `yaml:"input"`
	Cmd        []string          `yaml:"cmd"`
	Target     []string          `yaml:"target"`
	DependsOn  []string          `yaml:"dependsOn"`
	Env        map[string]string `yaml:"env"`
	OnlyIf     string            `yaml:"onlyIf"`
	WorkingDir string            `yaml:"workingDir"`
}
