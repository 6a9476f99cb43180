package shell

// ResolveEnvironment exposes resolveEnvironment to tests.
var ResolveEnvironment = resolveEnvironment

// WithEnviron replaces the system environment seen by e.
func (e *Executor) WithEnviron(environ func() []string) *Executor {
	e.environ = environ
	return e
}
