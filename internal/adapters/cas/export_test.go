package cas

// SetBeforeCommit injects a hook that runs after staging and before publishing.
func (r *Repository) SetBeforeCommit(fn func(staged string) error) {
	r.beforeCommit = fn
}
