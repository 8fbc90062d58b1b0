package fsops

// Deleter abstracts recursive directory removal
// Enables mocking in tests to prove dry-run never deletes
type Deleter interface {
	RemoveAll(path string) error
}
