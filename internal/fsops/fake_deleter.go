package fsops

// FakeDeleter implements Deleter for testing
// Records every call and can be primed to fail for selected paths,
// which lets tests drive the partial-failure branch of the sweep
type FakeDeleter struct {
	Calls  []string
	FailOn map[string]error
}

func (f *FakeDeleter) RemoveAll(path string) error {
	f.Calls = append(f.Calls, path)
	if err, ok := f.FailOn[path]; ok {
		return err
	}
	return nil
}
