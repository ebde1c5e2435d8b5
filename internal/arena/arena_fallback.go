//go:build !unix

package arena

// mapAnon allocates the window on the heap when mmap is not available.
func mapAnon(size int) ([]byte, func() error, error) {
	return make([]byte, size), func() error { return nil }, nil
}
