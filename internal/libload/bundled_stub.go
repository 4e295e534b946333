//go:build !bundled

package libload

// bundledLibraryPath always reports errNotBundled; embedding the shared
// library requires the "bundled" build tag.
func bundledLibraryPath() (string, error) {
	return "", errNotBundled
}
