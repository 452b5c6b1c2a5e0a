//go:build !opencv

package detection

// DefaultBackend returns the backend compiled into this binary.
func DefaultBackend() Backend {
	return NativeBackend{}
}
