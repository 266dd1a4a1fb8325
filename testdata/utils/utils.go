package utils

// Ptr returns a pointer to v. Test-only helper for literal pointer fields.
func Ptr[T any](v T) *T {
	return &v
}
