package utils

// Ptr returns a pointer to v.
//
// Example:
//
//	points := utils.Ptr(int64(15000))
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or fallback when p is nil.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
