package utils

// Ptr returns a pointer to v, for optional fields set from literals
func Ptr[T any](v T) *T {
	return &v
}

// SetOptional stores format(*v) under key, leaving q untouched when v is nil
func SetOptional[T any](q map[string]string, key string, v *T, format func(T) string) {
	if v == nil {
		return
	}
	q[key] = format(*v)
}
