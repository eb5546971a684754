package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// IntFromPtrWithDefault returns the first non-nil *int value, or the fallback.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// coalescePtr returns fetched when it is set, otherwise existing.
func coalescePtr[T any](fetched, existing *T) *T {
	if fetched != nil {
		v := *fetched
		return &v
	}
	if existing != nil {
		v := *existing
		return &v
	}
	return nil
}
