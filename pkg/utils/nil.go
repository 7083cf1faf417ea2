package utils

// Default dereferences p, falling back to d when p is nil.
//
// Handy for applying patch structs: Default(patch.Name, current.Name).
func Default[T any](p *T, d T) T {
	if p != nil {
		return *p
	}
	return d
}
