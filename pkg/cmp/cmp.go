package cmp

// SliceEq checks a and b are elementwise equal.
func SliceEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for nth, va := range a {
		if va != b[nth] {
			return false
		}
	}
	return true
}

// SliceEqWith checks a and b are elementwise equal in context of pred.
func SliceEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !pred(a[nth], b[nth]) {
			return false
		}
	}
	return true
}

// SliceContentEqWith checks a and b hold the same elements in any order,
// in context of pred. Duplicates are matched one-to-one.
func SliceContentEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
aloop:
	for _, va := range a {
		for nth, vb := range b {
			if used[nth] {
				continue
			}
			if pred(va, vb) {
				used[nth] = true
				continue aloop
			}
		}
		return false
	}
	return true
}

// MapEq checks a == b.
func MapEq[K comparable, V comparable](a map[K]V, b map[K]V) bool {
	if len(a) != len(b) {
		return false
	}
	for ka, va := range a {
		vb, ok := b[ka]
		if !ok || vb != va {
			return false
		}
	}
	return true
}

// MapEqWith checks a == b in context of comparator.
func MapEqWith[K comparable, V any, U any](a map[K]V, b map[K]U, comparator func(a V, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for ka, va := range a {
		vb, ok := b[ka]
		if !ok || !comparator(va, vb) {
			return false
		}
	}
	return true
}
