package utils

// Map applies mapper to each element and collects the results.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for i, v := range sli {
		ret[i] = mapper(v)
	}
	return ret
}

// Filter returns the elements satisfying predicator, keeping order.
func Filter[T any](sli []T, predicator func(v T) bool) []T {
	ret := []T{}
	for _, v := range sli {
		if predicator(v) {
			ret = append(ret, v)
		}
	}
	return ret
}
