package adapt

// Array converts every item with adapterFn. An empty input yields an empty, non-nil slice so list
// fields resolve to [] rather than null.
func Array[T, R any](items []T, adapterFn func(T) R) []R {
	elements := make([]R, 0, len(items))
	for _, item := range items {
		elements = append(elements, adapterFn(item))
	}
	return elements
}

// ArrayErr is Array for conversions that can fail, it stops at the first error.
func ArrayErr[T, R any](items []T, adapterFn func(T) (R, error)) ([]R, error) {
	elements := make([]R, 0, len(items))
	for i, item := range items {
		element, err := adapterFn(item)
		if err != nil {
			return nil, &ItemError{Index: i, Err: err}
		}
		elements = append(elements, element)
	}
	return elements, nil
}
