package handler

type contextKey struct {
	name string
}
