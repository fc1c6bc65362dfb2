package models

// Maybe holds either a value or nothing.
// The zero Maybe is None, which callers treat as "the fetch failed";
// Some of an empty slice is a successful fetch with zero results.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some wraps a value.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// None returns the empty Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Get returns the value and whether there was one.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

// IsNone reports whether m holds nothing.
func (m Maybe[T]) IsNone() bool {
	return !m.ok
}

// SearchResult pairs search data with the failure that prevented it.
// Exactly one of Data and Err is non-nil.
type SearchResult struct {
	Data []Recipe
	Err  *ErrorInfo
}

// SearchSucceeded builds a successful result. A nil slice becomes empty
// so the result never looks like a failure.
func SearchSucceeded(recipes []Recipe) SearchResult {
	if recipes == nil {
		recipes = []Recipe{}
	}
	return SearchResult{Data: recipes}
}

// SearchFailed builds a failed result.
func SearchFailed(info *ErrorInfo) SearchResult {
	return SearchResult{Err: info}
}
