package route

import "strings"

// Key identifies one route-table entry: an uppercase HTTP method paired with
// an exact request path. Using a value type instead of a concatenated string
// keeps the producer and the matcher from drifting on format.
type Key struct {
	Method string
	Path   string
}

// NewKey builds a Key, normalizing the method to uppercase.
func NewKey(method, path string) Key {
	return Key{
		Method: strings.ToUpper(strings.TrimSpace(method)),
		Path:   path,
	}
}

func (k Key) String() string {
	return k.Method + " " + k.Path
}
