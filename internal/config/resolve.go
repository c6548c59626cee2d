package config

import "strings"

// Resolve walks doc along the dot-separated path and returns the value it
// lands on, or def when the walk misses. Three conditions count as a miss:
// the current value is not a mapping, the segment is absent from it, or the
// stored value is an explicit null. An explicit null in the document is
// therefore indistinguishable from a missing key; callers always receive def
// in its place. Misses are never errors.
func Resolve(doc map[string]any, path string, def any) any {
	var value any = doc
	for _, segment := range strings.Split(path, ".") {
		node, ok := value.(map[string]any)
		if !ok {
			return def
		}
		next, ok := node[segment]
		if !ok || next == nil {
			return def
		}
		value = next
	}
	return value
}
