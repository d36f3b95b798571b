package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-config/config/flat"
)

// Navigate follows a colon-separated path through maps and slices. Map keys
// match exactly first and case-insensitively otherwise; numeric segments index
// slices. The boolean is false when any segment cannot be resolved.
func Navigate(node any, path string) (any, bool) {
	for _, segment := range flat.Split(path) {
		next, ok := step(node, segment)
		if !ok {
			return nil, false
		}

		node = next
	}

	return node, true
}

func step(node any, segment string) (any, bool) {
	switch current := node.(type) {
	case map[string]any:
		if value, ok := current[segment]; ok {
			return value, true
		}

		for name, value := range current {
			if strings.EqualFold(name, segment) {
				return value, true
			}
		}
	case map[any]any:
		for name, value := range current {
			if strings.EqualFold(fmt.Sprint(name), segment) {
				return value, true
			}
		}
	case []any:
		idx, err := strconv.Atoi(segment)
		if err == nil && idx >= 0 && idx < len(current) {
			return current[idx], true
		}
	}

	return nil, false
}
