package tree_test

import (
	"testing"

	"github.com/0xalexb/hjarta-config/config/parser/internal/tree"

	"github.com/stretchr/testify/assert"
)

func TestNavigate(t *testing.T) {
	t.Parallel()

	document := map[string]any{
		"General": map[string]any{"AppName": "demo"},
		"Hosts":   []any{"a", map[string]any{"Name": "b"}},
		"Legacy":  map[any]any{1: "one"},
	}

	tests := []struct {
		name   string
		path   string
		want   any
		wantOK bool
	}{
		{name: "empty path returns root", path: "", want: document, wantOK: true},
		{name: "exact key", path: "General:AppName", want: "demo", wantOK: true},
		{name: "folded key", path: "general:APPNAME", want: "demo", wantOK: true},
		{name: "array index", path: "Hosts:0", want: "a", wantOK: true},
		{name: "object in array", path: "Hosts:1:name", want: "b", wantOK: true},
		{name: "non-string keys", path: "Legacy:1", want: "one", wantOK: true},
		{name: "missing key", path: "General:Missing", wantOK: false},
		{name: "index out of range", path: "Hosts:2", wantOK: false},
		{name: "negative index", path: "Hosts:-1", wantOK: false},
		{name: "through scalar", path: "General:AppName:x", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tree.Navigate(document, tt.path)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
