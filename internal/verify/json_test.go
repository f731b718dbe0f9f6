package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"leading prose", `Sure, here you go: {"a": 1}`, `{"a": 1}`},
		{"trailing prose", `{"a": 1} hope that helps`, `{"a": 1}`},
		{"no object at all", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSON(tt.in))
		})
	}
}

func TestCleanJSONArray(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare array", `["a", "b"]`, `["a", "b"]`},
		{"json fence", "```json\n[\"a\"]\n```", `["a"]`},
		{"wrapped in prose", `The claims are: ["a", "b"] as requested.`, `["a", "b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSONArray(tt.in))
		})
	}
}
