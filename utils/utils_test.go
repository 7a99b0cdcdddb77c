package utils

import (
	"testing"
)

func TestEnsureValidPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/c/golang/", "/c/golang"},
		{"/", "/"},
	}

	for _, test := range tests {
		t.Run("Path: "+test.input, func(t *testing.T) {
			output := EnsureValidPath(test.input)
			if output != test.expected {
				t.Errorf("EnsureValidPath(%q) = %q; want %q", test.input, output, test.expected)
			}
		})
	}
}

func TestPostPathFromArg(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"some-post-abc123", "some-post-abc123"},
		{"/c/golang/post/some-post-abc123", "some-post-abc123"},
		{"/c/golang/post/some-post-abc123/", "some-post-abc123"},
		{"https://onuze.com/c/golang/post/some-post-abc123", "some-post-abc123"},
	}

	for _, test := range tests {
		t.Run("Arg: "+test.input, func(t *testing.T) {
			output := PostPathFromArg(test.input)
			if output != test.expected {
				t.Errorf("PostPathFromArg(%q) = %q; want %q", test.input, output, test.expected)
			}
		})
	}
}

func TestCommunityPathFromArg(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"golang", "golang"},
		{"/c/golang", "golang"},
		{"https://onuze.com/c/golang/post/some-post", "golang"},
	}

	for _, test := range tests {
		t.Run("Arg: "+test.input, func(t *testing.T) {
			output := CommunityPathFromArg(test.input)
			if output != test.expected {
				t.Errorf("CommunityPathFromArg(%q) = %q; want %q", test.input, output, test.expected)
			}
		})
	}
}
