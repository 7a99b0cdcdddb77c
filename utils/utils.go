package utils

import (
	"net/url"
	"strings"
)

// EnsureValidPath strips a trailing slash unless the path is the root.
func EnsureValidPath(path string) string {
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	return path
}

// PostPathFromArg normalizes a user-supplied post reference. It accepts a
// bare post path, a web path like /c/golang/post/some-post, or a full URL,
// and returns the post path.
func PostPathFromArg(arg string) string {
	arg = strings.TrimSpace(arg)

	if u, err := url.Parse(arg); err == nil && u.Scheme != "" && u.Host != "" {
		arg = u.Path
	}

	arg = EnsureValidPath(arg)

	if i := strings.LastIndex(arg, "/post/"); i >= 0 {
		return arg[i+len("/post/"):]
	}

	return strings.TrimPrefix(arg, "/")
}

// CommunityPathFromArg normalizes a user-supplied community reference,
// accepting a bare path, a /c/name web path, or a full URL.
func CommunityPathFromArg(arg string) string {
	arg = strings.TrimSpace(arg)

	if u, err := url.Parse(arg); err == nil && u.Scheme != "" && u.Host != "" {
		arg = u.Path
	}

	arg = EnsureValidPath(arg)
	arg = strings.TrimPrefix(arg, "/")
	arg = strings.TrimPrefix(arg, "c/")

	// a web path may have trailing segments after the community name
	if i := strings.Index(arg, "/"); i >= 0 {
		arg = arg[:i]
	}

	return arg
}
