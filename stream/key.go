package stream

import (
	"net/url"
	"sort"
	"strings"
)

// Key identifies one stream: an endpoint plus its filter/sort params.
// Params are normalized (sorted, empty values dropped) so that equivalent
// queries share a cache entry.
type Key struct {
	Endpoint string
	Params   url.Values
}

func NewKey(endpoint string, params url.Values) Key {
	normalized := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				normalized.Add(k, v)
			}
		}
	}
	return Key{Endpoint: endpoint, Params: normalized}
}

// String is the structural cache key.
func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Endpoint
	}

	keys := make([]string, 0, len(k.Params))
	for pk := range k.Params {
		keys = append(keys, pk)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(k.Endpoint)
	sb.WriteByte('?')
	for i, pk := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(pk))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(k.Params.Get(pk)))
	}
	return sb.String()
}

// FirstPageUrl is the relative request path for page one.
func (k Key) FirstPageUrl() string {
	return k.String()
}
