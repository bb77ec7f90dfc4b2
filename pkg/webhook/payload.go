// Package webhook decodes GitHub webhook payloads supplied to a run.
package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"

	gh "github.com/google/go-github/v82/github"
)

// PullRequestFields holds the four pull request values status-embed
// needs. Keys missing from the payload leave the matching field empty.
type PullRequestFields struct {
	AuthorLogin string
	Number      string
	Title       string
	Source      string
}

// IsEmpty reports whether no field was found in the payload.
func (f PullRequestFields) IsEmpty() bool {
	return f.AuthorLogin == "" && f.Number == "" && f.Title == "" && f.Source == ""
}

// ParsePullRequestPayload decodes a `pull_request` webhook object, as found
// in `github.event.pull_request`, or an array of them. Only the first
// element of an array is used.
//
// A nil result with a nil error means the payload held no pull request: an
// empty array, an empty object, or an object without any of the extracted
// keys.
func ParsePullRequestPayload(raw string) (*PullRequestFields, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("array: %w", err)
		}
		if len(items) == 0 {
			return nil, nil
		}
		return parseObject(items[0])
	case '{':
		return parseObject(data)
	default:
		return nil, fmt.Errorf("must be a JSON object or array, got %q", truncate(data, 32))
	}
}

// parseObject extracts the four fields from one pull request object. Only
// the extracted keys are decoded, so unrelated keys never fail the parse.
func parseObject(data []byte) (*PullRequestFields, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("object: %w", err)
	}

	var fields PullRequestFields
	var err error

	if raw, ok := obj["user"]; ok {
		if fields.AuthorLogin, err = nestedString(raw, "login", func(u *gh.User) string { return u.GetLogin() }); err != nil {
			return nil, fmt.Errorf("user: %w", err)
		}
	}
	if raw, ok := obj["head"]; ok {
		if fields.Source, err = nestedString(raw, "label", func(b *gh.PullRequestBranch) string { return b.GetLabel() }); err != nil {
			return nil, fmt.Errorf("head: %w", err)
		}
	}
	if raw, ok := obj["title"]; ok {
		var title *string
		if err := json.Unmarshal(raw, &title); err != nil {
			return nil, fmt.Errorf("title: %w", err)
		}
		if title != nil {
			fields.Title = *title
		}
	}
	if raw, ok := obj["number"]; ok {
		// Accepts 7 as well as "7".
		var number json.Number
		if err := json.Unmarshal(raw, &number); err != nil {
			return nil, fmt.Errorf("number: %w", err)
		}
		fields.Number = number.String()
	}

	if fields.IsEmpty() {
		return nil, nil
	}
	return &fields, nil
}

// nestedString decodes raw as the go-github type T and reads one string from
// it. A nested object whose other keys do not match T is still read, through
// a plain map lookup of key.
func nestedString[T any](raw json.RawMessage, key string, get func(*T) string) (string, error) {
	var v *T
	if err := json.Unmarshal(raw, &v); err == nil {
		if v == nil {
			return "", nil
		}
		return get(v), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", err
	}
	var s *string
	if value, ok := obj[key]; ok {
		if err := json.Unmarshal(value, &s); err != nil {
			return "", fmt.Errorf("%s: %w", key, err)
		}
	}
	if s == nil {
		return "", nil
	}
	return *s, nil
}

func truncate(data []byte, n int) string {
	if len(data) > n {
		return string(data[:n]) + "..."
	}
	return string(data)
}
