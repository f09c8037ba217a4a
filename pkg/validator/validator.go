package validator

import (
	"context"
	"sort"
)

type Validate interface {
	Validate(ctx context.Context) (problems map[string][]string)
}

// Messages flattens problems into a stable, sorted list of messages.
func Messages(problems map[string][]string) []string {
	keys := make([]string, 0, len(problems))
	for k := range problems {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		out = append(out, problems[k]...)
	}
	return out
}

// First returns the first message of Messages, or "" when there are none.
func First(problems map[string][]string) string {
	msgs := Messages(problems)
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}
