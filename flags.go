package fringe

import (
	"fmt"
	"sort"
)

// Flags holds flexfringe command line options as key value pairs, each
// rendered as --key=value.
type Flags map[string]string

// merged returns a new flag set with extra overriding f key by key.
func (f Flags) merged(extra Flags) Flags {
	out := make(Flags, len(f)+len(extra))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// argv renders the flags in sorted key order, keeping command lines
// deterministic.
func (f Flags) argv() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("--%s=%s", k, f[k]))
	}
	return out
}
