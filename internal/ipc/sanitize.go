package ipc

import (
	"fmt"
	"strings"
)

// Policy selects how a raw argument list is filtered before transmission.
// Two variants exist in the wild; daemons differ in which one they expect,
// so the choice is configuration rather than a hard-wired behavior.
type Policy int

const (
	// PolicyFilter drops blank argument values and elides flags whose
	// values were all blank.
	PolicyFilter Policy = iota
	// PolicyPassthrough sends arguments unfiltered, substituting a single
	// space for an empty argument so no zero-length chunk is emitted.
	PolicyPassthrough
)

// PolicyFromName maps a config value to a Policy.
func PolicyFromName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "filter":
		return PolicyFilter, nil
	case "passthrough":
		return PolicyPassthrough, nil
	default:
		return 0, fmt.Errorf("unknown argument policy %q", name)
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyPassthrough:
		return "passthrough"
	default:
		return "filter"
	}
}

// Apply returns the policy-compliant argument list, preserving the relative
// order of surviving tokens.
func (p Policy) Apply(args []string) []string {
	if p == PolicyPassthrough {
		return passthroughArgs(args)
	}
	return filterArgs(args)
}

// filterArgs makes a single left-to-right pass. A token starting with "-"
// is a flag; the run of immediately following non-flag tokens are its
// candidate values. Blank candidate values are dropped, and a flag whose
// values were all blank is dropped with them. A flag with no candidate
// values at all is kept alone. Free-standing blank tokens are dropped.
func filterArgs(args []string) []string {
	out := make([]string, 0, len(args))
	i := 0
	for i < len(args) {
		token := args[i]
		if strings.HasPrefix(token, "-") {
			j := i + 1
			for j < len(args) && !strings.HasPrefix(args[j], "-") {
				j++
			}
			candidates := args[i+1 : j]
			surviving := make([]string, 0, len(candidates))
			for _, value := range candidates {
				if strings.TrimSpace(value) != "" {
					surviving = append(surviving, value)
				}
			}
			switch {
			case len(candidates) == 0:
				out = append(out, token)
			case len(surviving) > 0:
				out = append(out, token)
				out = append(out, surviving...)
			}
			i = j
			continue
		}
		if strings.TrimSpace(token) != "" {
			out = append(out, token)
		}
		i++
	}
	return out
}

func passthroughArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == "" {
			arg = " "
		}
		out[i] = arg
	}
	return out
}
