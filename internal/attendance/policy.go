package attendance

import "fmt"

// Policy decides when an accepted match is written to the attendance log.
type Policy string

const (
	// PolicyOnce writes one row per person per session, on the first match.
	PolicyOnce Policy = "once"
	// PolicyEveryFrame writes a row for every frame a person is recognized in.
	PolicyEveryFrame Policy = "every-frame"
)

// ParsePolicy validates a policy name. An empty name selects PolicyOnce.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyOnce:
		return PolicyOnce, nil
	case PolicyEveryFrame:
		return PolicyEveryFrame, nil
	default:
		return "", fmt.Errorf("unknown logging policy %q (want %q or %q)", s, PolicyOnce, PolicyEveryFrame)
	}
}
