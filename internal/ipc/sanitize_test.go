package ipc_test

import (
	"reflect"
	"testing"

	"kiln/internal/ipc"
)

func TestFilterPolicy(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "flag with all-blank values is elided",
			in:   []string{"-f", "", "  ", "-g", "v1", "v2", "", "h"},
			want: []string{"-g", "v1", "v2", "h"},
		},
		{
			name: "adjacent flags survive unchanged",
			in:   []string{"-a", "-b"},
			want: []string{"-a", "-b"},
		},
		{
			name: "empty input",
			in:   nil,
			want: []string{},
		},
		{
			name: "plain tokens pass through",
			in:   []string{"build", "main.scala"},
			want: []string{"build", "main.scala"},
		},
		{
			name: "free-standing blank token dropped",
			in:   []string{"build", "   ", "main.scala"},
			want: []string{"build", "main.scala"},
		},
		{
			name: "trailing flag without values kept",
			in:   []string{"x", "-verbose"},
			want: []string{"x", "-verbose"},
		},
		{
			name: "flag keeps surviving values in order",
			in:   []string{"-cp", "a.jar", "", "b.jar"},
			want: []string{"-cp", "a.jar", "b.jar"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ipc.PolicyFilter.Apply(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v want %#v", got, tc.want)
			}
		})
	}
}

func TestPassthroughPolicySubstitutesSpaceForEmpty(t *testing.T) {
	got := ipc.PolicyPassthrough.Apply([]string{"-f", "", "  ", "value"})
	want := []string{"-f", " ", "  ", "value"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestPolicyFromName(t *testing.T) {
	if p, err := ipc.PolicyFromName("filter"); err != nil || p != ipc.PolicyFilter {
		t.Fatalf("filter: %v %v", p, err)
	}
	if p, err := ipc.PolicyFromName(" Passthrough "); err != nil || p != ipc.PolicyPassthrough {
		t.Fatalf("passthrough: %v %v", p, err)
	}
	if p, err := ipc.PolicyFromName(""); err != nil || p != ipc.PolicyFilter {
		t.Fatalf("default: %v %v", p, err)
	}
	if _, err := ipc.PolicyFromName("strict"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
