package main

import "testing"

func TestResolveMetricsBackend(t *testing.T) {
	cases := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{"flag wins over env", "pushgateway", "none", "pushgateway"},
		{"env fills empty flag", "", "pushgateway", "pushgateway"},
		{"both empty disables", "", "", "none"},
		{"explicit none sticks", "none", "pushgateway", "none"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("METRICS_BACKEND", tc.env)
			if got := resolveMetricsBackend(tc.flag); got != tc.want {
				t.Fatalf("resolveMetricsBackend(%q) = %q, want %q", tc.flag, got, tc.want)
			}
		})
	}
}
