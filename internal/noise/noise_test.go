package noise

import "testing"

func TestIsNoise(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"Cargo.lock", true},
		{"src/main.rs", false},
		{"dist/app.js", true},
		{"app.min.js", true},
		{"some/path/yarn.lock", true},
		{"dist/styles.min.css", true},
		{"build/output.js", true},
		{"__generated__/types.ts", true},
		{"lib/utils.ts", false},
		{"go.sum", true},
		{".DS_Store", true},
	}

	for _, tt := range tests {
		if got := IsNoise(tt.path); got != tt.want {
			t.Errorf("IsNoise(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFilter(t *testing.T) {
	in := []string{"Cargo.lock", "src/main.rs", "dist/app.js", "app.min.js"}
	got := Filter(in)
	want := []string{"src/main.rs"}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("Filter(%v) = %v, want %v", in, got, want)
	}
}

func TestNoiseFilterMatchesScenarioS6(t *testing.T) {
	inputs := []string{"Cargo.lock", "src/main.rs", "dist/app.js", "app.min.js"}
	want := []bool{true, false, true, true}
	for i, p := range inputs {
		if got := IsNoise(p); got != want[i] {
			t.Errorf("IsNoise(%q) = %v, want %v", p, got, want[i])
		}
	}
}
