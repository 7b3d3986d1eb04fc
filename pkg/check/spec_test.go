package check

import "testing"

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{"multi arg", Spec{Command: []string{"go", "test", "./..."}}, "go test ./..."},
		{"single token", Spec{Command: []string{"true"}}, "true"},
		{"empty", Spec{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.CommandLine(); got != tt.want {
				t.Errorf("CommandLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
