package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	algos := []string{"karatsuba", "schoolbook"}

	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _karatsuba_completions karatsuba", `algorithms="karatsuba schoolbook all"`, "--output|-o)", "--memory-limit"}},
		{"zsh", []string{"#compdef karatsuba", "algorithms=(karatsuba schoolbook all)", "'--algo[Multiplier to use]:algorithm:($algorithms)'", "'(-q --quiet)'{-q,--quiet}'[Print only the product]'"}},
		{"fish", []string{"complete -c karatsuba -f", "complete -c karatsuba -l algo -d 'Multiplier to use' -xa 'karatsuba schoolbook all'", "complete -c karatsuba -s o -l output"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, algos); err != nil {
				t.Fatalf("GenerateCompletion: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script should contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletionUnsupported(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(&bytes.Buffer{}, "tcsh", nil); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

// Every registered flag must be offered by every shell.
func TestCompletionCoversRegistry(t *testing.T) {
	t.Parallel()
	var bash, fish bytes.Buffer
	if err := GenerateCompletion(&bash, "bash", nil); err != nil {
		t.Fatal(err)
	}
	if err := GenerateCompletion(&fish, "fish", nil); err != nil {
		t.Fatal(err)
	}
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			if !strings.Contains(bash.String(), name) {
				t.Errorf("bash completion misses %s", name)
			}
		}
		key := "-s " + f.Short
		if f.Long != "" {
			key = "-l " + f.Long
		}
		if !strings.Contains(fish.String(), key) {
			t.Errorf("fish completion misses %q", key)
		}
	}
}
