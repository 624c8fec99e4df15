package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve(t *testing.T) {
	doc := `
log-level: debug
log_format: json
log:
  pretty: false
max-iterations: 42
`

	r, err := resolve(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "json"},
		{"log-pretty", false},
		{"max-iterations", "42"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := &kong.Flag{Value: &kong.Value{Name: tt.flag}}

			got, err := r.Resolve(nil, nil, flag)
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	if _, err := resolve(strings.NewReader("log-level: [unterminated")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestRun_ConfigFile(t *testing.T) {
	type app struct {
		Level string `default:"info"`
		Count int    `default:"1"`
	}

	var cli app

	path := writeFile(t, "config.yaml", "level: warn\ncount: 7\n")

	parser, err := kong.New(&cli, kong.Configuration(resolve, path))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--count=9"}); err != nil {
		t.Fatal(err)
	}

	if cli.Level != "warn" || cli.Count != 9 {
		t.Errorf("got level=%q count=%d, want warn and 9", cli.Level, cli.Count)
	}
}
