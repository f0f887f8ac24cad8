package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestWrap(t *testing.T) {
	long := strings.Repeat("word ", 30)

	for _, line := range strings.Split(Wrap(long), "\n") {
		if len(line) > DefaultWidth {
			t.Errorf("line exceeds %d columns: %q", DefaultWidth, line)
		}
	}

	testutil.AssertEqual(t, "short text untouched", Wrap("hello"), "hello")
}

func TestExpandTemplate(t *testing.T) {
	data := struct {
		Title string
	}{Title: "Darkfang"}

	tests := map[string]struct {
		tmpl   string
		exp    string
		expErr bool
	}{
		"plain passthrough": {tmpl: "no markers here", exp: "no markers here"},
		"field access":      {tmpl: "Welcome to {{ .Title }}", exp: "Welcome to Darkfang"},
		"sprig function":    {tmpl: "{{ upper .Title }}", exp: "DARKFANG"},
		"broken template":   {tmpl: "{{ .Title", expErr: true},
		"unknown field":     {tmpl: "{{ .Missing }}", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ExpandTemplate(tt.tmpl, data)
			if tt.expErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "result", got, tt.exp)
		})
	}
}
