package render

import (
	"strings"
	"testing"
)

func TestPlain(t *testing.T) {
	in := "# Cat\n<b>A cat.</b>"
	got, err := Plain{}.Render(in)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != in {
		t.Errorf("plain should be verbatim: got %q", got)
	}
}

func TestMarkdown(t *testing.T) {
	md, err := NewMarkdown("notty", 80)
	if err != nil {
		t.Fatalf("NewMarkdown: %v", err)
	}

	got, err := md.Render("# Cat\nA cat.")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "Cat") || !strings.Contains(got, "A cat.") {
		t.Errorf("rendered output missing heading or text:\n%s", got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("notty output should not contain escape codes: %q", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		mode     string
		style    string
		wantName string
		wantErr  bool
	}{
		{mode: "plain", wantName: "plain"},
		{mode: "markdown", style: "notty", wantName: "markdown"},
		{mode: "auto", style: "notty", wantName: "markdown"},
		{mode: "", style: "notty", wantName: "markdown"},
		{mode: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			r, err := Resolve(tt.mode, tt.style, 80, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if r.Name() != tt.wantName {
				t.Errorf("name: got %s, want %s", r.Name(), tt.wantName)
			}
		})
	}
}
