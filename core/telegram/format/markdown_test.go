package format

import "testing"

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		version int
		want    string
	}{
		{name: "v1 plain", text: "waitlist@yourai.com", version: MarkdownV1, want: "waitlist@yourai.com"},
		{name: "v1 underscore", text: "wait_list@ai.com", version: MarkdownV1, want: `wait\_list@ai.com`},
		{name: "v1 bold and link", text: "*[x]`", version: MarkdownV1, want: "\\*\\[x]\\`"},
		{name: "v2 dot and dash", text: "a-b.c", version: MarkdownV2, want: `a\-b\.c`},
		{name: "v2 parens", text: "(ok)!", version: MarkdownV2, want: `\(ok\)\!`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EscapeMarkdown(tt.text, tt.version)
			if err != nil {
				t.Fatalf("EscapeMarkdown() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestEscapeMarkdownUnsupported(t *testing.T) {
	if _, err := EscapeMarkdown("x", 3); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}
