package langmeta

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "pt_br", want: "pt-BR"},
		{in: " EN-us ", want: "en-US"},
		{in: "ru", want: "ru"},
		{in: "", want: ""},
		{in: "not a code", want: "not a code"},
	}

	for _, tc := range cases {
		got := canonicalize(tc.in)
		if got != tc.want {
			t.Fatalf("canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Run("native name", func(t *testing.T) {
		got := Resolve("fr")
		if got.Name != "français" {
			t.Fatalf("Name = %q, want français", got.Name)
		}
		if got.Flag != "🇫🇷" {
			t.Fatalf("Flag = %q, want 🇫🇷", got.Flag)
		}
	})

	t.Run("explicit region", func(t *testing.T) {
		got := Resolve("pt_BR")
		if got.Flag != "🇧🇷" {
			t.Fatalf("Flag = %q, want 🇧🇷", got.Flag)
		}
		if got.Name == "" || got.Name == "pt-BR" {
			t.Fatalf("expected a display name, got %q", got.Name)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		got := Resolve("???")
		if got.Name != "???" || got.Flag != "" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})
}

func TestLabel(t *testing.T) {
	if got := Label("de"); got != "de (Deutsch)" {
		t.Fatalf("Label(de) = %q", got)
	}
	if got := Label("???"); got != "???" {
		t.Fatalf("Label(???) = %q", got)
	}
}
