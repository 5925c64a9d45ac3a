package accesscode

import "testing"

func TestGenerate(t *testing.T) {
	vectors := map[string]string{
		"00000000-0000-0000-0000-000000000000": "4200",
		"req-1":                                "0848",
		"6f1c2a3e-8b4d-4e5f-9a7b-1c2d3e4f5a6b": "9275",
		"hello":                                "8948",
	}
	for id, want := range vectors {
		if got := Generate(id); got != want {
			t.Fatalf("Generate(%q): expected %s, got %s", id, want, got)
		}
	}

	t.Run("deterministic and four digits", func(t *testing.T) {
		a := Generate("some-request")
		b := Generate("some-request")
		if a != b {
			t.Fatalf("expected same code, got %s and %s", a, b)
		}
		if len(a) != Length {
			t.Fatalf("expected %d digits, got %q", Length, a)
		}
	})
}

func TestValidate(t *testing.T) {
	id := "req-1"
	fallback := Generate(id)

	t.Run("fallback when nothing stored", func(t *testing.T) {
		if !Validate(nil, fallback, id) {
			t.Fatalf("expected fallback code to validate")
		}
		if !Validate(nil, " "+fallback+" ", id) {
			t.Fatalf("expected trimmed code to validate")
		}
		if Validate(nil, "0000", id) {
			t.Fatalf("expected wrong code to fail")
		}
	})

	t.Run("stored code wins over fallback", func(t *testing.T) {
		stored := "1234"
		if !Validate(&stored, "1234", id) {
			t.Fatalf("expected stored code to validate")
		}
		if Validate(&stored, fallback, id) {
			t.Fatalf("expected fallback code to be rejected when a code is stored")
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		stored := "ab12"
		if !Validate(&stored, "AB12", id) {
			t.Fatalf("expected case-insensitive match")
		}
	})

	t.Run("empty stored falls back", func(t *testing.T) {
		stored := "  "
		if !Validate(&stored, fallback, id) {
			t.Fatalf("expected fallback when stored code is blank")
		}
	})

	t.Run("empty supplied fails", func(t *testing.T) {
		if Validate(nil, "", id) {
			t.Fatalf("expected empty code to fail")
		}
	})
}
