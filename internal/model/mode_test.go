package model

import (
	"errors"
	"testing"
)

// TestParseMode tests mode parsing and validation.
func TestParseMode(t *testing.T) {
	t.Parallel()

	t.Run("accepts recognized modes", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"theme", "industry"} {
			m, err := ParseMode(in)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", in, err)
			}
			if m.String() != in {
				t.Errorf("expected %q, got %q", in, m.String())
			}
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"", "themes", "Theme", "industries", " theme"} {
			_, err := ParseMode(in)
			if err == nil {
				t.Fatalf("expected error for %q", in)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError for %q, got %T", in, err)
			}
			if verr.Field != "mode" {
				t.Errorf("expected field 'mode', got %q", verr.Field)
			}
		}
	})
}

// TestModeProperties tests the anchor and output names of each mode.
func TestModeProperties(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		mode   Mode
		anchor string
		output string
	}{
		{ModeTheme, "browseByThemes", "themes"},
		{ModeIndustry, "BROWSE_BY_INDUSTRIES", "industries"},
		{Mode("bogus"), "", ""},
	}

	for _, tc := range testCases {
		t.Run(string(tc.mode), func(t *testing.T) {
			t.Parallel()
			if got := tc.mode.AnchorName(); got != tc.anchor {
				t.Errorf("AnchorName: got %q, expected %q", got, tc.anchor)
			}
			if got := tc.mode.OutputName(); got != tc.output {
				t.Errorf("OutputName: got %q, expected %q", got, tc.output)
			}
		})
	}
}

// TestValidationErrorMessage tests the error message format.
func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := Mode("job").Validate()
	expected := `invalid mode "job": must be one of theme, industry`
	if err == nil || err.Error() != expected {
		t.Errorf("expected %q, got %v", expected, err)
	}
}
