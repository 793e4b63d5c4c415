package validate_test

import (
	"testing"

	"inkwell/internal/validate"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"ada@inkwell.test", true},
		{"  ada@inkwell.test  ", true},
		{"ada@inkwell", false},
		{"@inkwell.test", false},
		{"", false},
	}
	for _, c := range cases {
		if _, ok := validate.Email(c.in); ok != c.ok {
			t.Errorf("Email(%q) = %v, want %v", c.in, ok, c.ok)
		}
	}
}

func TestSlug(t *testing.T) {
	good := []string{"notebooks", "pens-pencils", "a5-dotted-notebook"}
	bad := []string{"", "Pens", "pens_pencils", "-pens", "pens-", "a//b"}
	for _, s := range good {
		if _, ok := validate.Slug(s); !ok {
			t.Errorf("Slug(%q) rejected", s)
		}
	}
	for _, s := range bad {
		if _, ok := validate.Slug(s); ok {
			t.Errorf("Slug(%q) accepted", s)
		}
	}
}

func TestQtyClamp(t *testing.T) {
	if got := validate.Qty("3"); got != 3 {
		t.Fatalf("Qty(3) = %d", got)
	}
	if got := validate.Qty("banana"); got != 1 {
		t.Fatalf("unparseable qty should fall back to 1, got %d", got)
	}
	if got := validate.Qty("9000"); got != 50 {
		t.Fatalf("qty should clamp to 50, got %d", got)
	}
	// zero and negatives pass through; the cart turns them into removals
	if got := validate.Qty("0"); got != 0 {
		t.Fatalf("Qty(0) = %d", got)
	}
}

func TestDiscountPctClamp(t *testing.T) {
	if got := validate.DiscountPct("150"); got != 100 {
		t.Fatalf("want clamp to 100, got %d", got)
	}
	if got := validate.DiscountPct("-5"); got != 0 {
		t.Fatalf("want clamp to 0, got %d", got)
	}
	if got := validate.DiscountPct("25"); got != 25 {
		t.Fatalf("want 25, got %d", got)
	}
}

func TestPasswordPolicy(t *testing.T) {
	good := []string{"Passw0rd!", "Sup3r-Secret"}
	bad := []string{"short1!", "alllowercase1!", "ALLUPPERCASE1!", "NoDigits!!", "NoSymbols123"}
	for _, p := range good {
		if !validate.Password(p) {
			t.Errorf("Password(%q) rejected", p)
		}
	}
	for _, p := range bad {
		if validate.Password(p) {
			t.Errorf("Password(%q) accepted", p)
		}
	}
}

func TestShippingForm(t *testing.T) {
	form := map[string]string{
		"full_name":    "Ada Tester",
		"email":        "ada@inkwell.test",
		"phone_number": "+1 301 555 0100",
		"address":      "4521 Paper Mill Rd",
		"city":         "College Park",
		"postal_code":  "20742",
		"country":      "USA",
	}
	get := func(k string) string { return form[k] }

	s, errs := validate.ShippingForm(get)
	if errs != nil {
		t.Fatalf("valid form rejected: %v", errs)
	}
	if s.City != "College Park" {
		t.Fatalf("bad parse: %+v", s)
	}

	form["email"] = "nope"
	form["postal_code"] = ""
	if _, errs = validate.ShippingForm(get); len(errs) != 2 {
		t.Fatalf("want 2 field errors, got %v", errs)
	}
	if _, ok := errs["email"]; !ok {
		t.Fatalf("missing email error: %v", errs)
	}
}

func TestSignupFormOptionalAddressLine(t *testing.T) {
	form := map[string]string{
		"name":          "Clio",
		"email":         "clio@inkwell.test",
		"password":      "Sup3r-Secret",
		"phone_number":  "+1 301 555 0199",
		"address_line1": "12 Quill St",
		"city":          "Annapolis",
		"postal_code":   "21401",
		"country":       "USA",
	}
	get := func(k string) string { return form[k] }

	f, errs := validate.SignupForm(get)
	if errs != nil {
		t.Fatalf("valid form rejected: %v", errs)
	}
	if f.AddressLine2 != "" {
		t.Fatalf("address_line2 should stay empty, got %q", f.AddressLine2)
	}

	form["password"] = "weak"
	if _, errs = validate.SignupForm(get); errs["password"] == "" {
		t.Fatal("weak password accepted")
	}
}
