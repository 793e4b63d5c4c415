package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reSlug   = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	rePhone  = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
	rePostal = regexp.MustCompile(`^[A-Za-z0-9 -]{3,20}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Slug validates category/product slugs used in URLs.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 200 && reSlug.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

func PostalCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePostal.MatchString(s)
}

// Name validates a displayable person name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 100
}

// Text validates a free-form required field (address, city, country,
// contact message) with a length cap.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= max
}

// Qty parses a cart quantity. Unparseable input falls back to 1;
// anything above 50 is clamped to avoid abuse.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// DiscountPct parses and clamps a discount percentage into [0,100].
func DiscountPct(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// Password enforces the signup/login password policy.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// Shipping is the checkout form after validation.
type Shipping struct {
	FullName    string
	Email       string
	PhoneNumber string
	Address     string
	City        string
	PostalCode  string
	Country     string
}

// ShippingForm validates the checkout fields and returns field-level
// errors keyed by input name.
func ShippingForm(get func(string) string) (Shipping, map[string]string) {
	errs := map[string]string{}
	s := Shipping{}
	var ok bool

	if s.FullName, ok = Name(get("full_name")); !ok {
		errs["full_name"] = "Enter your full name"
	}
	if s.Email, ok = Email(get("email")); !ok {
		errs["email"] = "Enter a valid email address"
	}
	if s.PhoneNumber, ok = Phone(get("phone_number")); !ok {
		errs["phone_number"] = "Enter a valid phone number"
	}
	if s.Address, ok = Text(get("address"), 300); !ok {
		errs["address"] = "Enter your complete delivery address"
	}
	if s.City, ok = Text(get("city"), 100); !ok {
		errs["city"] = "Enter your city"
	}
	if s.PostalCode, ok = PostalCode(get("postal_code")); !ok {
		errs["postal_code"] = "Enter a valid postal code"
	}
	if s.Country, ok = Text(get("country"), 100); !ok {
		errs["country"] = "Enter your country"
	}
	if len(errs) > 0 {
		return Shipping{}, errs
	}
	return s, nil
}

// Signup is the account creation form after validation.
type Signup struct {
	Name         string
	Email        string
	Password     string
	PhoneNumber  string
	AddressLine1 string
	AddressLine2 string
	City         string
	PostalCode   string
	Country      string
}

// SignupForm validates account creation input.
func SignupForm(get func(string) string) (Signup, map[string]string) {
	errs := map[string]string{}
	f := Signup{}
	var ok bool

	if f.Name, ok = Name(get("name")); !ok {
		errs["name"] = "Enter your name"
	}
	if f.Email, ok = Email(get("email")); !ok {
		errs["email"] = "Enter a valid email address"
	}
	f.Password = get("password")
	if !Password(f.Password) {
		errs["password"] = "Password must be 8-64 chars with upper, lower, digit and symbol"
	}
	if f.PhoneNumber, ok = Phone(get("phone_number")); !ok {
		errs["phone_number"] = "Enter a valid phone number"
	}
	if f.AddressLine1, ok = Text(get("address_line1"), 255); !ok {
		errs["address_line1"] = "Enter your address"
	}
	f.AddressLine2 = strings.TrimSpace(get("address_line2")) // optional
	if len(f.AddressLine2) > 255 {
		errs["address_line2"] = "Address line is too long"
	}
	if f.City, ok = Text(get("city"), 100); !ok {
		errs["city"] = "Enter your city"
	}
	if f.PostalCode, ok = PostalCode(get("postal_code")); !ok {
		errs["postal_code"] = "Enter a valid postal code"
	}
	if f.Country, ok = Text(get("country"), 100); !ok {
		errs["country"] = "Enter your country"
	}
	if len(errs) > 0 {
		return Signup{}, errs
	}
	return f, nil
}
