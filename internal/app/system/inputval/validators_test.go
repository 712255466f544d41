package inputval

import "testing"

func TestIsValidHTTPURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"http://example.com", true},
		{"https://api.runpro9ja.com/api", true},
		{"http://localhost:8080", true},
		{"  https://example.com  ", true},

		{"", false},
		{"ftp://example.com", false},
		{"mailto:user@example.com", false},
		{"example.com", false},
		{"//example.com", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := IsValidHTTPURL(tt.url); got != tt.want {
				t.Errorf("IsValidHTTPURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"FFFFFFFFFFFFFFFFFFFFFFFF", true},
		{"  507f1f77bcf86cd799439011  ", true},
		{"", false},
		{"507f1f77bcf86cd79943901", false},
		{"507f1f77bcf86cd79943901g", false},
		{"12345", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsValidObjectID(tt.id); got != tt.want {
				t.Errorf("IsValidObjectID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	type deletionInput struct {
		Email   string `validate:"required,email" label:"Email address"`
		Reason  string `validate:"reason" label:"Reason"`
		Message string `validate:"max=10" label:"Message"`
	}

	tests := []struct {
		name      string
		input     deletionInput
		wantFirst string
	}{
		{"valid", deletionInput{Email: "ada@example.com", Reason: "not-using"}, ""},
		{"reason optional", deletionInput{Email: "ada@example.com"}, ""},
		{"missing email", deletionInput{Message: "bye"}, "Email address is required."},
		{"bad email", deletionInput{Email: "not-an-email"}, "A valid email address is required."},
		{"unknown reason", deletionInput{Email: "ada@example.com", Reason: "spite"}, "Choose a reason from the list."},
		{"message too long", deletionInput{Email: "ada@example.com", Message: "much too long a message"}, "Message must be at most 10 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.input)
			if res.HasErrors() != (tt.wantFirst != "") {
				t.Fatalf("HasErrors = %v, errors %v", res.HasErrors(), res.Errors)
			}
			if got := res.First(); got != tt.wantFirst {
				t.Errorf("First() = %q, want %q", got, tt.wantFirst)
			}
		})
	}
}

func TestValidate_AdminRole(t *testing.T) {
	type createInput struct {
		Role string `validate:"required,adminrole" label:"Role"`
	}
	if res := Validate(&createInput{Role: "admin_customer_service"}); res.HasErrors() {
		t.Errorf("valid role rejected: %v", res.Errors)
	}
	if got := Validate(createInput{Role: "customer"}).First(); got != "Choose a valid role." {
		t.Errorf("First() = %q, want %q", got, "Choose a valid role.")
	}
}

func TestResult_All(t *testing.T) {
	r := &Result{}
	if r.All() != "" || r.First() != "" {
		t.Errorf("empty result: All() = %q, First() = %q", r.All(), r.First())
	}

	r = &Result{Errors: []FieldError{{Message: "Error 1"}, {Message: "Error 2"}}}
	if got, want := r.All(), "Error 1; Error 2"; got != want {
		t.Errorf("All() = %q, want %q", got, want)
	}
	if got := r.First(); got != "Error 1" {
		t.Errorf("First() = %q, want %q", got, "Error 1")
	}
}
