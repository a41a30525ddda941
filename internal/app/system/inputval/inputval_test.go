package inputval

import "testing"

type sampleIn struct {
	Name      string `json:"name" validate:"required,max=10" label:"Name"`
	Email     string `json:"email" validate:"omitempty,email" label:"Email"`
	Website   string `json:"website" validate:"omitempty,httpurl" label:"Website"`
	Placement string `json:"placement" validate:"omitempty,placement" label:"Placement"`
}

func TestValidateReportsFieldAndLabel(t *testing.T) {
	result := Validate(sampleIn{})
	if !result.HasErrors() {
		t.Fatal("missing name should fail")
	}
	fe := result.First()
	if fe.Field != "name" {
		t.Errorf("field: got %q, want json name", fe.Field)
	}
	if fe.Message != "Name is required." {
		t.Errorf("message: got %q", fe.Message)
	}
}

func TestValidatePasses(t *testing.T) {
	result := Validate(sampleIn{
		Name:      "ok",
		Email:     "a@b.com",
		Website:   "https://example.com",
		Placement: "home_spotlight",
	})
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %s", result.All())
	}
}

func TestValidateCustomRules(t *testing.T) {
	if r := Validate(sampleIn{Name: "ok", Website: "ftp://example.com"}); !r.HasErrors() {
		t.Error("non-http scheme should fail httpurl")
	}
	if r := Validate(sampleIn{Name: "ok", Placement: "popunder"}); !r.HasErrors() {
		t.Error("unknown placement should fail")
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last@example.org"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("%q should be valid", e)
		}
	}
	invalid := []string{"", "not-an-email", "Name <a@b.com>", "a@"}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("%q should be invalid", e)
		}
	}
}

func TestIsValidHTTPURL(t *testing.T) {
	if !IsValidHTTPURL("http://example.com") || !IsValidHTTPURL("https://example.com/x?y=1") {
		t.Error("http/https URLs should be valid")
	}
	for _, s := range []string{"", "javascript:alert(1)", "//no-scheme.example"} {
		if IsValidHTTPURL(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestIsValidObjectID(t *testing.T) {
	if !IsValidObjectID("64b2f0c45e7a9d0012345678") {
		t.Error("well-formed hex should be valid")
	}
	for _, s := range []string{"", "undefined", "xyz"} {
		if IsValidObjectID(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}
