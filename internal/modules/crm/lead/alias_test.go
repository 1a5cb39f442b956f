package lead

import "testing"

func TestCanonicalField(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"name", "full_name"},
		{"fullname", "full_name"},
		{"full_name", "full_name"},
		{"Full Name", "full_name"},
		{"mobile", "phone"},
		{"MOBILE_NUMBER", "phone"},
		{"phone_number", "phone"},
		{"company", "company_name"},
		{"status", "lead_status"},
		{"source", "lead_source"},
		{"notes", "message"},
		{"comments", "message"},
		{"email", "email"},
		{"expected_deal_value", "expected_deal_value"},
		{"unknown_column", ""},
		{"id", ""},
		{"", ""},
	}
	for _, tc := range cases {
		got := CanonicalField(tc.in)
		if got != tc.want {
			t.Errorf("CanonicalField(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveFields(t *testing.T) {
	raw := map[string]interface{}{
		"name":    "Asha Kulkarni",
		"mobile":  "p:+919876543210",
		"company": "Acme Pvt Ltd",
		"status":  "contacted",
		"junk":    true,
		"__proto": "ignored",
	}
	out := ResolveFields(raw)

	if out["full_name"] != "Asha Kulkarni" {
		t.Errorf("full_name = %v, expected Asha Kulkarni", out["full_name"])
	}
	if out["phone"] != "p:+919876543210" {
		t.Errorf("phone = %v, expected raw value preserved", out["phone"])
	}
	if out["company_name"] != "Acme Pvt Ltd" {
		t.Errorf("company_name = %v, expected Acme Pvt Ltd", out["company_name"])
	}
	if out["lead_status"] != "contacted" {
		t.Errorf("lead_status = %v, expected contacted", out["lead_status"])
	}
	if _, ok := out["junk"]; ok {
		t.Error("unknown field junk should be dropped")
	}
	if _, ok := out["__proto"]; ok {
		t.Error("unknown field __proto should be dropped")
	}
}

func TestResolveFieldsCanonicalWins(t *testing.T) {
	raw := map[string]interface{}{
		"full_name": "Canonical Name",
		"name":      "Synonym Name",
	}
	out := ResolveFields(raw)
	if out["full_name"] != "Canonical Name" {
		t.Errorf("full_name = %v, expected the canonical key to win", out["full_name"])
	}
}
