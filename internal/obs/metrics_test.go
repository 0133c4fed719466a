package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                         "/",
		"/metrics":                 "/metrics",
		"/v1/accounts":             "/v1/accounts",
		"/v1/accounts/CB-2024-001": "/v1/accounts/:number",
		"/v1/accounts/CB-2024-001/ledger":          "/v1/accounts/:number/ledger",
		"/v1/accounts/CB-2024-001/ledger?limit=10": "/v1/accounts/:number/ledger",
		"/v1/withdrawals/01J0ABCDEF/confirmation":  "/v1/withdrawals/:token/confirmation",
		"/v1/transfers": "/v1/transfers",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
