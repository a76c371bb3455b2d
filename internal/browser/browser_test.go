package browser

import "testing"

func TestOpenRejectsNonHTTPSchemes(t *testing.T) {
	for _, raw := range []string{
		"file:///etc/passwd",
		"javascript:alert(1)",
		"ftp://example.com",
	} {
		if err := Open(raw); err == nil {
			t.Errorf("Open(%q): expected error", raw)
		}
	}
}

func TestOpenRejectsUnparsableURL(t *testing.T) {
	if err := Open("http://bad url %"); err == nil {
		t.Error("expected error for unparsable url")
	}
}
