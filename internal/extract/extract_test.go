package extract

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	a := &Article{URL: "https://a.com", Title: "A", TextContent: "body", Length: 4}
	data, err := Encode(a)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got := Decode(data)
	if got == nil {
		t.Fatal("expected decoded article")
	}
	if got.URL != a.URL || got.Title != a.Title || got.TextContent != a.TextContent {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestDecodeCorruptReturnsNil(t *testing.T) {
	if got := Decode([]byte("{broken")); got != nil {
		t.Errorf("expected nil for corrupt payload, got %+v", got)
	}
}
