package classify

import (
	"reflect"
	"testing"
)

func TestClassifySingleSector(t *testing.T) {
	got := Keyword{}.Classify("LockBit affiliates target European logistics firms")
	want := []string{"Ransomware"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyMultipleSectorsCanonicalOrder(t *testing.T) {
	got := Keyword{}.Classify("Hospital hit by ransomware, patient data breach confirmed")
	want := []string{"Healthcare", "Ransomware", "Data Breach"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyMultiWordKeyword(t *testing.T) {
	got := Keyword{}.Classify("Attackers probed the regional power grid for weeks")
	want := []string{"Energy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifySingleWordMatchesWholeTokensOnly(t *testing.T) {
	// "bankruptcy" must not match the "bank" keyword.
	if got := (Keyword{}).Classify("Retailer files for bankruptcy protection"); len(got) != 0 {
		t.Errorf("expected no labels, got %v", got)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	if got := (Keyword{}).Classify("Local bakery wins pastry award"); len(got) != 0 {
		t.Errorf("expected no labels, got %v", got)
	}
}

func TestClassifyPunctuationStripped(t *testing.T) {
	got := Keyword{}.Classify(`"Ransomware!" warns the advisory.`)
	want := []string{"Ransomware"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
