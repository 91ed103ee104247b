package set

import "testing"

func TestSet(t *testing.T) {
	S := Make("b", "a")
	if !S.Contains("a") || S.Contains("c") {
		t.Fatalf("wrong membership: %s", S)
	}
	if S.Insert("a") || !S.Insert("c") {
		t.Fatalf("Insert should report whether the element was new")
	}
	if S.Len() != 3 || S.String() != "{a, b, c}" {
		t.Fatalf("wrong set: %s", S)
	}
}
