package reflection

import "testing"

func TestBank(t *testing.T) {
	qs, err := Bank()
	if err != nil {
		t.Fatalf("Bank: %v", err)
	}
	if len(qs) != 20 {
		t.Fatalf("bank size: want=20 got=%d", len(qs))
	}
	seen := map[string]bool{}
	for _, q := range qs {
		if seen[q] {
			t.Fatalf("duplicate question %q", q)
		}
		seen[q] = true
	}
}
