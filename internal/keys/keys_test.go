package keys

import "testing"

func TestFingerprintPK_Deterministic(t *testing.T) {
	a := FingerprintPK("u1", "abc")
	b := FingerprintPK("u1", "abc")
	if a != b {
		t.Errorf("expected identical keys, got %q and %q", a, b)
	}
}

func TestFingerprintPK_Length(t *testing.T) {
	pk := FingerprintPK("u1", "abc")
	// 128-bit hash rendered as hex.
	if len(pk) != 32 {
		t.Errorf("expected 32 hex chars, got %d (%q)", len(pk), pk)
	}
}

func TestFingerprintPK_Distinct(t *testing.T) {
	tests := []struct {
		name       string
		userA, idA string
		userB, idB string
	}{
		{"different users, same identifier", "u1", "abc", "u2", "abc"},
		{"same user, different identifiers", "u1", "abc", "u1", "abd"},
		{"identifier case differs", "u1", "abc", "u1", "ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := FingerprintPK(tt.userA, tt.idA)
			b := FingerprintPK(tt.userB, tt.idB)
			if a == b {
				t.Errorf("expected distinct keys, both %q", a)
			}
		})
	}
}
