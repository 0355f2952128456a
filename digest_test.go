package rainbow

import "testing"

func TestHashTypeRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	cases := []struct {
		h HashType
		w int
		s string
	}{
		{HashSHA1, 20, "SHA1"},
		{HashSHA256, 32, "SHA256"},
		{HashBLAKE512, 64, "BLAKE512"},
	}

	for _, c := range cases {
		assert(c.h.Valid(), "%s should be valid", c.s)
		assert(c.h.Width() == c.w, "%s width = %d, want %d", c.s, c.h.Width(), c.w)
		assert(c.h.String() == c.s, "String() = %q, want %q", c.h.String(), c.s)
		assert(ParseHashType(c.s) == c.h, "ParseHashType(%q) != %s", c.s, c.s)
		assert(ParseHashType(c.s) == c.h, "round trip through ParseHashType")
	}

	assert(!HashUnknown.Valid(), "zero value must not be valid")
	assert(ParseHashType("bogus") == HashUnknown, "unknown name maps to HashUnknown")
}

func TestDigestDeterministic(t *testing.T) {
	assert := newAsserter(t)

	plain := []byte("hunter2")
	for _, h := range []HashType{HashSHA1, HashSHA256, HashBLAKE512} {
		a := h.Digest(plain)
		b := h.Digest(plain)
		assert(len(a) == h.Width(), "digest width mismatch for %s", h)
		assert(string(a) == string(b), "%s digest is not deterministic", h)
	}

	assert(string(HashSHA256.Digest([]byte("a"))) != string(HashSHA256.Digest([]byte("b"))),
		"different inputs should (almost certainly) differ")
}

func TestDigestPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Digest on an unknown hash type should panic")
		}
	}()
	HashUnknown.Digest([]byte("x"))
}
