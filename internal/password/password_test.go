package password_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/password"
)

// testParams keeps hashing cheap in tests. The minimums don't matter
// here; correctness is what's under test, not cost.
func testParams() password.Params {
	return password.Params{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashVerify_RoundTrip(t *testing.T) {
	h := password.NewHasher(testParams())

	digest, err := h.Hash("Str0ng!Pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(digest, "$argon2id$") {
		t.Errorf("digest %q is not PHC argon2id", digest)
	}

	ok, err := h.Verify("Str0ng!Pass", digest)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Error("correct password did not verify")
	}
}

func TestVerify_WrongPassword_False(t *testing.T) {
	h := password.NewHasher(testParams())

	digest, err := h.Hash("Str0ng!Pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := h.Verify("Wr0ng!Pass", digest)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Error("wrong password verified")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	h := password.NewHasher(testParams())

	first, err := h.Hash("Str0ng!Pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("Str0ng!Pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical; salt is not random")
	}
}

func TestHash_TooLong_Rejected(t *testing.T) {
	h := password.NewHasher(testParams())

	_, err := h.Hash(strings.Repeat("a", 129))
	if !errors.Is(err, password.ErrPasswordTooLong) {
		t.Errorf("want ErrPasswordTooLong, got %v", err)
	}

	// Exactly at the cap is fine.
	if _, err := h.Hash(strings.Repeat("a", 128)); err != nil {
		t.Errorf("128-char password rejected: %v", err)
	}
}

func TestVerify_MalformedDigest_Errors(t *testing.T) {
	h := password.NewHasher(testParams())

	for _, digest := range []string{
		"",
		"not-a-digest",
		"$argon2id$v=19$m=8192,t=1,p=1$short",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",
	} {
		if _, err := h.Verify("whatever", digest); !errors.Is(err, password.ErrMalformedDigest) {
			t.Errorf("digest %q: want ErrMalformedDigest, got %v", digest, err)
		}
	}
}
