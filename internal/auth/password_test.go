package auth

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pw")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "s3cret-pw" {
		t.Fatalf("hash equals plaintext")
	}
	if !CheckPassword("s3cret-pw", hash) {
		t.Fatalf("correct password did not verify")
	}
	if CheckPassword("wrong-pw", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestHashPassword_SaltRandomized(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash 1: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash 2: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected different hashes for same password")
	}
	if !CheckPassword("same-password", h1) || !CheckPassword("same-password", h2) {
		t.Fatalf("both hashes must verify")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash verified")
	}
	if CheckPassword("anything", "") {
		t.Fatalf("empty hash verified")
	}
}
