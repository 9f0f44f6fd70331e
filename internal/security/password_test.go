package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	password := "correct horse battery staple"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == password {
		t.Fatal("HashPassword() returned unusable hash")
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword() rejected correct password")
	}
	if CheckPassword("wrong password", hash) {
		t.Error("CheckPassword() accepted wrong password")
	}
}
