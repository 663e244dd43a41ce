package utils

import "testing"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("sess-42")
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	sessionID, err := ValidateSessionToken(token)
	if err != nil {
		t.Fatalf("ValidateSessionToken: %v", err)
	}
	if sessionID != "sess-42" {
		t.Fatalf("sessionID = %q, want sess-42", sessionID)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := ValidateSessionToken("not-a-token"); err == nil {
		t.Fatal("garbage token must not validate")
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	token, err := GenerateSessionToken("sess-42")
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateSessionToken(tampered); err == nil {
		t.Fatal("tampered token must not validate")
	}
}
