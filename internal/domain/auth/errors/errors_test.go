package errors

import "testing"

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}
}

func TestValidationKinds(t *testing.T) {
	if !IsInvalidArgument(ErrInvalidEmail) || !IsInvalidEmail(ErrInvalidEmail) {
		t.Fatal("invalid email must be an invalid argument")
	}
	if !IsInvalidArgument(ErrWeakPassword) || IsInvalidEmail(ErrWeakPassword) {
		t.Fatal("weak password must be an invalid argument only")
	}
}

func TestExpiredIsInvalidToken(t *testing.T) {
	if !IsInvalidToken(ErrTokenExpired) {
		t.Fatal("expired token must match invalid token")
	}
	if IsTokenExpired(ErrInvalidToken) {
		t.Fatal("plain invalid token must not look expired")
	}
}
