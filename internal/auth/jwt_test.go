package auth

import (
	"testing"

	"github.com/awnhq/assetportal/internal/model"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testSecret, 42, "jo@awn.net", model.RoleManager)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "jo@awn.net" {
		t.Errorf("expected email jo@awn.net, got %q", claims.Email)
	}
	if claims.Role != model.RoleManager {
		t.Errorf("expected role manager, got %q", claims.Role)
	}
	if claims.ID == "" {
		t.Error("expected a non-empty JTI")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, 1, "a@awn.net", model.RoleEmployee)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken("other-secret", token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken(testSecret, "not-a-token"); err == nil {
		t.Error("expected validation to fail for garbage input")
	}
}

func TestTokensHaveUniqueJTI(t *testing.T) {
	t1, _ := GenerateToken(testSecret, 1, "a@awn.net", model.RoleEmployee)
	t2, _ := GenerateToken(testSecret, 1, "a@awn.net", model.RoleEmployee)

	c1, _ := ValidateToken(testSecret, t1)
	c2, _ := ValidateToken(testSecret, t2)

	if c1.ID == c2.ID {
		t.Error("expected distinct JTIs for separately issued tokens")
	}
}
