package jwt

import (
	"testing"
	"time"

	"aerocode/backend/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 8 * time.Hour,
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("000.000.000-00", "admin", 1)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.CPF != "000.000.000-00" {
		t.Errorf("期望 CPF=000.000.000-00，实际=%s", claims.CPF)
	}
	if claims.Login != "admin" {
		t.Errorf("期望 Login=admin，实际=%s", claims.Login)
	}
	if claims.Level != 1 {
		t.Errorf("期望 Level=1，实际=%d", claims.Level)
	}
	if claims.Issuer != "aerocode" {
		t.Errorf("期望 Issuer=aerocode，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 7*time.Hour || ttl > 9*time.Hour {
		t.Errorf("TTL 期望约8h，实际=%v", ttl)
	}
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	m := newTestManager()
	t1, _ := m.GenerateToken("111.111.111-11", "engenheiro", 2)
	t2, _ := m.GenerateToken("111.111.111-11", "engenheiro", 2)

	c1, _ := m.ParseToken(t1)
	c2, _ := m.ParseToken(t2)
	if c1 == nil || c2 == nil {
		t.Fatal("解析失败")
	}
	if c1.ID == c2.ID {
		t.Error("两次签发的 JTI 不应相同")
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	if _, err := m.ParseToken("invalid.token.string"); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "different-secret-key",
		AccessTokenTTL: time.Hour,
	})

	token, _ := m1.GenerateToken("000.000.000-00", "admin", 1)
	if _, err := m2.ParseToken(token); err == nil {
		t.Error("不同密钥签名的 token 不应通过验证")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := newTestManager()
	issuedAt := time.Now().Add(-24 * time.Hour)
	m.now = func() time.Time { return issuedAt }

	token, err := m.GenerateToken("000.000.000-00", "admin", 1)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	m.now = time.Now
	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}
