package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"stablegate/internal/core/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

type fakeMerchantRepo struct {
	byHash map[string]*domain.Merchant
	err    error
}

func (f *fakeMerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	return nil, nil
}

func (f *fakeMerchantRepo) GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Merchant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byHash[apiKeyHash], nil
}

func TestAPIKeyAuth_MissingHeader(t *testing.T) {
	repo := &fakeMerchantRepo{byHash: map[string]*domain.Merchant{}}
	router := gin.New()
	router.GET("/test", APIKeyAuth(repo, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyAuth_UnknownKey(t *testing.T) {
	repo := &fakeMerchantRepo{byHash: map[string]*domain.Merchant{}}
	router := gin.New()
	router.GET("/test", APIKeyAuth(repo, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderAPIKey, "unknown-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyAuth_InactiveMerchant(t *testing.T) {
	const rawKey = "mk_live_abc123"
	hashHex := sha256Hex(rawKey)
	merchant := &domain.Merchant{ID: uuid.New(), Active: false}
	repo := &fakeMerchantRepo{byHash: map[string]*domain.Merchant{hashHex: merchant}}

	router := gin.New()
	router.GET("/test", APIKeyAuth(repo, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderAPIKey, rawKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAPIKeyAuth_Success(t *testing.T) {
	const rawKey = "mk_live_abc123"
	hashHex := sha256Hex(rawKey)
	merchantID := uuid.New()
	merchant := &domain.Merchant{ID: merchantID, Active: true}
	repo := &fakeMerchantRepo{byHash: map[string]*domain.Merchant{hashHex: merchant}}

	var gotMerchantID any
	router := gin.New()
	router.GET("/test", APIKeyAuth(repo, zerolog.Nop()), func(c *gin.Context) {
		gotMerchantID, _ = c.Get(CtxMerchantID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderAPIKey, rawKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, merchantID.String(), gotMerchantID)
}

func TestProviderWebhookAuth_MismatchedSecret(t *testing.T) {
	router := gin.New()
	router.POST("/test", ProviderWebhookAuth("correct-secret"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set(HeaderProviderSignature, "wrong-secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProviderWebhookAuth_Success(t *testing.T) {
	router := gin.New()
	router.POST("/test", ProviderWebhookAuth("correct-secret"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set(HeaderProviderSignature, "correct-secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
