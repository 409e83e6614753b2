//go:build integration

package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"crbklasemen/models"
	"crbklasemen/pkg/identity"
	"crbklasemen/pkg/testdb"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Runs against a real PostgreSQL container: go test -tags integration .
func TestPostgresFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validatorsOnce.Do(func() {
		if err := registerValidators(); err != nil {
			t.Fatalf("register validators: %v", err)
		}
	})
	gdb := testdb.OpenPostgres(t)
	ids := identity.NewService(gdb).WithCost(bcrypt.MinCost)
	bindStore(gdb, ids)
	r := gin.New()
	setupRoutes(r)
	token := login(t, r)

	if resp := performRequest(r, http.MethodGet, "/healthz", nil, "", ""); resp.Code != http.StatusOK {
		t.Fatalf("healthz status=%d body=%s", resp.Code, resp.Body.String())
	}

	if resp := uploadCSV(t, r, "/klasemen/import", token, brokenCSV); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	got := decode[[]models.Klasemen](t, performRequest(r, http.MethodGet, "/klasemen", nil, token, ""))
	if len(got) != 2 {
		t.Fatalf("expected 2 committed rows, got %d", len(got))
	}

	// the unique index catches a duplicate that slips past the pre-check
	dup := models.Identity{Email: "root@ceriabet.test", HashedPassword: []byte("x")}
	err := gdb.WithContext(context.Background()).Create(&dup).Error
	if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated key error, got %v", err)
	}
	resp := performJSON(r, http.MethodPost, "/admins", map[string]any{"username": "dupe", "email": "root@ceriabet.test", "password": "rahasia1"}, token)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}
