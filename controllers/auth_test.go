package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"bookline-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(store storage.Storage) *gin.Engine {
	r := gin.New()
	ac := NewAuthController(store)
	r.POST("/auth/register", ac.Register)
	r.POST("/auth/login", ac.Login)
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupAuthRouter(store)

	w := performJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "jamie",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)

	// Password is never echoed back.
	assert.NotContains(t, w.Body.String(), "hunter2")

	w = performJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "jamie",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = performJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "jamie",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "jamie",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupAuthRouter(store)

	w := performJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "jamie",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
