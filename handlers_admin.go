package main

import (
	"errors"
	"net/http"

	"crbklasemen/models"
	"crbklasemen/pkg/identity"

	"github.com/gin-gonic/gin"
)

type adminRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Divisi     string `json:"divisi"`
	Keterangan string `json:"keterangan"`
}

func listAdminsHandler(c *gin.Context) {
	rows, err := admins.List(c.Request.Context())
	if err != nil {
		serverError(c, "Gagal memuat data admin", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func createAdminHandler(c *gin.Context) {
	var req adminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email dan password wajib diisi"})
		return
	}
	a := models.Admin{Username: req.Username, Email: req.Email, Divisi: req.Divisi, Keterangan: req.Keterangan}
	err := admins.Create(c.Request.Context(), &a, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "Admin berhasil ditambahkan", "data": a})
	case errors.Is(err, identity.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "Email sudah digunakan"})
	case errors.Is(err, identity.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password minimal 6 karakter"})
	case errors.Is(err, identity.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email tidak valid"})
	default:
		serverError(c, "Gagal menyimpan admin", err)
	}
}

// updateAdminHandler ignores email and password; both belong to the identity.
func updateAdminHandler(c *gin.Context) {
	var req adminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a := models.Admin{Username: req.Username, Divisi: req.Divisi, Keterangan: req.Keterangan}
	if err := admins.Update(c.Request.Context(), c.Param("id"), &a); err != nil {
		writeFailed(c, "Gagal menyimpan admin", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin berhasil diperbarui"})
}

func deleteAdminHandler(c *gin.Context) {
	if err := admins.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeFailed(c, msgDeleteFailed, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin berhasil dihapus"})
}
