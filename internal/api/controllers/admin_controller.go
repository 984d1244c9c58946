package controllers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tralli/internal/models/request_models"
	"tralli/internal/schema"
	"tralli/internal/services"
	"tralli/pkg/utils"
)

// AdminController guards the write side of the index: a password login that
// issues a short-lived token, and the ingestion endpoint behind it.
type AdminController struct {
	ingestService services.IngestServiceInterface
}

func NewAdminController(ingestService services.IngestServiceInterface) *AdminController {
	return &AdminController{
		ingestService: ingestService,
	}
}

func (a *AdminController) Login(c *gin.Context) {
	var req request_models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "password is required")
		return
	}

	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if passwordHash == "" {
		utils.RespondError(c, http.StatusServiceUnavailable, "Admin login is not configured")
		return
	}

	if err := utils.ComparePasswords(passwordHash, req.Password); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.CreateToken(uuid.New(), "admin")
	if errors.Is(err, utils.ErrAuthNotConfigured) {
		utils.RespondError(c, http.StatusServiceUnavailable, "Admin login is not configured")
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create token")
		return
	}

	utils.RespondSuccess(c, gin.H{"token": token}, "login successful")
}

func (a *AdminController) Ingest(c *gin.Context) {
	var req request_models.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "city, category and records are required")
		return
	}

	category, err := schema.ParseCategory(req.Category)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unknown category")
		return
	}

	count, err := a.ingestService.Ingest(c.Request.Context(), req.City, category, req.Records)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"upserted": count}, "records ingested successfully")
}

// Upsert adds or updates individual records without reindexing the namespace.
func (a *AdminController) Upsert(c *gin.Context) {
	var req request_models.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "city, category and records are required")
		return
	}

	category, err := schema.ParseCategory(req.Category)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unknown category")
		return
	}

	count, err := a.ingestService.Append(c.Request.Context(), req.City, category, req.Records)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"upserted": count}, "records upserted successfully")
}
