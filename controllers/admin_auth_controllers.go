package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/service-booking/middlewares"
	"github.com/yeremiapane/service-booking/models"
	"github.com/yeremiapane/service-booking/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminAuthController struct {
	DB     *gorm.DB
	Tokens *utils.TokenManager
}

func NewAdminAuthController(db *gorm.DB, tokens *utils.TokenManager) *AdminAuthController {
	return &AdminAuthController{DB: db, Tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login -> return bearer JWT untuk admin
func (ac *AdminAuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}

	var admin models.Admin
	err := ac.DB.WithContext(c.Request.Context()).
		Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&admin).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, utils.StoreError("Server error during login.", err))
		return
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		utils.InfoLogger.Warnf("Failed admin login attempt for: %s", req.Email)
		utils.RespondError(c, utils.Unauthorized("Invalid credentials"))
		return
	}

	token, err := ac.Tokens.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		utils.RespondError(c, utils.StoreError("Server error during login.", err))
		return
	}

	utils.InfoLogger.Printf("Admin login successful: %s", admin.Email)

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(ac.Tokens.TTL() / time.Second),
	})
}

// Logout -> token dimasukkan ke blacklist sampai kadaluarsa
func (ac *AdminAuthController) Logout(c *gin.Context) {
	token := c.GetString(middlewares.ContextToken)
	claimsValue, _ := c.Get(middlewares.ContextAdminClaims)
	claims, ok := claimsValue.(*utils.AdminClaims)
	if token == "" || !ok || claims.ExpiresAt == nil {
		utils.RespondError(c, utils.Unauthorized("Unauthorized. Access token is invalid."))
		return
	}

	ac.Tokens.RevokeToken(token, claims.ExpiresAt.Time)
	utils.RespondJSON(c, http.StatusOK, "Successfully logged out", nil)
}
