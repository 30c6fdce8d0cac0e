package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/bruno-duarte/afinpe-api/internal/config"
	"github.com/bruno-duarte/afinpe-api/internal/models"
	"github.com/bruno-duarte/afinpe-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// AuthHandler serves registration, JWT issuance and social login.
type AuthHandler struct {
	DB         *gorm.DB
	JWT        config.JWTConfig
	BcryptCost int
	HTTPClient *http.Client
}

func NewAuthHandler(db *gorm.DB, jwtCfg config.JWTConfig, bcryptCost int) *AuthHandler {
	if bcryptCost <= 0 {
		bcryptCost = 12
	}
	if jwtCfg.AccessExpireHours <= 0 {
		jwtCfg.AccessExpireHours = 24
	}
	if jwtCfg.RefreshExpireHours <= 0 {
		jwtCfg.RefreshExpireHours = 24 * 7
	}
	return &AuthHandler{
		DB:         db,
		JWT:        jwtCfg,
		BcryptCost: bcryptCost,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *AuthHandler) tokenPair(userID string) (access, refresh string, err error) {
	return util.GenerateTokenPair(
		h.JWT.Secret, h.JWT.Issuer, userID,
		time.Duration(h.JWT.AccessExpireHours)*time.Hour,
		time.Duration(h.JWT.RefreshExpireHours)*time.Hour,
	)
}

func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"personId": u.PersonID,
		"created":  u.CreatedAt,
		"modified": u.UpdatedAt,
	}
}

// ---------- register ----------

type registerReq struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName" binding:"required"`
}

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_.@+-]{3,150}$`)

// Register creates a Person and its User and returns the user joined
// with a fresh token pair.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payload")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if !usernameRe.MatchString(req.Username) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid username")
		return
	}
	if len(req.Password) < 8 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password must have at least 8 characters")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", req.Username).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup user failed")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "hash password failed")
		return
	}

	person := models.Person{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		FullName:  req.FullName,
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&person).Error; err != nil {
			return err
		}
		user.PersonID = person.ID
		return tx.Create(&user).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create user failed")
		return
	}

	access, refresh, err := h.tokenPair(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "issue token failed")
		return
	}

	payload := userPayload(&user)
	payload["access"] = access
	payload["refresh"] = refresh
	c.JSON(http.StatusCreated, payload)
}

// ---------- jwt create / refresh / verify ----------

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateToken handles POST /auth/jwt/create: username/password login
// returning the access/refresh pair plus user data.
func (h *AuthHandler) CreateToken(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payload")
		return
	}

	var user models.User
	err := h.DB.Where("LOWER(username) = LOWER(?)", strings.TrimSpace(req.Username)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup user failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
		return
	}

	access, refresh, err := h.tokenPair(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "issue token failed")
		return
	}

	util.JSON(c, gin.H{
		"access":  access,
		"refresh": refresh,
		"user":    userPayload(&user),
	})
}

type refreshReq struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payload")
		return
	}

	claims, err := util.ParseToken(h.JWT.Secret, req.Refresh)
	if err != nil || claims.TokenType != util.TokenRefresh {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid refresh token")
		return
	}

	access, err := util.GenerateToken(
		h.JWT.Secret, h.JWT.Issuer, util.TokenAccess, claims.UserID,
		time.Duration(h.JWT.AccessExpireHours)*time.Hour,
	)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "issue token failed")
		return
	}

	util.JSON(c, gin.H{"access": access})
}

type verifyReq struct {
	Token string `json:"token" binding:"required"`
}

// VerifyToken reports whether a token is currently valid.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payload")
		return
	}

	if _, err := util.ParseToken(h.JWT.Secret, req.Token); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid token")
		return
	}
	util.JSON(c, gin.H{})
}

// ---------- social login ----------

type socialLoginReq struct {
	Provider string `json:"provider" binding:"required,oneof=google apple"`
	Token    string `json:"token" binding:"required"`
}

// SocialLogin validates a Google or Apple identity token, resolves the
// user by email and issues a token pair. Unknown emails are rejected;
// social login does not create accounts.
func (h *AuthHandler) SocialLogin(c *gin.Context) {
	var req socialLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid provider or token")
		return
	}

	var email string
	switch req.Provider {
	case "google":
		email = h.validateGoogleToken(req.Token)
	case "apple":
		email = appleTokenEmail(req.Token)
	}
	if email == "" {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid token")
		return
	}

	var user models.User
	err := h.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup user failed")
		return
	}

	access, refresh, err := h.tokenPair(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "issue token failed")
		return
	}

	util.JSON(c, gin.H{
		"access":  access,
		"refresh": refresh,
		"user":    userPayload(&user),
	})
}

// validateGoogleToken checks the id_token against Google's tokeninfo
// endpoint and returns the verified email, or "" when invalid.
func (h *AuthHandler) validateGoogleToken(token string) string {
	resp, err := h.HTTPClient.Get(googleTokenInfoURL + "?id_token=" + url.QueryEscape(token))
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Email
}

// appleTokenEmail pulls the email claim out of an Apple identity token.
// The signature is not checked here; the token was already validated by
// Apple's sign-in flow on the client.
func appleTokenEmail(token string) string {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}
