package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"reelfeed/apperr"
	"reelfeed/middleware"
	"reelfeed/models"
	"reelfeed/storage"
)

const sessionMaxAge = 7 * 24 * 60 * 60 // seconds, matches the token lifetime

// Accounts is the account persistence the auth endpoints need.
type Accounts interface {
	Create(ctx context.Context, a *models.Account) error
	Save(ctx context.Context, a *models.Account) error
	ByID(ctx context.Context, id string) (*models.Account, error)
	ByUsername(ctx context.Context, username string) (*models.Account, error)
	ByEmail(ctx context.Context, email string) (*models.Account, error)
}

type AuthHandlers struct {
	accounts Accounts
	media    storage.Uploader
	secret   []byte
}

func NewAuthHandlers(accounts Accounts, media storage.Uploader, secret []byte) *AuthHandlers {
	return &AuthHandlers{accounts: accounts, media: media, secret: secret}
}

// Register handles POST /auth/register.
func (h *AuthHandlers) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.Invalid("Please fill all the fields"))
		return
	}

	ctx := c.Request.Context()
	if existing, err := h.accounts.ByEmail(ctx, input.Email); err != nil {
		fail(c, apperr.Internal("failed to check account", err))
		return
	} else if existing != nil {
		fail(c, apperr.Invalid("User already exists"))
		return
	}
	if existing, err := h.accounts.ByUsername(ctx, input.Username); err != nil {
		fail(c, apperr.Internal("failed to check account", err))
		return
	} else if existing != nil {
		fail(c, apperr.Invalid("Username already taken"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, apperr.Internal("failed to hash password", err))
		return
	}

	account := &models.Account{
		ID:        models.NewID(),
		Name:      input.Name,
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hashed),
		LastLogin: time.Now(),
	}
	if err := h.accounts.Create(ctx, account); err != nil {
		fail(c, apperr.Internal("failed to create account", err))
		return
	}

	if err := h.issueSession(c, account.ID); err != nil {
		fail(c, apperr.Internal("failed to issue session", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account registered successfully",
		"account": account,
	})
}

// Login handles POST /auth/login. Either email or username identifies the
// account; the response never says which half of the pair was wrong.
func (h *AuthHandlers) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil ||
		input.Password == "" || (input.Email == "" && input.Username == "") {
		fail(c, apperr.Invalid("Email or username and password are required"))
		return
	}

	ctx := c.Request.Context()
	var account *models.Account
	var err error
	if input.Email != "" {
		account, err = h.accounts.ByEmail(ctx, input.Email)
	} else {
		account, err = h.accounts.ByUsername(ctx, input.Username)
	}
	if err != nil {
		fail(c, apperr.Internal("failed to load account", err))
		return
	}
	if account == nil || account.Password == "" ||
		bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)) != nil {
		fail(c, apperr.Unauthorized("Invalid email/username or password"))
		return
	}

	// Best effort: a failed timestamp write must not block the login.
	account.LastLogin = time.Now()
	_ = h.accounts.Save(ctx, account)

	if err := h.issueSession(c, account.ID); err != nil {
		fail(c, apperr.Internal("failed to issue session", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in successfully",
		"account": account,
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandlers) Logout(c *gin.Context) {
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// Me handles GET /auth/me.
func (h *AuthHandlers) Me(c *gin.Context) {
	account, err := h.accounts.ByID(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, apperr.Internal("failed to load account", err))
		return
	}
	if account == nil {
		fail(c, apperr.NotFound("Account not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "account": account})
}

// UpdateProfile handles PUT /auth/profile: bio text plus an optional avatar
// upload, multipart form.
func (h *AuthHandlers) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	account, err := h.accounts.ByID(ctx, callerID(c))
	if err != nil {
		fail(c, apperr.Internal("failed to load account", err))
		return
	}
	if account == nil {
		fail(c, apperr.NotFound("Account not found"))
		return
	}

	if bio, ok := c.GetPostForm("bio"); ok {
		account.Bio = bio
	}
	if file, err := c.FormFile("avatar"); err == nil {
		src, err := file.Open()
		if err != nil {
			fail(c, apperr.Invalid("Failed to open uploaded file"))
			return
		}
		defer src.Close()
		url, err := h.media.Upload(ctx, file.Filename, file.Header.Get("Content-Type"), src, file.Size)
		if err != nil {
			fail(c, apperr.Internal("failed to store avatar", err))
			return
		}
		account.AvatarURL = url
	}

	if err := h.accounts.Save(ctx, account); err != nil {
		fail(c, apperr.Internal("failed to update profile", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated", "account": account})
}

func (h *AuthHandlers) issueSession(c *gin.Context, accountID string) error {
	token, err := middleware.IssueToken(h.secret, accountID)
	if err != nil {
		return err
	}
	c.SetCookie(middleware.CookieName, token, sessionMaxAge, "/", "", false, true)
	return nil
}
