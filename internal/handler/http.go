package handler

import (
	"context"
	"main/internal/auth"
	"main/internal/config"
	"main/internal/database"
	"main/internal/model"
	"main/internal/storage"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth/gothic"
	"golang.org/x/oauth2"
)

const (
	loginPage     = "/login.html"
	dashboardPage = "/dashboard.html"

	defaultFolderName = "Case Files"
)

type Handler struct {
	db    database.UserStore
	store sessions.Store
	cfg   *config.Config
	drive storage.Uploader
	auth  auth.Authenticator
}

func New(db database.UserStore, store sessions.Store, cfg *config.Config, drive storage.Uploader, auth auth.Authenticator) *Handler {
	return &Handler{db, store, cfg, drive, auth}
}

// ProfileUpdateRequest is the body of POST /profile. Both fields are
// written wholesale; an omitted field is stored empty, not preserved.
type ProfileUpdateRequest struct {
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

type ProfileUpdateResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// ProfileNotFoundResponse is returned with HTTP 200: a missing profile
// is an expected outcome, not an API error.
type ProfileNotFoundResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Home(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, loginPage)
}

func (h *Handler) SignInWithGoogle(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Add("provider", "google")
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackHandler finishes the code exchange, makes sure a profile
// document exists for the email, and writes the session record. Any
// failure before the session save leaves no session behind.
func (h *Handler) CallbackHandler(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Add("provider", "google")
	q.Del("scope")
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := h.auth.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "Authentication failed")
		c.Abort()
		return
	}

	dbUser, err := h.db.FindUserByEmail(c.Request.Context(), gothUser.Email)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "Authentication failed")
		c.Abort()
		return
	}

	if dbUser == nil {
		// Another first-login for the same email may insert between
		// the lookup and here; the store treats that as success.
		err = h.db.CreateUserIfAbsent(c.Request.Context(), &model.User{
			Name:           gothUser.Name,
			Email:          gothUser.Email,
			ProfilePicture: gothUser.AvatarURL,
		})
		if err != nil {
			c.Error(err)
			c.String(http.StatusInternalServerError, "Authentication failed")
			c.Abort()
			return
		}
	}

	session, err := auth.GetSession(h.store, c.Request)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "Authentication failed")
		c.Abort()
		return
	}

	auth.SetSessionUser(session, auth.SessionUser{
		Name:         gothUser.Name,
		Email:        gothUser.Email,
		Picture:      gothUser.AvatarURL,
		AccessToken:  gothUser.AccessToken,
		RefreshToken: gothUser.RefreshToken,
	})
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "Authentication failed")
		c.Abort()
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, dashboardPage)
}

func (h *Handler) Profile(c *gin.Context) {
	sessionUser, ok := h.sessionUser(c)
	if !ok {
		return
	}

	user, err := h.db.FindUserByEmail(c.Request.Context(), sessionUser.Email)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	if user == nil {
		c.JSON(http.StatusOK, ProfileNotFoundResponse{Error: "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	sessionUser, ok := h.sessionUser(c)
	if !ok {
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	user, err := h.db.UpsertUserByEmail(c.Request.Context(), sessionUser.Email, req.Name, req.ProfilePicture)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, ProfileUpdateResponse{
		Message: "Profile updated successfully",
		User:    user,
	})
}

// Upload spools the multipart file to disk, creates the target folder
// and streams the file into it. The temp file is removed on every exit
// path; a folder created before a failed upload is not rolled back.
func (h *Handler) Upload(c *gin.Context) {
	sessionUser, ok := h.sessionUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "Error uploading file")
		c.Abort()
		return
	}

	folderName := c.PostForm("folderName")
	if folderName == "" {
		folderName = defaultFolderName
	}

	tempPath := filepath.Join(os.TempDir(), uuid.New().String())
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "Error uploading file")
		c.Abort()
		return
	}
	defer os.Remove(tempPath)

	token := &oauth2.Token{
		AccessToken:  sessionUser.AccessToken,
		RefreshToken: sessionUser.RefreshToken,
		TokenType:    "Bearer",
	}

	ctx := context.Background()

	folderID, err := h.drive.EnsureFolder(ctx, token, folderName)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "Error uploading file")
		c.Abort()
		return
	}

	content, err := os.Open(tempPath)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "Error uploading file")
		c.Abort()
		return
	}
	defer content.Close()

	_, err = h.drive.UploadFile(ctx, token, folderID, file.Filename, file.Header.Get("Content-Type"), content)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "Error uploading file")
		c.Abort()
		return
	}

	c.String(http.StatusOK, "File uploaded successfully!")
}

// Logout destroys the session record and sends the browser back to the
// login page. Without a session it is a no-op redirect.
func (h *Handler) Logout(c *gin.Context) {
	session, err := auth.GetSession(h.store, c.Request)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, loginPage)
		return
	}

	session.Options.MaxAge = -1
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, loginPage)
}

// sessionUser loads the logged-in user's session record. The auth
// middleware already gates these routes; this re-check covers handlers
// mounted without it and redirects just the same.
func (h *Handler) sessionUser(c *gin.Context) (auth.SessionUser, bool) {
	session, err := auth.GetSession(h.store, c.Request)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, loginPage)
		c.Abort()
		return auth.SessionUser{}, false
	}

	user, ok := auth.UserFromSession(session)
	if !ok {
		c.Redirect(http.StatusTemporaryRedirect, loginPage)
		c.Abort()
		return auth.SessionUser{}, false
	}

	return user, true
}
