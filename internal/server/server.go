package server

import (
	"main/internal/auth"
	"main/internal/config"
	"main/internal/database"
	"main/internal/handler"
	"main/internal/middleware"
	"main/internal/storage"

	"github.com/antonlindstrom/pgstore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/google"
)

type Server struct {
	*gin.Engine
	store *pgstore.PGStore
}

func New(cfg *config.Config, userStore database.UserStore) (*Server, error) {
	r := gin.Default()

	store, err := auth.NewStore(cfg.DatabaseURL, []byte(cfg.SessionSecret))
	if err != nil {
		return nil, err
	}

	googleScope := []string{"https://www.googleapis.com/auth/userinfo.profile", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/drive"}

	gp := google.New(cfg.ClientID, cfg.ClientSecret, cfg.ClientCallbackURL, googleScope...)

	// Offline access so a refresh token is issued alongside the access token.
	gp.SetAccessType("offline")
	gp.SetPrompt("consent")

	goth.UseProviders(gp)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	r.StaticFile("/login.html", "./public/login.html")
	r.StaticFile("/dashboard.html", "./public/dashboard.html")
	r.StaticFile("/navigation.html", "./public/navigation.html")
	r.Static("/js", "./public/js")

	h := handler.New(userStore, store, cfg, storage.NewDrive(), auth.NewGothicAuthenticator())

	r.GET("/", h.Home)
	r.GET("/auth/google", h.SignInWithGoogle)
	r.GET("/auth/callback", h.CallbackHandler)
	r.POST("/logout", h.Logout)

	authorized := r.Group("/")
	authorized.Use(middleware.Auth(store))
	{
		authorized.GET("/profile", h.Profile)
		authorized.POST("/profile", h.UpdateProfile)
		authorized.POST("/upload", h.Upload)
	}

	return &Server{r, store}, nil
}

// Close releases the session store's database connection.
func (s *Server) Close() {
	s.store.Close()
}
