package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"velvetroom/internal/entity"
	"velvetroom/internal/gallery"
	"velvetroom/internal/model"
	"velvetroom/internal/payments"
	"velvetroom/internal/repo/persistent"
	"velvetroom/internal/storage"
	"velvetroom/internal/usecase"
	"velvetroom/pkg/config"
	"velvetroom/pkg/logger"
	"velvetroom/pkg/middleware"
	"velvetroom/pkg/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubCheckoutClient stands in for the hosted checkout provider.
type stubCheckoutClient struct{}

func (s *stubCheckoutClient) CreateCheckoutSession(p payments.CheckoutParams) (*entity.CheckoutSession, error) {
	return &entity.CheckoutSession{
		ID:  "cs_test_stub",
		URL: "https://checkout.example.com/c/cs_test_stub",
	}, nil
}

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	sessions *session.MemoryStore
	cfg      *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	adminHash, err := bcrypt.GenerateFromPassword([]byte("adminpassword"), bcrypt.MinCost)
	require.NoError(t, err)

	dir := t.TempDir()
	cfg := &config.Config{
		GalleryPriceCents:      1999,
		GalleryCurrency:        "usd",
		GalleryProductName:     "Gallery Access",
		TipMinCents:            100,
		TipMaxCents:            100000,
		TipMessageMaxLen:       500,
		UserSessionTTLSeconds:  86400,
		AdminSessionTTLSeconds: 3600,
		AdminUsername:          "admin",
		AdminPasswordHash:      string(adminHash),
		GalleryDataFile:        filepath.Join(dir, "gallery-data.json"),
		MediaRoot:              dir,
		ImageDir:               "uploads/images",
		VideoDir:               "uploads/videos",
		MaxUploadBytes:         100 * 1024 * 1024,
	}

	log := logger.New()
	sessions := session.NewMemoryStore()
	userRepo := persistent.NewUserRepository(db)
	paymentRepo := persistent.NewPaymentRepository(db)
	galleryStore := gallery.NewStore(cfg.GalleryDataFile)
	files := storage.NewLocal(dir)

	authUC := usecase.NewAuthUseCase(userRepo, paymentRepo, log)
	accessUC := usecase.NewAccessUseCase(paymentRepo, cfg)
	tipsUC := usecase.NewTipsUseCase(paymentRepo)
	adminUC := usecase.NewGalleryAdminUseCase(galleryStore, files, cfg, log)
	checkoutUC := usecase.NewCheckoutUseCase(paymentRepo, &stubCheckoutClient{}, cfg, log)

	authHandler := NewAuthHandler(authUC, sessions, cfg, log)
	galleryHandler := NewGalleryHandler(accessUC, galleryStore)
	adminHandler := NewAdminHandler(adminUC, sessions, cfg, log)
	paymentHandler := NewPaymentHandler(checkoutUC, authUC, tipsUC, cfg, log)

	userTTL := time.Duration(cfg.UserSessionTTLSeconds) * time.Second
	adminTTL := time.Duration(cfg.AdminSessionTTLSeconds) * time.Second

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/tips/recent", paymentHandler.RecentTippers)
		api.GET("/tips/stats", paymentHandler.TipStats)

		optional := api.Group("")
		optional.Use(middleware.OptionalSessionAuth(sessions, userTTL))
		{
			optional.GET("/auth/check", authHandler.Check)
			optional.GET("/gallery/access", galleryHandler.CheckAccess)
		}

		protected := api.Group("")
		protected.Use(middleware.SessionAuth(sessions, userTTL))
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/profile", authHandler.Profile)
			protected.GET("/gallery", galleryHandler.List)
			protected.POST("/checkout/gallery", paymentHandler.CreateGalleryCheckout)
			protected.POST("/checkout/tip", paymentHandler.CreateTipCheckout)
		}
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/login", adminHandler.Login)
		admin.POST("/logout", adminHandler.Logout)

		adminProtected := admin.Group("")
		adminProtected.Use(middleware.AdminAuth(sessions, adminTTL))
		{
			adminProtected.GET("/check", adminHandler.Check)
			adminProtected.GET("/gallery", adminHandler.ListGallery)
			adminProtected.POST("/gallery/images", adminHandler.UploadImage)
			adminProtected.PUT("/gallery/images/reorder", adminHandler.ReorderImages)
			adminProtected.PUT("/gallery/images/:id", adminHandler.UpdateImageAlt)
			adminProtected.DELETE("/gallery/images/:id", adminHandler.DeleteImage)
		}
	}

	return &testServer{router: r, db: db, sessions: sessions, cfg: cfg}
}

func (ts *testServer) request(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sessionCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name && c.Value != "" {
			return c
		}
	}
	return nil
}
