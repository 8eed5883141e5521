package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Swap{},
		&models.Rating{},
		&models.Notification{},
		&models.AdminMessage{},
		&models.Report{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// newTestServer wires a Server directly to avoid re-registering Prometheus
// collectors across tests.
func newTestServer(db *gorm.DB) *Server {
	s := &Server{
		config:       &config.Config{JWTSecret: "test_secret", Port: "0"},
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		swapRepo:     repository.NewSwapRepository(db),
		ratingRepo:   repository.NewRatingRepository(db),
		notifRepo:    repository.NewNotificationRepository(db),
		adminMsgRepo: repository.NewAdminMessageRepository(db),
		reportRepo:   repository.NewReportRepository(db),
	}

	s.notifService = service.NewNotificationService(s.notifRepo, nil)
	s.userService = service.NewUserService(s.userRepo)
	s.swapService = service.NewSwapService(s.swapRepo, s.userRepo, s.notifService)
	s.ratingService = service.NewRatingService(s.ratingRepo, s.swapRepo, s.notifService)
	s.adminService = service.NewAdminService(
		s.userRepo, s.swapRepo, s.ratingRepo, s.adminMsgRepo, s.reportRepo, s.notifService,
	)

	return s
}

// newAuthedApp returns a Fiber app with all routes mounted behind a stub
// authentication layer that injects the given user ID.
func newAuthedApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")
	protected := api.Group("", func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})

	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/search", s.SearchUsers)
	users.Get("/:id/ratings", s.GetUserRatings)
	users.Get("/:id", s.GetUserProfile)

	swaps := protected.Group("/swaps")
	swaps.Post("/", s.CreateSwap)
	swaps.Get("/", s.GetMySwaps)
	swaps.Post("/:id/accept", s.AcceptSwap)
	swaps.Post("/:id/reject", s.RejectSwap)
	swaps.Post("/:id/cancel", s.CancelSwap)
	swaps.Post("/:id/complete", s.CompleteSwap)
	swaps.Get("/:id", s.GetSwap)

	ratings := protected.Group("/ratings")
	ratings.Post("/", s.CreateRating)
	ratings.Get("/given", s.GetGivenRatings)
	ratings.Get("/swap/:id", s.GetSwapRating)
	ratings.Put("/:id", s.UpdateRating)

	notifs := protected.Group("/notifications")
	notifs.Get("/", s.GetNotifications)
	notifs.Get("/unread-count", s.GetUnreadCount)
	notifs.Get("/stats", s.GetNotificationStats)
	notifs.Post("/read-all", s.MarkAllNotificationsRead)
	notifs.Post("/:id/read", s.MarkNotificationRead)
	notifs.Delete("/:id", s.DeleteNotification)

	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/dashboard", s.AdminDashboard)
	admin.Post("/users/:id/ban", s.BanUser)
	admin.Post("/users/:id/unban", s.UnbanUser)

	return app
}

func createHandlerTestUser(t *testing.T, db *gorm.DB, name, email string, offered, wanted []string) *models.User {
	t.Helper()
	user := &models.User{
		Name:          name,
		Email:         email,
		Password:      "hashed",
		SkillsOffered: offered,
		SkillsWanted:  wanted,
		IsPublic:      true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
