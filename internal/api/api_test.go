package api

import (
	"admin_panel/internal/domain"
	"admin_panel/internal/middleware"
	"admin_panel/internal/session"
	"admin_panel/internal/utils"
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret = "api-test-secret"
	testTTL    = time.Hour
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

// testEnv wires the handlers exactly like cmd/server, against an in-memory
// database and an in-process Redis
type testEnv struct {
	db       *gorm.DB
	rdb      *redis.Client
	mr       *miniredis.Miniredis
	clock    *fakeClock
	sessions *session.Store
	router   *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // keep every connection on the same in-memory database
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Item{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	clock := &fakeClock{now: time.Now()}
	sessions := session.NewStoreWithClock(rdb, clock)

	r := gin.New()
	r.POST("/api/auth/login", LoginHandler(db, sessions, testSecret, testTTL))
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.JWTAuthMiddleware(testSecret))
	authGroup.POST("/logout", LogoutHandler(sessions))
	authGroup.GET("/session", SessionHandler(sessions))

	userGroup := r.Group("/api/users")
	userGroup.Use(middleware.JWTAuthMiddleware(testSecret))
	userGroup.GET("", ListUsersHandler(db))
	userAdmin := userGroup.Group("")
	userAdmin.Use(middleware.AdminOnlyMiddleware())
	userAdmin.POST("", CreateUserHandler(db))
	userAdmin.PUT("/:id", UpdateUserHandler(db))
	userAdmin.DELETE("/:id", DeactivateUserHandler(db))
	userAdmin.POST("/:id/activate", ActivateUserHandler(db))

	itemGroup := r.Group("/api/items")
	itemGroup.Use(middleware.JWTAuthMiddleware(testSecret))
	itemGroup.GET("", ListItemsHandler(db, rdb))
	itemAdmin := itemGroup.Group("")
	itemAdmin.Use(middleware.AdminOnlyMiddleware())
	itemAdmin.POST("", CreateItemHandler(db, rdb))
	itemAdmin.PUT("/:id", UpdateItemHandler(db, rdb))
	itemAdmin.DELETE("/:id", DeleteItemHandler(db, rdb))

	return &testEnv{db: db, rdb: rdb, mr: mr, clock: clock, sessions: sessions, router: r}
}

// seedUser inserts a user with the given password hashed; zero-value fields
// get usable defaults
func (e *testEnv) seedUser(t *testing.T, user domain.User, password string) domain.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user.PasswordHash = hash
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

// token mints a JWT for the user, as the login endpoint would
func (e *testEnv) token(t *testing.T, user domain.User) string {
	t.Helper()
	token, err := utils.GenerateJWT(user.ID, user.Username, user.Role, testSecret, testTTL)
	require.NoError(t, err)
	return token
}

// do performs a request against the test router
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded JSON body
func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// a ready-made active user record for seeding
func activeUser(userID, username, email, mobile string) domain.User {
	return domain.User{
		UserID:   userID,
		Username: username,
		FullName: username + " full",
		Email:    email,
		Mobile:   mobile,
		Role:     domain.RoleUser,
		Active:   true,
	}
}

func activeAdmin(userID, username, email, mobile string) domain.User {
	u := activeUser(userID, username, email, mobile)
	u.Role = domain.RoleAdmin
	return u
}
