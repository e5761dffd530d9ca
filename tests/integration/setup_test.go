package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"borrowtrack/internal/handlers"
	"borrowtrack/internal/logger"
	"borrowtrack/internal/middleware"
	"borrowtrack/internal/models"
	"borrowtrack/internal/services"
	"borrowtrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Group{},
		&models.Person{},
		&models.Contact{},
		&models.Transaction{},
		&models.Document{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	groupService := services.NewGroupService(db)
	personService := services.NewPersonService(db, groupService)
	contactService := services.NewContactService(db)
	transactionService := services.NewTransactionService(db)
	documentService := services.NewDocumentService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	groupHandler := handlers.NewGroupHandler(groupService, auditService)
	personHandler := handlers.NewPersonHandler(personService, auditService)
	contactHandler := handlers.NewContactHandler(contactService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	documentHandler := handlers.NewDocumentHandler(documentService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/password", authHandler.ChangePassword)

	groups := protected.Group("/groups")
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("", groupHandler.GetGroups)
	groups.GET("/:id", groupHandler.GetGroupByID)

	people := protected.Group("/people")
	people.POST("", personHandler.CreatePerson)
	people.GET("", personHandler.GetPeople)
	people.GET("/:id", personHandler.GetPersonByID)
	people.PUT("/:id", personHandler.UpdatePerson)
	people.POST("/:id/contacts", contactHandler.AddContact)
	people.POST("/:id/transactions", transactionHandler.CreateTransaction)
	people.GET("/:id/transactions", transactionHandler.GetPersonTransactions)
	people.POST("/:id/documents", documentHandler.CreateDocument)
	people.GET("/:id/documents", documentHandler.GetPersonDocuments)

	contacts := protected.Group("/contacts")
	contacts.PUT("/:id", contactHandler.UpdateContact)
	contacts.DELETE("/:id", contactHandler.DeleteContact)

	transactions := protected.Group("/transactions")
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	documents := protected.Group("/documents")
	documents.GET("/:id", documentHandler.GetDocumentByID)
	documents.DELETE("/:id", documentHandler.DeleteDocument)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createPerson creates a customer and returns its ID.
func (app *testApp) createPerson(t *testing.T, token, name string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q}`, name)
	rec := app.request("POST", "/api/v1/people", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create person failed: %d %s", rec.Code, rec.Body.String())
	}
	person := parseJSON(t, rec)["person"].(map[string]interface{})
	return person["id"].(string)
}

// recordTransaction records a ledger entry for a person and returns its ID.
func (app *testApp) recordTransaction(t *testing.T, token, personID, kind string, amount float64) string {
	t.Helper()
	body := fmt.Sprintf(`{"kind":%q,"amount":%v}`, kind, amount)
	rec := app.request("POST", "/api/v1/people/"+personID+"/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("record transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	txn := parseJSON(t, rec)["transaction"].(map[string]interface{})
	return txn["id"].(string)
}
