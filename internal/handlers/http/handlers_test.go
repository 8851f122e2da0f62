package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/viniciusmp/pessoas-backend/internal/handlers/dto"
	httphandlers "github.com/viniciusmp/pessoas-backend/internal/handlers/http"
	"github.com/viniciusmp/pessoas-backend/internal/handlers/middleware"
	"github.com/viniciusmp/pessoas-backend/internal/handlers/ws"
	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/i18n"
	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/logging"
	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/persistence/postgres"
	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/token"
	"github.com/viniciusmp/pessoas-backend/internal/services"
)

// setupTestServer monta o router completo sobre um sqlite descartável,
// com as mesmas rotas e middlewares do servidor real
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("falha ao abrir banco de teste: %v", err)
	}
	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("falha ao migrar schema: %v", err)
	}

	i18nService, err := i18n.NewService("../../infrastructure/i18n/locales", "pt-BR")
	if err != nil {
		t.Fatalf("falha ao carregar locales: %v", err)
	}

	logger := logging.NewSlogLogger("error")
	tokens := token.NewManager("segredo-de-teste", time.Hour)

	authService := services.NewAuthService(postgres.NewUserRepository(db), tokens, logger)
	personService := services.NewPersonService(postgres.NewPersonRepository(db), postgres.NewUnitOfWork(db), logger)

	hub := ws.NewHub(logger)
	authHandler := httphandlers.NewAuthHandler(authService)
	personHandler := httphandlers.NewPersonHandler(personService, hub)

	dto.RegisterValidators()

	router := gin.New()
	router.Use(middleware.NewI18nMiddleware(i18nService).DetectLanguage())

	api := router.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/me", middleware.RequireAuth(tokens), authHandler.Me)

		people := api.Group("/people", middleware.RequireAuth(tokens))
		{
			people.GET("", personHandler.List)
			people.POST("", personHandler.Create)
			people.GET("/search", personHandler.Search)
			people.GET("/:id", personHandler.Show)
			people.PUT("/:id", personHandler.Update)
			people.DELETE("/:id", personHandler.Delete)
		}
	}

	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, authToken string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("falha ao serializar payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var parsed map[string]any
	if recorder.Body.Len() > 0 {
		if err := json.Unmarshal(recorder.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("resposta não é JSON válido: %v\n%s", err, recorder.Body.String())
		}
	}

	return recorder, parsed
}

// registerAndLogin cria um usuário e retorna um token de sessão válido
func registerAndLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()

	recorder, _ := doRequest(t, router, http.MethodPost, "/api/register", "", gin.H{
		"name":     "Admin Teste",
		"email":    "admin@example.com",
		"password": "senha123",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("registro falhou com status %d: %s", recorder.Code, recorder.Body.String())
	}

	recorder, parsed := doRequest(t, router, http.MethodPost, "/api/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "senha123",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("login falhou com status %d: %s", recorder.Code, recorder.Body.String())
	}

	authToken, _ := parsed["token"].(string)
	if authToken == "" {
		t.Fatal("login não retornou token")
	}
	return authToken
}

func fieldErrors(t *testing.T, parsed map[string]any, field string) []any {
	t.Helper()

	errs, ok := parsed["errors"].(map[string]any)
	if !ok {
		t.Fatalf("esperava errors na resposta, obteve: %v", parsed)
	}
	messages, ok := errs[field].([]any)
	if !ok {
		t.Fatalf("esperava erros no campo %q, obteve: %v", field, errs)
	}
	return messages
}

func validPersonPayload() gin.H {
	return gin.H{
		"name": "João Silva",
		"cpf":  "123.456.789-01",
		"type": "individual",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("cria usuário sem expor a senha", func(t *testing.T) {
		router := setupTestServer(t)

		recorder, parsed := doRequest(t, router, http.MethodPost, "/api/register", "", gin.H{
			"name":     "João Silva",
			"email":    "joao@example.com",
			"password": "senha123",
		})

		if recorder.Code != http.StatusCreated {
			t.Fatalf("esperava 201, obteve %d: %s", recorder.Code, recorder.Body.String())
		}
		if parsed["status"] != "success" {
			t.Errorf("esperava status success, obteve %v", parsed["status"])
		}

		user, ok := parsed["user"].(map[string]any)
		if !ok {
			t.Fatalf("esperava user na resposta, obteve: %v", parsed)
		}
		if user["email"] != "joao@example.com" {
			t.Errorf("esperava email do usuário, obteve %v", user["email"])
		}
		if _, exposed := user["password"]; exposed {
			t.Error("resposta não pode conter a senha")
		}
		if _, exposed := user["password_hash"]; exposed {
			t.Error("resposta não pode conter o hash da senha")
		}
	})

	t.Run("senha curta é rejeitada com erro por campo", func(t *testing.T) {
		router := setupTestServer(t)

		recorder, parsed := doRequest(t, router, http.MethodPost, "/api/register", "", gin.H{
			"name":     "João Silva",
			"email":    "joao@example.com",
			"password": "12345",
		})

		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("esperava 422, obteve %d", recorder.Code)
		}
		fieldErrors(t, parsed, "password")
	})

	t.Run("email duplicado é rejeitado", func(t *testing.T) {
		router := setupTestServer(t)

		payload := gin.H{"name": "João", "email": "joao@example.com", "password": "senha123"}
		doRequest(t, router, http.MethodPost, "/api/register", "", payload)

		recorder, parsed := doRequest(t, router, http.MethodPost, "/api/register", "", payload)
		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("esperava 422, obteve %d", recorder.Code)
		}
		fieldErrors(t, parsed, "email")
	})
}

func TestLoginEndpoint(t *testing.T) {
	router := setupTestServer(t)
	doRequest(t, router, http.MethodPost, "/api/register", "", gin.H{
		"name":     "João Silva",
		"email":    "joao@example.com",
		"password": "senha123",
	})

	t.Run("credenciais corretas retornam token", func(t *testing.T) {
		recorder, parsed := doRequest(t, router, http.MethodPost, "/api/login", "", gin.H{
			"email":    "joao@example.com",
			"password": "senha123",
		})

		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", recorder.Code, recorder.Body.String())
		}
		if parsed["token"] == "" || parsed["token"] == nil {
			t.Error("esperava token na resposta")
		}
	})

	t.Run("credenciais erradas retornam a mesma mensagem genérica", func(t *testing.T) {
		recorderWrong, parsedWrong := doRequest(t, router, http.MethodPost, "/api/login", "", gin.H{
			"email":    "joao@example.com",
			"password": "errada",
		})
		recorderUnknown, parsedUnknown := doRequest(t, router, http.MethodPost, "/api/login", "", gin.H{
			"email":    "ninguem@example.com",
			"password": "senha123",
		})

		if recorderWrong.Code != http.StatusUnauthorized || recorderUnknown.Code != http.StatusUnauthorized {
			t.Fatalf("esperava 401 nos dois casos, obteve %d e %d", recorderWrong.Code, recorderUnknown.Code)
		}
		if parsedWrong["message"] != parsedUnknown["message"] {
			t.Error("mensagem não pode revelar qual credencial estava errada")
		}
	})
}

func TestSessionEndpoints(t *testing.T) {
	router := setupTestServer(t)
	authToken := registerAndLogin(t, router)

	t.Run("me retorna a identidade da sessão", func(t *testing.T) {
		recorder, parsed := doRequest(t, router, http.MethodGet, "/api/me", authToken, nil)

		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", recorder.Code, recorder.Body.String())
		}
		user, ok := parsed["user"].(map[string]any)
		if !ok || user["email"] != "admin@example.com" {
			t.Errorf("esperava o usuário da sessão, obteve: %v", parsed)
		}
	})

	t.Run("me sem token retorna 401", func(t *testing.T) {
		recorder, _ := doRequest(t, router, http.MethodGet, "/api/me", "", nil)
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("esperava 401, obteve %d", recorder.Code)
		}
	})

	t.Run("logout invalida o token e é idempotente", func(t *testing.T) {
		recorder, _ := doRequest(t, router, http.MethodPost, "/api/logout", authToken, nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200 no logout, obteve %d", recorder.Code)
		}

		recorder, _ = doRequest(t, router, http.MethodGet, "/api/me", authToken, nil)
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("esperava 401 após logout, obteve %d", recorder.Code)
		}

		// Logout repetido e sem token continuam respondendo 200
		recorder, _ = doRequest(t, router, http.MethodPost, "/api/logout", authToken, nil)
		if recorder.Code != http.StatusOK {
			t.Errorf("esperava 200 no logout repetido, obteve %d", recorder.Code)
		}
		recorder, _ = doRequest(t, router, http.MethodPost, "/api/logout", "", nil)
		if recorder.Code != http.StatusOK {
			t.Errorf("esperava 200 no logout sem token, obteve %d", recorder.Code)
		}
	})
}

func TestPeopleEndpointsRequireAuth(t *testing.T) {
	router := setupTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/people"},
		{http.MethodPost, "/api/people"},
		{http.MethodGet, "/api/people/search?q=x"},
		{http.MethodGet, "/api/people/abc"},
		{http.MethodPut, "/api/people/abc"},
		{http.MethodDelete, "/api/people/abc"},
	}

	for _, route := range paths {
		recorder, _ := doRequest(t, router, route.method, route.path, "", nil)
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("%s %s sem token: esperava 401, obteve %d", route.method, route.path, recorder.Code)
		}
	}
}

func TestCreatePersonEndpoint(t *testing.T) {
	t.Run("cria pessoa com documento normalizado", func(t *testing.T) {
		router := setupTestServer(t)
		authToken := registerAndLogin(t, router)

		recorder, parsed := doRequest(t, router, http.MethodPost, "/api/people", authToken, validPersonPayload())
		if recorder.Code != http.StatusCreated {
			t.Fatalf("esperava 201, obteve %d: %s", recorder.Code, recorder.Body.String())
		}

		data, ok := parsed["data"].(map[string]any)
		if !ok {
			t.Fatalf("esperava data na resposta, obteve: %v", parsed)
		}
		if data["cpf"] != "12345678901" {
			t.Errorf("esperava documento sem formatação, obteve %v", data["cpf"])
		}
		if data["id"] == "" || data["id"] == nil {
			t.Error("esperava id na resposta")
		}
	})

	t.Run("validações acumulam erros por campo", func(t *testing.T) {
		router := setupTestServer(t)
		authToken := registerAndLogin(t, router)

		recorder, parsed := doRequest(t, router, http.MethodPost, "/api/people", authToken, gin.H{
			"name": "",
			"cpf":  "123",
			"type": "qualquer",
		})

		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("esperava 422, obteve %d", recorder.Code)
		}
		fieldErrors(t, parsed, "name")
		fieldErrors(t, parsed, "cpf")
		fieldErrors(t, parsed, "type")
	})

	t.Run("erros de campo e de consistência chegam juntos", func(t *testing.T) {
		router := setupTestServer(t)
		authToken := registerAndLogin(t, router)

		// Nome vazio é erro de campo; CNPJ com tipo individual é erro
		// de consistência. O cliente precisa receber os dois de uma vez.
		recorder, parsed := doRequest(t, router, http.MethodPost, "/api/people", authToken, gin.H{
			"name": "",
			"cpf":  "11222333000181",
			"type": "individual",
		})

		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("esperava 422, obteve %d", recorder.Code)
		}
		fieldErrors(t, parsed, "name")
		fieldErrors(t, parsed, "cpf")
	})

	t.Run("nome somente com espaços é rejeitado", func(t *testing.T) {
		router := setupTestServer(t)
		authToken := registerAndLogin(t, router)

		payload := validPersonPayload()
		payload["name"] = "   "

		recorder, parsed := doRequest(t, router, http.MethodPost, "/api/people", authToken, payload)
		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("esperava 422, obteve %d: %s", recorder.Code, recorder.Body.String())
		}
		fieldErrors(t, parsed, "name")
	})

	t.Run("tipo incompatível com o documento é reportado no cpf", func(t *testing.T) {
		router := setupTestServer(t)
		authToken := registerAndLogin(t, router)

		payload := validPersonPayload()
		payload["type"] = "legal_entity"

		recorder, parsed := doRequest(t, router, http.MethodPost, "/api/people", authToken, payload)
		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("esperava 422, obteve %d", recorder.Code)
		}
		fieldErrors(t, parsed, "cpf")
	})

	t.Run("documento duplicado é reportado no cpf", func(t *testing.T) {
		router := setupTestServer(t)
		authToken := registerAndLogin(t, router)

		doRequest(t, router, http.MethodPost, "/api/people", authToken, validPersonPayload())

		duplicate := validPersonPayload()
		duplicate["name"] = "Outro Nome"
		duplicate["cpf"] = "12345678901"

		recorder, parsed := doRequest(t, router, http.MethodPost, "/api/people", authToken, duplicate)
		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("esperava 422, obteve %d", recorder.Code)
		}
		fieldErrors(t, parsed, "cpf")
	})
}

func TestListPeopleEndpoint(t *testing.T) {
	router := setupTestServer(t)
	authToken := registerAndLogin(t, router)

	people := []gin.H{
		{"name": "Ana Beatriz", "cpf": "11111111111", "type": "individual"},
		{"name": "Bruno Costa", "cpf": "22222222222", "type": "individual"},
		{"name": "Empresa ABC Ltda", "cpf": "11222333000181", "type": "legal_entity"},
	}
	for _, person := range people {
		recorder, _ := doRequest(t, router, http.MethodPost, "/api/people", authToken, person)
		if recorder.Code != http.StatusCreated {
			t.Fatalf("falha no setup: %s", recorder.Body.String())
		}
	}

	t.Run("sem paginação retorna tudo sem metadados", func(t *testing.T) {
		recorder, parsed := doRequest(t, router, http.MethodGet, "/api/people", authToken, nil)

		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", recorder.Code)
		}
		data, _ := parsed["data"].([]any)
		if len(data) != 3 {
			t.Errorf("esperava 3 pessoas, obteve %d", len(data))
		}
		if _, present := parsed["pagination"]; present {
			t.Error("sem paginate=true não pode haver metadados de paginação")
		}
	})

	t.Run("paginate=true inclui metadados com clamp de per_page", func(t *testing.T) {
		recorder, parsed := doRequest(t, router, http.MethodGet, "/api/people?paginate=true&per_page=1000", authToken, nil)

		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", recorder.Code)
		}
		pagination, ok := parsed["pagination"].(map[string]any)
		if !ok {
			t.Fatalf("esperava pagination na resposta, obteve: %v", parsed)
		}
		if pagination["per_page"] != float64(100) {
			t.Errorf("esperava per_page limitado a 100, obteve %v", pagination["per_page"])
		}
		if pagination["total"] != float64(3) {
			t.Errorf("esperava total 3, obteve %v", pagination["total"])
		}
	})

	t.Run("filtro por tipo", func(t *testing.T) {
		recorder, parsed := doRequest(t, router, http.MethodGet, "/api/people?type=legal_entity", authToken, nil)

		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", recorder.Code)
		}
		data, _ := parsed["data"].([]any)
		if len(data) != 1 {
			t.Errorf("esperava 1 pessoa jurídica, obteve %d", len(data))
		}
	})

	t.Run("ordenação por coluna permitida", func(t *testing.T) {
		recorder, parsed := doRequest(t, router, http.MethodGet, "/api/people?order_by=name&order_direction=asc", authToken, nil)

		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", recorder.Code)
		}
		data, _ := parsed["data"].([]any)
		first, _ := data[0].(map[string]any)
		if first["name"] != "Ana Beatriz" {
			t.Errorf("esperava Ana Beatriz primeiro, obteve %v", first["name"])
		}
	})
}

func TestSearchPeopleEndpoint(t *testing.T) {
	router := setupTestServer(t)
	authToken := registerAndLogin(t, router)

	doRequest(t, router, http.MethodPost, "/api/people", authToken, validPersonPayload())

	t.Run("termo vazio retorna 400", func(t *testing.T) {
		recorder, parsed := doRequest(t, router, http.MethodGet, "/api/people/search", authToken, nil)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d", recorder.Code)
		}
		if parsed["status"] != "error" {
			t.Errorf("esperava status error, obteve %v", parsed["status"])
		}
	})

	t.Run("busca por nome", func(t *testing.T) {
		recorder, parsed := doRequest(t, router, http.MethodGet, "/api/people/search?q=jo%C3%A3o", authToken, nil)

		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", recorder.Code)
		}
		data, _ := parsed["data"].([]any)
		if len(data) != 1 {
			t.Errorf("esperava 1 resultado, obteve %d", len(data))
		}
	})
}

func TestShowUpdateDeletePersonEndpoints(t *testing.T) {
	router := setupTestServer(t)
	authToken := registerAndLogin(t, router)

	_, created := doRequest(t, router, http.MethodPost, "/api/people", authToken, validPersonPayload())
	data, _ := created["data"].(map[string]any)
	personID, _ := data["id"].(string)
	if personID == "" {
		t.Fatal("falha no setup: pessoa sem id")
	}

	t.Run("show retorna a pessoa", func(t *testing.T) {
		recorder, parsed := doRequest(t, router, http.MethodGet, "/api/people/"+personID, authToken, nil)

		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", recorder.Code)
		}
		shown, _ := parsed["data"].(map[string]any)
		if shown["id"] != personID {
			t.Errorf("esperava a pessoa criada, obteve %v", shown["id"])
		}
	})

	t.Run("show de id desconhecido retorna 404", func(t *testing.T) {
		recorder, _ := doRequest(t, router, http.MethodGet, "/api/people/nao-existe", authToken, nil)
		if recorder.Code != http.StatusNotFound {
			t.Errorf("esperava 404, obteve %d", recorder.Code)
		}
	})

	t.Run("update reenviando o próprio documento é permitido", func(t *testing.T) {
		payload := validPersonPayload()
		payload["name"] = "João Silva Santos"

		recorder, parsed := doRequest(t, router, http.MethodPut, "/api/people/"+personID, authToken, payload)
		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", recorder.Code, recorder.Body.String())
		}
		updated, _ := parsed["data"].(map[string]any)
		if updated["name"] != "João Silva Santos" {
			t.Errorf("esperava nome atualizado, obteve %v", updated["name"])
		}
	})

	t.Run("delete remove e o segundo delete retorna 404", func(t *testing.T) {
		recorder, _ := doRequest(t, router, http.MethodDelete, "/api/people/"+personID, authToken, nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", recorder.Code)
		}

		recorder, _ = doRequest(t, router, http.MethodDelete, "/api/people/"+personID, authToken, nil)
		if recorder.Code != http.StatusNotFound {
			t.Errorf("esperava 404 no delete repetido, obteve %d", recorder.Code)
		}
	})
}
