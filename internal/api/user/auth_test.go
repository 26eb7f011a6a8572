package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/antonkk11/Netology-diploma/config"
	"github.com/antonkk11/Netology-diploma/internal/errors"
	"github.com/antonkk11/Netology-diploma/internal/model"
	"github.com/antonkk11/Netology-diploma/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserService 是 UserServiceInterface 的模拟实现
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(user *model.User, password string) error {
	args := m.Called(user, password)
	return args.Error(0)
}

func (m *MockUserService) Login(email, password string) (*model.User, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func setupAuthRouter(mockService *MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")
	config.AppConfig.JWTSecret = "test-secret"

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username_format", util.ValidateUsername)
	}

	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)
	router.GET("/profile", func(c *gin.Context) {
		c.Set("user_id", 1)
		handler.GetProfile(c)
	})
	return router
}

func TestRegister(t *testing.T) {
	mockService := new(MockUserService)
	router := setupAuthRouter(mockService)

	mockService.On("Register", mock.AnythingOfType("*model.User"), "password123").
		Run(func(args mock.Arguments) {
			args.Get(0).(*model.User).ID = 1
		}).
		Return(nil)

	body := bytes.NewBufferString(`{"username": "newuser", "email": "new@example.com", "password": "password123"}`)
	req, _ := http.NewRequest("POST", "/register", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "newuser", user["username"])
	// 密码散列不能出现在响应里
	assert.NotContains(t, w.Body.String(), "password_hash")
	mockService.AssertExpectations(t)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	mockService := new(MockUserService)
	router := setupAuthRouter(mockService)

	mockService.On("Register", mock.AnythingOfType("*model.User"), "password123").
		Return(errors.New(errors.ErrUserExists, "username already exists"))

	body := bytes.NewBufferString(`{"username": "taken", "email": "new@example.com", "password": "password123"}`)
	req, _ := http.NewRequest("POST", "/register", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "username already exists")
}

func TestRegisterInvalidUsername(t *testing.T) {
	mockService := new(MockUserService)
	router := setupAuthRouter(mockService)

	// 用户名含非法字符，绑定阶段即被拒绝
	body := bytes.NewBufferString(`{"username": "bad user!", "email": "new@example.com", "password": "password123"}`)
	req, _ := http.NewRequest("POST", "/register", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	mockService := new(MockUserService)
	router := setupAuthRouter(mockService)

	mockService.On("Login", "user@example.com", "password123").
		Return(&model.User{ID: 1, Username: "user", Email: "user@example.com"}, nil)

	body := bytes.NewBufferString(`{"email": "user@example.com", "password": "password123"}`)
	req, _ := http.NewRequest("POST", "/login", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	// 签发的令牌要能通过校验并还原出用户ID
	userID, err := util.ValidateToken(resp["token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, 1, userID)
	mockService.AssertExpectations(t)
}

func TestLoginInvalidCredentials(t *testing.T) {
	mockService := new(MockUserService)
	router := setupAuthRouter(mockService)

	mockService.On("Login", "user@example.com", "wrong-password").
		Return(nil, errors.New(errors.ErrInvalidCredentials, "invalid credentials"))

	body := bytes.NewBufferString(`{"email": "user@example.com", "password": "wrong-password"}`)
	req, _ := http.NewRequest("POST", "/login", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestGetProfile(t *testing.T) {
	mockService := new(MockUserService)
	router := setupAuthRouter(mockService)

	mockService.On("GetUserByID", 1).
		Return(&model.User{ID: 1, Username: "user", Email: "user@example.com"}, nil)

	req, _ := http.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user@example.com")
	mockService.AssertExpectations(t)
}
