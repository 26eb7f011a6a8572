package service

import (
	"testing"

	"github.com/antonkk11/Netology-diploma/internal/errors"
	"github.com/antonkk11/Netology-diploma/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestRegister(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("FindByUsername", "newuser").Return(nil, nil)
	mockRepo.On("FindByEmail", "new@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

	user := &model.User{Username: "newuser", Email: "new@example.com"}
	err := service.Register(user, "password123")
	assert.NoError(t, err)

	// 存储的是散列而不是明文
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	mockRepo.AssertExpectations(t)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("FindByUsername", "taken").Return(&model.User{ID: 1, Username: "taken"}, nil)

	err := service.Register(&model.User{Username: "taken", Email: "new@example.com"}, "password123")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUserExists))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("FindByUsername", "newuser").Return(nil, nil)
	mockRepo.On("FindByEmail", "taken@example.com").Return(&model.User{ID: 1}, nil)

	err := service.Register(&model.User{Username: "newuser", Email: "taken@example.com"}, "password123")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUserExists))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	mockRepo.On("FindByEmail", "user@example.com").
		Return(&model.User{ID: 1, Email: "user@example.com", PasswordHash: string(hash)}, nil)

	user, err := service.Login("user@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	mockRepo.On("FindByEmail", "user@example.com").
		Return(&model.User{ID: 1, Email: "user@example.com", PasswordHash: string(hash)}, nil)

	_, err = service.Login("user@example.com", "wrong-password")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestLoginUnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("FindByEmail", "nobody@example.com").Return(nil, nil)

	// 未注册邮箱与密码错误返回同样的错误，不暴露账户是否存在
	_, err := service.Login("nobody@example.com", "password123")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestGetUserByIDNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("FindByID", 42).Return(nil, nil)

	_, err := service.GetUserByID(42)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))
}
