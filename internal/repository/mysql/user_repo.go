package mysql

import (
	"database/sql"

	"github.com/antonkk11/Netology-diploma/internal/model"
	"github.com/antonkk11/Netology-diploma/internal/util"

	"go.uber.org/zap"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (username, email, password_hash, avatar_url, created_at)
              VALUES (?, ?, ?, ?, NOW())`
	result, err := r.db.Exec(query, user.Username, user.Email, user.PasswordHash, user.AvatarURL)
	if err != nil {
		util.Logger.Error("创建用户失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	return nil
}

func (r *userRepository) FindByID(id int) (*model.User, error) {
	return r.findOne(`SELECT id, username, email, password_hash, avatar_url, created_at
                      FROM users WHERE id = ?`, id)
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	return r.findOne(`SELECT id, username, email, password_hash, avatar_url, created_at
                      FROM users WHERE email = ?`, email)
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	return r.findOne(`SELECT id, username, email, password_hash, avatar_url, created_at
                      FROM users WHERE username = ?`, username)
}

// findOne 查询单个用户，不存在时返回 (nil, nil)
func (r *userRepository) findOne(query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.AvatarURL, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
