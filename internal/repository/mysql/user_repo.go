package mysql

import (
	"database/sql"
	"time"

	"publishhub-backend/internal/model"
	"publishhub-backend/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, name, email, password_hash, avatar_url, bio, created_at, updated_at`

func (r *userRepository) Create(user *model.User) error {
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `INSERT INTO users
		(id, username, name, email, password_hash, avatar_url, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		user.ID, user.Username, user.Name, user.Email,
		user.PasswordHash, user.AvatarURL, user.Bio,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		util.Logger.Error("创建用户失败", zap.Error(err), zap.String("username", user.Username))
		return err
	}
	return nil
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *userRepository) findOne(query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Name, &user.Email,
		&user.PasswordHash, &user.AvatarURL, &user.Bio,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users SET username = ?, name = ?, email = ?, password_hash = ?,
		avatar_url = ?, bio = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query,
		user.Username, user.Name, user.Email, user.PasswordHash,
		user.AvatarURL, user.Bio, time.Now().UTC(), user.ID)
	if err != nil {
		util.Logger.Error("更新用户失败", zap.Error(err), zap.String("user_id", user.ID))
	}
	return err
}

func (r *userRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	return err
}
