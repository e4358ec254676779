//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/database"
	"github.com/nikhil/zsechat/internal/models"
	usermodels "github.com/nikhil/zsechat/internal/models/users"
)

type UserStore interface {
	FindAll(ctx context.Context) ([]usermodels.User, error)
	FindByNickname(ctx context.Context, nickname models.Identity) (usermodels.User, error)
	Exists(ctx context.Context, nickname models.Identity) (bool, error)
	Create(ctx context.Context, user usermodels.User) (usermodels.User, error)
	Update(ctx context.Context, user usermodels.User) (usermodels.User, error)
}

const userColumns = `user_id, nickname, first_name, last_name, email, phone_number, country, city,
	user_status, user_language, time_zone,
	show_first_name_and_last_name, show_email, show_phone_number, show_address, deleted`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindAll returns every user that was not deleted.
func (r *UserRepository) FindAll(ctx context.Context) ([]usermodels.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users WHERE deleted = 0 ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []usermodels.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindByNickname(ctx context.Context, nickname models.Identity) (usermodels.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE nickname = ?`, nickname)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return usermodels.User{}, fmt.Errorf("%w. Nickname: %s", apperrors.ErrUserNotFound, nickname)
	}
	if err != nil {
		return usermodels.User{}, fmt.Errorf("query user %s: %w", nickname, err)
	}
	return user, nil
}

func (r *UserRepository) Exists(ctx context.Context, nickname models.Identity) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE nickname = ?`, nickname).Scan(&count); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, user usermodels.User) (usermodels.User, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (nickname, first_name, last_name, email, phone_number, country, city,
			user_status, user_language, time_zone,
			show_first_name_and_last_name, show_email, show_phone_number, show_address, deleted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Nickname, user.FirstName, user.LastName, user.Email, user.PhoneNumber, user.Country, user.City,
		user.Status, user.Language, user.TimeZone,
		user.ShowFirstNameAndLastName, user.ShowEmail, user.ShowPhoneNumber, user.ShowAddress, user.Deleted,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		if key, ok := database.UniqueViolation(err); ok {
			return usermodels.User{}, duplicateUser(key, user)
		}
		return usermodels.User{}, fmt.Errorf("insert user: %w", err)
	}

	if user.UserID, err = result.LastInsertId(); err != nil {
		return usermodels.User{}, fmt.Errorf("get user id: %w", err)
	}
	return user, nil
}

// Update rewrites the profile fields of user. Nickname and email are immutable.
func (r *UserRepository) Update(ctx context.Context, user usermodels.User) (usermodels.User, error) {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET first_name = ?, last_name = ?, phone_number = ?, country = ?, city = ?,
			user_status = ?, user_language = ?, time_zone = ?,
			show_first_name_and_last_name = ?, show_email = ?, show_phone_number = ?, show_address = ?, deleted = ?
		WHERE user_id = ?`,
		user.FirstName, user.LastName, user.PhoneNumber, user.Country, user.City,
		user.Status, user.Language, user.TimeZone,
		user.ShowFirstNameAndLastName, user.ShowEmail, user.ShowPhoneNumber, user.ShowAddress, user.Deleted,
		user.UserID,
	)
	if err != nil {
		return usermodels.User{}, fmt.Errorf("update user %s: %w", user.Nickname, err)
	}
	return user, nil
}

func duplicateUser(key string, user usermodels.User) error {
	// users.email in SQLite, users_email key in MySQL
	if strings.Contains(key, "users.email") || strings.Contains(key, "users_email") {
		return fmt.Errorf("%w. Email: %s", apperrors.ErrEmailTaken, user.Email)
	}
	return fmt.Errorf("%w. Nickname: %s", apperrors.ErrNicknameTaken, user.Nickname)
}

func scanUser(row scanner) (usermodels.User, error) {
	var user usermodels.User
	err := row.Scan(
		&user.UserID, &user.Nickname, &user.FirstName, &user.LastName, &user.Email, &user.PhoneNumber,
		&user.Country, &user.City, &user.Status, &user.Language, &user.TimeZone,
		&user.ShowFirstNameAndLastName, &user.ShowEmail, &user.ShowPhoneNumber, &user.ShowAddress, &user.Deleted,
	)
	return user, err
}
