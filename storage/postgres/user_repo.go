package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/storage"
)

const uniqueViolation = "23505"

type userRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewUserRepo(db *pgxpool.Pool, log logger.ILogger) storage.IUserStorage {
	return &userRepo{db: db, log: log}
}

const userColumns = `id, name, email, password_hash, provider, provider_id, phone, avatar_path, role,
	aadhaar_path, license_path, doc_status, created_at, updated_at`

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.NewString()

	var aadhaar, license, docStatus *string
	if user.Documents != nil {
		aadhaar = user.Documents.AadhaarPath
		license = user.Documents.LicensePath
		s := string(user.Documents.Status)
		docStatus = &s
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, provider, provider_id, phone, role, aadhaar_path, license_path, doc_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Provider,
		user.ProviderID,
		user.Phone,
		string(user.Role),
		aadhaar,
		license,
		docStatus,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, storage.ErrDuplicate
		}
		r.log.Error("failed to create user", logger.Error(err))
		return nil, err
	}

	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepo) UpdateProfile(ctx context.Context, id string, name, phone *string) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name), phone = COALESCE($2, phone), updated_at = now()
		WHERE id = $3
	`
	res, err := r.db.Exec(ctx, query, name, phone, id)
	if err != nil {
		r.log.Error("failed to update user profile", logger.String("id", id), logger.Error(err))
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *userRepo) getOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var u models.User
	var aadhaar, license, docStatus *string
	var role string

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Provider,
		&u.ProviderID,
		&u.Phone,
		&u.AvatarPath,
		&role,
		&aadhaar,
		&license,
		&docStatus,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to get user", logger.Error(err))
		return nil, err
	}

	u.Role = models.Role(role)
	if docStatus != nil {
		u.Documents = &models.DriverDocuments{
			AadhaarPath: aadhaar,
			LicensePath: license,
			Status:      models.DocStatus(*docStatus),
		}
	}
	return &u, nil
}
