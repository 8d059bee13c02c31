// Command admin_seed creates the first back-office admin and the default transfer methods.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"wasit/internal/config"
	"wasit/internal/logger"
	"wasit/internal/models"
	"wasit/internal/repositories"
	"wasit/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var defaultMethods = []models.TransferMethod{
	{Name: "Vodafone Cash", Code: "VF_CASH", Category: models.MethodCategoryWallet, SortOrder: 1},
	{Name: "Orange Cash", Code: "ORANGE_CASH", Category: models.MethodCategoryWallet, SortOrder: 2},
	{Name: "Etisalat Cash", Code: "ETISALAT_CASH", Category: models.MethodCategoryWallet, SortOrder: 3},
	{Name: "InstaPay", Code: "INSTAPAY", Category: models.MethodCategoryBank, SortOrder: 4},
	{Name: "Bank Transfer", Code: "BANK_TRANSFER", Category: models.MethodCategoryBank, SortOrder: 5},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	zl := logger.Must(cfg.Env)
	defer func() { _ = zl.Sync() }()

	adminEmail := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		zl.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	v := validation.New()
	v.Email("email", adminEmail)
	v.Password("password", adminPassword)
	if !v.Valid() {
		zl.Fatal("invalid admin credentials", zap.String("errors", v.Error()))
	}

	db, err := repositories.Open(cfg.DB, zl)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			zl.Warn("failed to close database", zap.Error(err))
		}
	}()
	if err := repositories.Migrate(db, cfg.DB, zl); err != nil {
		zl.Fatal("migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := seedAdmin(ctx, repositories.NewUserRepository(db), adminEmail, adminPassword, bcrypt.DefaultCost)
	switch {
	case err != nil:
		zl.Fatal("failed to create admin user", zap.Error(err))
	case created:
		zl.Info("admin account created", zap.String("email", adminEmail))
	default:
		zl.Info("admin user already exists", zap.String("email", adminEmail))
	}

	n, err := seedMethods(ctx, repositories.NewMethodRepository(db))
	if err != nil {
		zl.Fatal("failed to seed transfer methods", zap.Error(err))
	}
	zl.Info("transfer methods seeded", zap.Int("created", n))
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// seedAdmin is a no-op when the email is already registered.
func seedAdmin(ctx context.Context, users userStore, email, password string, cost int) (bool, error) {
	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return false, fmt.Errorf("lookup admin: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	admin := &models.User{
		Email:        email,
		Password:     string(hashed),
		Name:         "Administrator",
		Role:         models.RoleAdmin,
		Status:       "active",
		TokenVersion: 1,
	}
	if err := users.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

type methodStore interface {
	List(ctx context.Context, onlyEnabled bool) ([]models.TransferMethod, error)
	Create(ctx context.Context, m *models.TransferMethod) error
}

// seedMethods inserts the default rails only into an empty table.
func seedMethods(ctx context.Context, methods methodStore) (int, error) {
	existing, err := methods.List(ctx, false)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i := range defaultMethods {
		m := defaultMethods[i]
		m.Enabled = true
		if err := methods.Create(ctx, &m); err != nil {
			return i, fmt.Errorf("create %s: %w", m.Code, err)
		}
	}
	return len(defaultMethods), nil
}
