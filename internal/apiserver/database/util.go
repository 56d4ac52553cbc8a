package database

import (
	"context"

	"github.com/gestimo/gestimo/internal/common/config"
	"golang.org/x/crypto/bcrypt"
)

// InitSuperAdmin seeds the administrator account from configuration if no
// user with that email exists yet.
func InitSuperAdmin(ctx context.Context, db Database, cfg *config.SuperAdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	if _, err := db.GetUserByEmail(ctx, cfg.Email); err == nil {
		// Super admin already exists
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := cfg.Name
	if name == "" {
		name = "Administrator"
	}

	return db.CreateUser(ctx, &User{
		Name:     name,
		Email:    cfg.Email,
		Password: string(hashed),
		Role:     RoleAdmin,
		IsActive: true,
	})
}

// InitDefaultPaymentModes seeds the common payment modes on an empty table.
func InitDefaultPaymentModes(ctx context.Context, db Database) error {
	modes, err := db.ListPaymentModes(ctx)
	if err != nil {
		return err
	}
	if len(modes) > 0 {
		return nil
	}

	defaults := []*PaymentMode{
		{Name: "Cash", Code: "CASH"},
		{Name: "Bank transfer", Code: "BANK_TRANSFER", RequiresProof: true},
		{Name: "Cheque", Code: "CHEQUE", RequiresProof: true},
		{Name: "Mobile money", Code: "MOBILE_MONEY"},
	}
	for _, mode := range defaults {
		if err := db.CreatePaymentMode(ctx, mode); err != nil {
			return err
		}
	}
	return nil
}
