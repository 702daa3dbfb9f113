package commands

import (
	"context"
	"fmt"
	"log/slog"

	sellerDomain "github.com/allisson/storefront/internal/seller/domain"
	sellerUseCase "github.com/allisson/storefront/internal/seller/usecase"
)

// CreateSellerOptions carries the create-seller flags.
type CreateSellerOptions struct {
	Username string
	Email    string
	FullName string
	// Password is read from io.Reader when empty.
	Password string
	Disabled bool
	Format   string
}

// RunCreateSeller registers a seller from the command line.
//
// Requirements: Database must be migrated and accessible.
func RunCreateSeller(
	ctx context.Context,
	useCase sellerUseCase.SellerUseCase,
	logger *slog.Logger,
	opts CreateSellerOptions,
	io IOTuple,
) error {
	logger.Info("creating new seller", slog.String("username", opts.Username))

	password := opts.Password
	if password == "" {
		var err error
		if password, err = promptPassword(io, "Password: "); err != nil {
			return err
		}
	}

	seller, err := useCase.Register(ctx, sellerUseCase.RegisterSellerInput{
		Username: opts.Username,
		Email:    opts.Email,
		FullName: opts.FullName,
		Password: password,
		Disabled: opts.Disabled,
	})
	if err != nil {
		return fmt.Errorf("failed to create seller: %w", err)
	}

	if opts.Format == "json" {
		if err := writeJSON(io.Writer, sellerOutput(seller)); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(io.Writer, "\nSeller created successfully!")
		_, _ = fmt.Fprintf(io.Writer, "ID: %s\n", seller.ID)
		_, _ = fmt.Fprintf(io.Writer, "Username: %s\n", seller.Username)
		_, _ = fmt.Fprintf(io.Writer, "Disabled: %t\n", seller.Disabled)
	}

	logger.Info("seller created successfully",
		slog.String("seller_id", seller.ID.String()),
		slog.String("username", seller.Username),
		slog.Bool("disabled", seller.Disabled),
	)
	return nil
}

func sellerOutput(seller *sellerDomain.Seller) map[string]any {
	return map[string]any{
		"id":        seller.ID.String(),
		"username":  seller.Username,
		"email":     seller.Email,
		"full_name": seller.FullName,
		"disabled":  seller.Disabled,
	}
}
