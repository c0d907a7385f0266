package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lojavirtual/internal/auth"
	"lojavirtual/internal/config"
	"lojavirtual/internal/domain"
)

var (
	tokenEmail  string
	tokenScopes []string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for local development",
	Long: `Sign a bearer token with JWT_SECRET (and JWT_ISSUER when set).

Examples:
  lojavirtual token --email alberto@zup.com.br
  lojavirtual token --email alberto@zup.com.br --scope products:write --scope products:read --ttl 1h`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "principal e-mail (required)")
	tokenCmd.Flags().StringSliceVar(&tokenScopes, "scope", []string{
		domain.ScopeUsersWrite, domain.ScopeUsersRead,
		domain.ScopeCategoriesWrite, domain.ScopeCategoriesRead,
		domain.ScopeProductsWrite, domain.ScopeProductsRead,
		domain.ScopePurchaseWrite,
	}, "granted scopes")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("email")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	tok, err := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer).Issue(tokenEmail, tokenScopes, tokenTTL)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
