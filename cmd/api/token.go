package main

import (
	"errors"
	"fmt"
	"time"

	jwtutil "github.com/5w1tchy/course-library-api/internal/security/jwt"
	"github.com/spf13/cobra"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		subject string
		scope   string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print an access token signed with AUTH_JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if !cfg.AuthEnabled() {
				return errors.New("AUTH_JWT_SECRET not set")
			}
			if ttl <= 0 {
				ttl = cfg.AccessTTL
			}
			token, _, err := jwtutil.NewSigner(cfg).Sign(subject, scope, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "token subject (required)")
	cmd.Flags().StringVar(&scope, "scope", WriteScope, "space separated scopes")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default AUTH_ACCESS_TTL)")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
