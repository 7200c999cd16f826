package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rgonek/contentdesk/auth"
	"github.com/spf13/cobra"
)

func newLoginCommand(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the token",
		Long:  "Login reads the password from CONTENTDESK_PASSWORD or the first line of stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password := os.Getenv("CONTENTDESK_PASSWORD")
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password required on stdin or in CONTENTDESK_PASSWORD")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			anon, err := a.client(a.cfg.Auth.BaseURL, nil)
			if err != nil {
				return err
			}
			session, err := auth.Login(cmd.Context(), anon, email, password)
			if err != nil {
				return err
			}

			store := a.tokenStore()
			if err := store.Save(session.Token); err != nil {
				return err
			}
			a.log.Info().Str("token_file", store.Path()).Msg("Token saved")
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", session.User.Name, session.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.tokenStore().Clear()
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.client(a.cfg.Auth.BaseURL, a.tokens())
			if err != nil {
				return err
			}
			user, err := auth.Me(cmd.Context(), api)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", user.Name, user.Email, user.Role)

			if token, err := a.tokens().Token(cmd.Context()); err == nil {
				if exp, ok := auth.Expiry(token); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "token expires %s\n", exp.Local().Format(time.RFC3339))
				}
			}
			return nil
		},
	}
}
