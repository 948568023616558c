package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"consultorio/models"
	"consultorio/utils"

	"go.uber.org/zap"
)

// ResetPassword mails a single-use link to the owner of email. Unknown emails
// are reported as ErrUserNotFound.
func (s *DefaultUserService) ResetPassword(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return notFound(err)
	}
	if s.AuthCache == nil {
		return fmt.Errorf("password reset is not configured")
	}

	token, err := utils.IssueResetToken(ctx, s.AuthCache, u.Username)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/change_password?username=%s&token=%s",
		strings.TrimRight(s.FrontendURL, "/"), url.QueryEscape(u.Username), url.QueryEscape(token))
	body := fmt.Sprintf("Hola %s,\n\nPara elegir una nueva contraseña ingresá a:\n%s\n\nEl enlace vence en %d minutos.",
		u.Name, link, int(utils.ResetTokenTTL.Minutes()))

	if err := s.sendEmail(ctx, models.EmailPayload{
		To:      u.Email,
		ToName:  u.Name + " " + u.Lastname,
		Subject: "Restablecer contraseña",
		Body:    body,
	}); err != nil {
		return err
	}
	utils.GetLogger().Info("password reset requested", zap.String("userId", u.ID))
	return nil
}

// ChangePassword consumes a reset token and stores the new password.
func (s *DefaultUserService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	u, err := s.Repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return notFound(err)
	}
	if s.AuthCache == nil {
		return utils.ErrResetTokenInvalid
	}
	if err := utils.ConsumeResetToken(ctx, s.AuthCache, u.Username, req.Token); err != nil {
		if errors.Is(err, utils.ErrResetTokenInvalid) {
			return err
		}
		return fmt.Errorf("failed to verify reset token: %w", err)
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return notFound(s.Repo.Update(ctx, u))
}
