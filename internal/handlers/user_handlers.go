package handlers

import (
	"net/http"

	"craftfolio/internal/common"
	"craftfolio/internal/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"
)

// UserHandlers handles account, resume and contact-mail HTTP requests
type UserHandlers struct {
	authService   services.AuthService
	userService   services.UserService
	mailerService services.MailerService
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(authService services.AuthService, userService services.UserService,
	mailerService services.MailerService) *UserHandlers {
	return &UserHandlers{
		authService:   authService,
		userService:   userService,
		mailerService: mailerService,
	}
}

// CredentialsRequest is the register/login payload
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r CredentialsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
	)
}

// Register creates the administrative account
func (h *UserHandlers) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// Login exchanges credentials for a JWT
func (h *UserHandlers) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// Logout is a stateless acknowledgment; clients drop the token.
func (h *UserHandlers) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

// UserDetails returns the authenticated account
func (h *UserHandlers) UserDetails(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.userService.Details(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// ResumeDetails returns the portfolio owner's resume, publicly
func (h *UserHandlers) ResumeDetails(c echo.Context) error {
	user, err := h.userService.ResumeDetails(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// UpdatePasswordRequest is the authenticated password-change payload
type UpdatePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UpdatePassword rotates the authenticated account's password
func (h *UserHandlers) UpdatePassword(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	token, err := h.authService.UpdatePassword(c.Request().Context(), userID,
		req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}

// ForgotPasswordRequest carries the account email
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a short-lived reset token
func (h *UserHandlers) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	token, err := h.authService.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"reset_token": token,
	})
}

// ResetPasswordRequest carries the new credentials
type ResetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetPassword consumes a reset token and sets a new password
func (h *UserHandlers) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, token, err := h.authService.ResetPassword(c.Request().Context(),
		c.Param("token"), req.Password, req.ConfirmPassword)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// UpdateResume partially updates the resume document
func (h *UserHandlers) UpdateResume(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.UpdateResumeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userService.UpdateResume(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// RefreshUserImage re-syncs the resume image from the asset store
func (h *UserHandlers) RefreshUserImage(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.RefreshUserImage(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// SendMailRequest is the public contact-form payload
type SendMailRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r SendMailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// SendMail relays a contact-form message to the portfolio owner
func (h *UserHandlers) SendMail(c echo.Context) error {
	var req SendMailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.mailerService.SendContactMail(c.Request().Context(),
		req.Name, req.Email, req.Subject, req.Message); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Mail sent",
	})
}
