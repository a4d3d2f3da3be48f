// middleware/admin.go
package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/snapgrid/snapgrid_backend/models"
)

// AdminPolicy answers "is this principal an admin?". It is constructed once
// at startup and injected wherever moderation rights are checked, so tests
// can substitute their own allow-list.
type AdminPolicy struct {
	emails map[string]struct{}
}

// NewAdminPolicy builds a policy from an explicit allow-list of emails
func NewAdminPolicy(emails []string) AdminPolicy {
	allowed := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowed[email] = struct{}{}
		}
	}
	return AdminPolicy{emails: allowed}
}

// NewAdminPolicyFromEnv reads the comma-separated ADMIN_EMAILS variable
func NewAdminPolicyFromEnv() AdminPolicy {
	return NewAdminPolicy(strings.Split(os.Getenv("ADMIN_EMAILS"), ","))
}

// IsAdmin reports whether the email is on the allow-list
func (p AdminPolicy) IsAdmin(email string) bool {
	_, ok := p.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// RequireAdmin gates a route group on the admin policy. Non-admins get 403
// and no data.
func RequireAdmin(policy AdminPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := GetEmailFromToken(c)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication required",
				})
			}
			if !policy.IsAdmin(email) {
				return c.JSON(http.StatusForbidden, models.Response{
					Status:  http.StatusForbidden,
					Message: "Admin access required",
				})
			}
			return next(c)
		}
	}
}
