package service_test

import (
	"github.com/inkwellcms/inkwell/internal/service"
)

// newTestEmailService builds a dev-mode sender that logs instead of calling
// out to Resend.
func newTestEmailService() *service.EmailService {
	return service.NewEmailService("", "hello@example.com", "http://localhost:3000", "Inkwell", true)
}
