// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"fmt"

	"github.com/taibuivan/sixcent/internal/platform/mailer"
)

// Email subjects for the two transactional mails the auth flows send.
const (
	subjectRegisterConfirmation = "[Sixcent English App] Register Confirmation"
	subjectForgotPassword       = "[Sixcent English App] Forgot password"
)

// buildConfirmationEmail assembles the register-confirmation mail. The link
// points at the server's confirm endpoint, which in turn redirects the
// browser into the mobile app via the deep-link scheme.
func buildConfirmationEmail(serverURL, from, recipient, tokenKey string) mailer.Job {
	confirmLink := fmt.Sprintf("%s/confirm/%s/", serverURL, tokenKey)
	body := fmt.Sprintf(`<html><body>
<p>Welcome to Sixcent English App!</p>
<p>Please confirm your email address by opening the link below:</p>
<p><a href="%s">%s</a></p>
<p>The link is valid for 24 hours.</p>
</body></html>`, confirmLink, confirmLink)

	return mailer.Job{
		Subject:    subjectRegisterConfirmation,
		HTMLBody:   body,
		From:       from,
		Recipients: []string{recipient},
	}
}

// buildForgotPasswordEmail assembles the forgot-password mail carrying the
// short reset code the user types back into the app.
func buildForgotPasswordEmail(serverURL, from, recipient, tokenKey string) mailer.Job {
	forgotLink := fmt.Sprintf("%s/forgot-link/%s", serverURL, tokenKey)
	body := fmt.Sprintf(`<html><body>
<p>You requested a password reset for your Sixcent English App account.</p>
<p>Your reset code is: <strong>%s</strong></p>
<p><a href="%s">%s</a></p>
<p>The code is valid for 1 hour. If you did not request this, ignore this email.</p>
</body></html>`, tokenKey, forgotLink, forgotLink)

	return mailer.Job{
		Subject:    subjectForgotPassword,
		HTMLBody:   body,
		From:       from,
		Recipients: []string{recipient},
	}
}
