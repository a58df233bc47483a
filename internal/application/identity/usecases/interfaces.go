// Package usecases implements account registration and login.
package usecases

// AccessTokenIssuer signs API access tokens for authenticated sessions.
type AccessTokenIssuer interface {
	GenerateAccessToken(userID uint, role string) (string, error)
}

// VerificationTokenIssuer signs the email verification link token sent
// right after registration.
type VerificationTokenIssuer interface {
	IssueVerificationToken(userID uint, email string) (string, error)
}

// Mailer sends the initial verification email.
type Mailer interface {
	SendVerificationEmail(to, username, token string) error
}
