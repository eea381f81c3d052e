package validators

import "regexp"

// Mailbox shape only: something@something.something. Deliverability is the
// mailer's problem.
var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func IsEmailShaped(email string) bool {
	return emailShape.MatchString(email)
}
