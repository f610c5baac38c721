package service

import "fmt"

func verificationEmailTemplate(firstName, verifyURL, appName string) (subject, body string) {
	subject = "Verify your email address"

	greeting := "Hello"
	if firstName != "" {
		greeting = "Hello " + firstName
	}

	body = fmt.Sprintf(`%s,

Please verify your email address by clicking the link below:

%s

The link expires in 24 hours. If you did not create a %s account, you can
ignore this email.

The %s team
`, greeting, verifyURL, appName, appName)

	return subject, body
}
