package email

// PreviewData holds sample values for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "Ada",
	},
	TemplateSignIn: {
		"SignInURL": "http://localhost:8080/api/auth/callback/email?token=preview",
		"Email":     "ada@example.com",
	},
}
