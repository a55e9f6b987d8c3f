package email

// SendWelcomeEmail greets a newly created user.
func (c *Client) SendWelcomeEmail(to, name string) error {
	return c.SendEmail(to, "Welcome to Mongo Starter!", TemplateWelcome, map[string]string{
		"UserName": name,
	})
}

// SendSignInLinkEmail delivers a one-time sign-in link.
func (c *Client) SendSignInLinkEmail(to, link string) error {
	return c.SendEmail(to, "Sign in to Mongo Starter", TemplateSignIn, map[string]string{
		"SignInURL": link,
		"Email":     to,
	})
}
