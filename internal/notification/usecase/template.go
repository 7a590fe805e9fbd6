package usecase

const otpSubject = "Your OTP Code"

const otpTextTemplate = `Hi {{.Name}},

Your otp code is {{.OTP}}

The code expires at {{.ExpiresAt}}. If you did not ask to reset your password you can ignore this e-mail.

{{.Company}}
`

const otpHTMLTemplate = `<!doctype html>
<html>
  <body style="font-family: sans-serif; color: #222;">
    <p>Hi {{.Name}},</p>
    <p>Your otp code is <strong style="font-size: 20px; letter-spacing: 4px;">{{.OTP}}</strong></p>
    <p>The code expires at {{.ExpiresAt}}. If you did not ask to reset your password you can ignore this e-mail.</p>
    <p style="color: #888; font-size: 12px;">&copy; {{.Year}} {{.Company}}</p>
  </body>
</html>
`

type otpTemplateData struct {
	Name      string
	OTP       string
	ExpiresAt string
	Company   string
	Year      string
}
