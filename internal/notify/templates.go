package notify

import "fmt"

// VerificationEmail renders the signup verification message.
func VerificationEmail(appName, code string, expiryMinutes int) (subject, body string) {
	subject = fmt.Sprintf("Verify Your Email - %s", appName)
	body = fmt.Sprintf(`<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; margin: 0; padding: 0; background-color: #f5f5f5; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 20px; border-radius: 8px; }
    .header h1 { color: #148F55; margin: 0; text-align: center; }
    .otp-box { background-color: #f9f9f9; border: 1px solid #ddd; border-radius: 8px; padding: 15px; text-align: center; margin: 20px 0; }
    .otp-code { font-size: 24px; font-weight: bold; letter-spacing: 5px; color: #148F55; }
    .footer { text-align: center; padding: 20px 0; color: #666; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>%s</h1></div>
    <p>Hello,</p>
    <p>Thank you for signing up. To complete your registration, please use the verification code below:</p>
    <div class="otp-box"><div class="otp-code">%s</div></div>
    <p>This code will expire in %d minutes. If you did not request this verification, please ignore this email.</p>
    <div class="footer"><p>This is an automated message, please do not reply to this email.</p></div>
  </div>
</body>
</html>`, appName, code, expiryMinutes)
	return subject, body
}

// PasswordResetEmail renders the password reset code message.
func PasswordResetEmail(appName, code string, expiryMinutes int) (subject, body string) {
	subject = fmt.Sprintf("Reset Your Password - %s", appName)
	body = fmt.Sprintf(`<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; margin: 0; padding: 0; background-color: #f5f5f5; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 20px; border-radius: 8px; }
    .header h1 { color: #148F55; margin: 0; text-align: center; }
    .otp-box { background-color: #f9f9f9; border: 1px solid #ddd; border-radius: 8px; padding: 15px; text-align: center; margin: 20px 0; }
    .otp-code { font-size: 24px; font-weight: bold; letter-spacing: 5px; color: #148F55; }
    .footer { text-align: center; padding: 20px 0; color: #666; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>%s</h1></div>
    <p>Hello,</p>
    <p>You requested to reset your password. Please use the code below:</p>
    <div class="otp-box"><div class="otp-code">%s</div></div>
    <p>This code will expire in %d minutes. If you did not request a password reset, please ignore this email or contact support if you have concerns.</p>
    <div class="footer"><p>This is an automated message, please do not reply to this email.</p></div>
  </div>
</body>
</html>`, appName, code, expiryMinutes)
	return subject, body
}
