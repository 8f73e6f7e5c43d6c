package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Lumina Learning <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A40; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A40; line-height: 1.6; }
			.content h2 { color: #1A1A40; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #6D5BD0; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #6D5BD0; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LUMINA LEARNING</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Lumina Learning. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Lumina Learning"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Lumina Learning</strong>! We are thrilled to have you onboard.</p>
		<p>Your account has been successfully created. You can now browse published courses and start learning.</p>
		<p>If you have any questions, feel free to reach out to our support team.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Enrollment Confirmation (after checkout)
func SendEnrollmentConfirmation(email, name string, courseCount int) error {
	subject := "Enrollment Confirmed"
	plural := "course"
	if courseCount != 1 {
		plural = "courses"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your checkout was successful. You are now enrolled in <strong>%d %s</strong>.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Open your dashboard to start your first lesson.
		</div>
		<a href="#" class="btn">Go to My Courses</a>
	`, name, courseCount, plural)

	return SendEmail([]string{email}, subject, getEmailTemplate("You're Enrolled!", body))
}

// 3. Wallet Deposit
func SendWalletDepositEmail(email, name string, amount uint64) {
	subject := "Funds Added to Wallet"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your deposit of <strong>%d</strong>.</p>
		<p>Your wallet balance has been updated successfully.</p>
	`, name, amount)

	go SendEmail([]string{email}, subject, getEmailTemplate("Deposit Confirmed", body))
}

// 4. Course Completed
func SendCourseCompletedEmail(email, name, courseTitle string) {
	subject := "Congratulations! Course Completed"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have completed <strong>%s</strong>. Well done!</p>
		<p>Keep the momentum going and pick your next course.</p>
		<a href="#" class="btn">Browse Courses</a>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Completed", body))
}

// 5. Course Published (To Mentor)
func SendCoursePublishedEmail(email, name, courseTitle string) {
	subject := "Course Published: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your course <strong>%s</strong> is now <strong>PUBLISHED</strong> and visible to students.</p>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Published", body))
}
