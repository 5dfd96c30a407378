package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendReceipt(toEmail, courseName, receiptNumber string, amount int) error
	SendBankTransferInstructions(toEmail, courseName, orderId, bankName, accountNumber, accountHolder string, amount int, deadline time.Time) error
	SendRefundCompleted(toEmail, courseName string, amount int) error
	SendRefundRejected(toEmail, courseName, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendReceipt(toEmail, courseName, receiptNumber string, amount int) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment Confirmed</h2>
			<p>Your payment for <strong>%s</strong> has been completed.</p>
			<p>Receipt number: <strong>%s</strong></p>
			<p>Amount paid: <strong>%d KRW</strong></p>
			<p>You now have access to the course. Happy learning!</p>
		</div>
	`, courseName, receiptNumber, amount)
	return s.send(toEmail, "Your payment receipt", body)
}

func (s *emailService) SendBankTransferInstructions(toEmail, courseName, orderId, bankName, accountNumber, accountHolder string, amount int, deadline time.Time) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Bank Transfer Instructions</h2>
			<p>To complete your purchase of <strong>%s</strong>, transfer the amount below.</p>
			<p>Bank: <strong>%s</strong></p>
			<p>Account: <strong>%s</strong> (%s)</p>
			<p>Amount: <strong>%d KRW</strong></p>
			<p>Order reference: %s</p>
			<p>Please complete the deposit by <strong>%s</strong>. Access is granted after we confirm the deposit.</p>
		</div>
	`, courseName, bankName, accountNumber, accountHolder, amount, orderId, deadline.Format("2006-01-02"))
	return s.send(toEmail, "Complete your bank transfer", body)
}

func (s *emailService) SendRefundCompleted(toEmail, courseName string, amount int) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Refund Completed</h2>
			<p>Your refund for <strong>%s</strong> has been processed.</p>
			<p>Refunded amount: <strong>%d KRW</strong></p>
			<p>Depending on your card issuer or bank, it may take a few business days to appear.</p>
		</div>
	`, courseName, amount)
	return s.send(toEmail, "Your refund has been processed", body)
}

func (s *emailService) SendRefundRejected(toEmail, courseName, reason string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Refund Request Rejected</h2>
			<p>Your refund request for <strong>%s</strong> was not approved.</p>
			<p>Reason: %s</p>
			<p>If you believe this is a mistake, please contact support.</p>
		</div>
	`, courseName, reason)
	return s.send(toEmail, "About your refund request", body)
}
