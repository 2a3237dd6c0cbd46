// Package mailer sends the transactional emails over plain SMTP. There is no
// queue; callers invoke it fire-and-forget and live with best-effort
// delivery.
package mailer

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/petdohod/workshop-api/internal/config"
	"github.com/petdohod/workshop-api/internal/domain"
	"github.com/petdohod/workshop-api/internal/payment"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer renders and sends the notification emails.
type Mailer struct {
	cfg     config.MailConfig
	payment config.PaymentConfig
	send    sendFunc
}

// New creates a new mailer
func New(cfg config.MailConfig, paymentCfg config.PaymentConfig) *Mailer {
	return &Mailer{
		cfg:     cfg,
		payment: paymentCfg,
		send:    smtp.SendMail,
	}
}

// RegistrationConfirmation sends the signup confirmation with workshop
// details and, when a bank account is known, payment instructions with a QR
// code.
func (m *Mailer) RegistrationConfirmation(ctx context.Context, reg *domain.Registration, workshop *domain.Workshop) error {
	var b strings.Builder
	b.WriteString("<h2>Děkujeme za registraci!</h2>")
	fmt.Fprintf(&b, "<p>Ahoj %s,</p>", reg.FirstName)
	fmt.Fprintf(&b, "<p>tvoje registrace na workshop <strong>%s</strong> v místě <strong>%s</strong> je přijatá.</p>",
		reg.WorkshopDate, reg.WorkshopLocation)

	writeDetail := func(label string, value *string) {
		if value != nil && *value != "" {
			fmt.Fprintf(&b, "<p><strong>%s:</strong><br>%s</p>", label, *value)
		}
	}
	writeDetail("Program", workshop.Program)
	writeDetail("Adresa", workshop.Address)
	writeDetail("Co s sebou", workshop.WhatToBring)
	writeDetail("Lektor", workshop.InstructorInfo)

	m.writePaymentBox(&b, reg, workshop)

	b.WriteString("<p>Uvidíme se tam!</p>")

	subject := fmt.Sprintf("Potvrzení registrace – %s", reg.WorkshopDate)
	return m.deliver(ctx, reg.Email, "", subject, b.String())
}

// writePaymentBox appends the bank transfer instructions. Skipped entirely
// when no bank account is configured for the workshop or globally.
func (m *Mailer) writePaymentBox(b *strings.Builder, reg *domain.Registration, workshop *domain.Workshop) {
	account := m.payment.BankAccount
	if workshop.BankAccount != nil && *workshop.BankAccount != "" {
		account = *workshop.BankAccount
	}
	if account == "" {
		return
	}

	vs := ""
	if reg.VariableSymbol != nil {
		vs = *reg.VariableSymbol
	}

	p := payment.Payment{
		BankAccount:    account,
		Amount:         parseCZK(reg.Price),
		VariableSymbol: vs,
		Message:        fmt.Sprintf("%s %s", reg.FirstName, reg.LastName),
		Size:           m.payment.QRSize,
	}
	details := payment.FormatDetails(p)

	b.WriteString(`<div style="border:1px solid #ddd;border-radius:8px;padding:16px;margin:16px 0">`)
	b.WriteString("<h3>Platební údaje</h3>")
	fmt.Fprintf(b, "<p>Číslo účtu: <strong>%s</strong><br>", details.AccountNumber)
	fmt.Fprintf(b, "Částka: <strong>%s</strong><br>", reg.Price)
	fmt.Fprintf(b, "Variabilní symbol: <strong>%s</strong><br>", details.VariableSymbol)
	fmt.Fprintf(b, "Zpráva pro příjemce: %s</p>", details.Message)

	if qrURL, err := payment.QRCodeURL(p); err == nil {
		fmt.Fprintf(b, `<p><img src="%s" alt="QR platba" width="200" height="200"></p>`, qrURL)
	} else {
		log.Warn().Err(err).Int64("registration_id", reg.ID).Msg("Failed to build payment QR code")
	}
	b.WriteString("</div>")
}

// AdminNewRegistration notifies the site owner about a new signup.
func (m *Mailer) AdminNewRegistration(ctx context.Context, reg *domain.Registration) error {
	var b strings.Builder
	b.WriteString("<h2>Nová registrace</h2>")
	fmt.Fprintf(&b, "<p><strong>%s %s</strong><br>%s<br>%s</p>", reg.FirstName, reg.LastName, reg.Email, reg.Phone)
	fmt.Fprintf(&b, "<p>Workshop: %s, %s<br>Typ: %s<br>Cena: %s</p>",
		reg.WorkshopDate, reg.WorkshopLocation, reg.RegistrationType, reg.Price)
	if reg.PartnerFirstName != nil || reg.PartnerLastName != nil {
		fmt.Fprintf(&b, "<p>Partner: %s %s</p>", strValue(reg.PartnerFirstName), strValue(reg.PartnerLastName))
	}
	if reg.VariableSymbol != nil {
		fmt.Fprintf(&b, "<p>Variabilní symbol: %s</p>", *reg.VariableSymbol)
	}
	if reg.Notes != nil {
		fmt.Fprintf(&b, "<p>Poznámka: %s</p>", *reg.Notes)
	}

	subject := fmt.Sprintf("Nová registrace: %s %s", reg.FirstName, reg.LastName)
	return m.deliver(ctx, m.cfg.AdminEmail, reg.Email, subject, b.String())
}

// PaymentConfirmed tells the attendee their payment arrived.
func (m *Mailer) PaymentConfirmed(ctx context.Context, reg *domain.Registration) error {
	var b strings.Builder
	b.WriteString("<h2>Platba přijata</h2>")
	fmt.Fprintf(&b, "<p>Ahoj %s,</p>", reg.FirstName)
	fmt.Fprintf(&b, "<p>potvrzujeme přijetí platby %s za workshop <strong>%s</strong> v místě <strong>%s</strong>. Místo máš rezervované.</p>",
		reg.Price, reg.WorkshopDate, reg.WorkshopLocation)
	b.WriteString("<p>Těšíme se na tebe!</p>")

	subject := fmt.Sprintf("Platba přijata – %s", reg.WorkshopDate)
	return m.deliver(ctx, reg.Email, "", subject, b.String())
}

// ContactMessage forwards a contact form submission to the site owner with
// Reply-To set to the visitor.
func (m *Mailer) ContactMessage(ctx context.Context, msg domain.ContactMessage) error {
	var b strings.Builder
	b.WriteString("<h2>Nová zpráva z kontaktního formuláře</h2>")
	fmt.Fprintf(&b, "<p><strong>%s</strong><br>%s", msg.Name, msg.Email)
	if msg.Phone != "" {
		fmt.Fprintf(&b, "<br>%s", msg.Phone)
	}
	b.WriteString("</p>")
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(msg.Message, "\n", "<br>"))

	subject := fmt.Sprintf("Zpráva z webu: %s", msg.Name)
	return m.deliver(ctx, m.cfg.AdminEmail, msg.Email, subject, b.String())
}

// deliver assembles the MIME message and sends it, honoring ctx while the
// SMTP dialog runs. With mail disabled it logs and reports success.
func (m *Mailer) deliver(ctx context.Context, to, replyTo, subject, htmlBody string) error {
	if !m.cfg.Enabled() {
		log.Debug().Str("to", to).Str("subject", subject).Msg("Mail disabled, skipping send")
		return nil
	}
	if to == "" {
		return fmt.Errorf("no recipient for %q", subject)
	}
	if replyTo == "" {
		replyTo = m.cfg.ReplyTo
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	if replyTo != "" {
		fmt.Fprintf(&msg, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&msg, "Message-ID: <%s@%s>\r\n", uuid.NewString(), m.cfg.SMTPHost)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	done := make(chan error, 1)
	go func() {
		done <- m.send(m.cfg.Addr(), auth, m.cfg.From, []string{to}, []byte(msg.String()))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// parseCZK reads an amount back out of a formatted price like "4 800 Kč".
func parseCZK(price string) float64 {
	cleaned := strings.NewReplacer(" ", "", " ", "", "Kč", "", ",", ".").Replace(price)
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
