package mailer

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/petdohod/workshop-api/internal/config"
	"github.com/petdohod/workshop-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func testMailer(captured *capturedMail) *Mailer {
	m := New(
		config.MailConfig{
			SMTPHost:   "smtp.example.com",
			SMTPPort:   587,
			From:       "info@petdohod.cz",
			AdminEmail: "admin@petdohod.cz",
		},
		config.PaymentConfig{BankAccount: "123456789/0100"},
	)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		*captured = capturedMail{addr: addr, from: from, to: to, msg: string(msg)}
		return nil
	}
	return m
}

func testRegistration() *domain.Registration {
	vs := "777005"
	return &domain.Registration{
		ID:               5,
		FirstName:        "Jana",
		LastName:         "Nováková",
		Email:            "jana@example.com",
		Phone:            "+420777123456",
		RegistrationType: domain.RegistrationTypeSingle,
		WorkshopDate:     "15. - 16. března 2026",
		WorkshopLocation: "Praha",
		Price:            "4 800 Kč",
		Status:           domain.StatusPending,
		VariableSymbol:   &vs,
		CreatedAt:        time.Now(),
	}
}

func TestRegistrationConfirmation(t *testing.T) {
	var captured capturedMail
	m := testMailer(&captured)

	program := "Sobota 9:00 začínáme"
	workshop := &domain.Workshop{ID: 1, Program: &program}

	err := m.RegistrationConfirmation(context.Background(), testRegistration(), workshop)
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", captured.addr)
	assert.Equal(t, []string{"jana@example.com"}, captured.to)
	assert.Contains(t, captured.msg, "Content-Type: text/html")
	assert.Contains(t, captured.msg, "Message-ID: <")
	assert.Contains(t, captured.msg, "Sobota 9:00")
	assert.Contains(t, captured.msg, "123456789/0100")
	assert.Contains(t, captured.msg, "777005")
	assert.Contains(t, captured.msg, "api.qrserver.com")
	// SPD amount with two decimals, percent-encoded into the QR URL
	assert.Contains(t, captured.msg, "AM%3A4800.00")
}

func TestRegistrationConfirmation_WorkshopAccountWins(t *testing.T) {
	var captured capturedMail
	m := testMailer(&captured)

	account := "19-123/0800"
	workshop := &domain.Workshop{ID: 1, BankAccount: &account}

	err := m.RegistrationConfirmation(context.Background(), testRegistration(), workshop)
	require.NoError(t, err)
	assert.Contains(t, captured.msg, "19-123/0800")
	assert.NotContains(t, captured.msg, "123456789/0100")
}

func TestRegistrationConfirmation_NoAccountNoPaymentBox(t *testing.T) {
	var captured capturedMail
	m := testMailer(&captured)
	m.payment.BankAccount = ""

	err := m.RegistrationConfirmation(context.Background(), testRegistration(), &domain.Workshop{ID: 1})
	require.NoError(t, err)
	assert.NotContains(t, captured.msg, "Platební údaje")
	assert.NotContains(t, captured.msg, "api.qrserver.com")
}

func TestAdminNewRegistration(t *testing.T) {
	var captured capturedMail
	m := testMailer(&captured)

	err := m.AdminNewRegistration(context.Background(), testRegistration())
	require.NoError(t, err)

	assert.Equal(t, []string{"admin@petdohod.cz"}, captured.to)
	assert.Contains(t, captured.msg, "Reply-To: jana@example.com")
	assert.Contains(t, captured.msg, "+420777123456")
}

func TestPaymentConfirmed(t *testing.T) {
	var captured capturedMail
	m := testMailer(&captured)

	err := m.PaymentConfirmed(context.Background(), testRegistration())
	require.NoError(t, err)

	assert.Equal(t, []string{"jana@example.com"}, captured.to)
	assert.Contains(t, captured.msg, "4 800 Kč")
}

func TestContactMessage(t *testing.T) {
	var captured capturedMail
	m := testMailer(&captured)

	msg := domain.ContactMessage{
		Name:    "Karel Svoboda",
		Email:   "karel@example.com",
		Message: "Dobrý den,\nmám dotaz.",
	}
	err := m.ContactMessage(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, []string{"admin@petdohod.cz"}, captured.to)
	assert.Contains(t, captured.msg, "Reply-To: karel@example.com")
	assert.Contains(t, captured.msg, "mám dotaz")
	assert.Contains(t, captured.msg, "<br>")
}

func TestDeliver_DisabledIsNoop(t *testing.T) {
	m := New(config.MailConfig{}, config.PaymentConfig{})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called when mail is disabled")
		return nil
	}

	err := m.PaymentConfirmed(context.Background(), testRegistration())
	assert.NoError(t, err)
}

func TestParseCZK(t *testing.T) {
	assert.InDelta(t, 4800, parseCZK("4 800 Kč"), 0.001)
	assert.InDelta(t, 12500, parseCZK("12 500 Kč"), 0.001)
	assert.InDelta(t, 0, parseCZK("zdarma"), 0.001)
}

func TestSubjectEncoding(t *testing.T) {
	var captured capturedMail
	m := testMailer(&captured)

	require.NoError(t, m.PaymentConfirmed(context.Background(), testRegistration()))

	// Czech subject must be RFC 2047 encoded, never raw UTF-8 in a header.
	for _, line := range strings.Split(captured.msg, "\r\n") {
		if strings.HasPrefix(line, "Subject: ") {
			assert.Contains(t, line, "=?utf-8?q?")
			return
		}
	}
	t.Fatal("subject header not found")
}
