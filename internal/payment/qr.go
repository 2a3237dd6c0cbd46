// Package payment builds Czech SPD (Short Payment Descriptor) payment
// strings and QR render URLs for domestic bank transfers.
package payment

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
)

// ErrInvalidAmount is returned when the payment amount is not a usable
// non-negative number.
var ErrInvalidAmount = errors.New("invalid payment amount")

const defaultQRSize = "300x300"

// Payment describes one requested domestic transfer.
type Payment struct {
	// BankAccount is either an IBAN (CZ prefix) or a local
	// "prefix-account/bankCode" or "account/bankCode" string.
	BankAccount    string
	Amount         float64
	VariableSymbol string
	Message        string
	// Size is the QR image size in "WxH" pixels; empty means 300x300.
	Size string
}

// AccountToIBAN converts a Czech local account number into an IBAN-shaped
// string. IBANs pass through unchanged. The "00" check digits are a fixed
// placeholder, not a computed checksum; the result is display-only and must
// not be used for validating transfers. Malformed input passes through
// best-effort rather than erroring.
func AccountToIBAN(account string) string {
	if account == "" {
		return ""
	}
	if strings.HasPrefix(account, "CZ") {
		return account
	}

	parts := strings.Split(account, "/")
	if len(parts) != 2 {
		return account
	}
	accountPart, bankCode := parts[0], parts[1]

	prefix := "000000"
	number := accountPart
	if segments := strings.Split(accountPart, "-"); len(segments) == 2 {
		prefix = leftPad(segments[0], 6)
		number = segments[1]
	}

	return "CZ00" + bankCode + prefix + leftPad(number, 10)
}

// PaymentString renders the SPD*1.0 payment descriptor. MSG and X-VS
// segments are omitted entirely when their source value is empty.
func PaymentString(p Payment) (string, error) {
	if p.Amount < 0 || math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidAmount, p.Amount)
	}

	segments := []string{
		"SPD*1.0",
		"ACC:" + AccountToIBAN(p.BankAccount),
		fmt.Sprintf("AM:%.2f", p.Amount),
		"CC:CZK",
	}
	if p.Message != "" {
		segments = append(segments, "MSG:"+p.Message)
	}
	if p.VariableSymbol != "" {
		segments = append(segments, "X-VS:"+p.VariableSymbol)
	}

	return strings.Join(segments, "*"), nil
}

// QRCodeURL returns a URL rendering the payment as a scannable QR image.
func QRCodeURL(p Payment) (string, error) {
	data, err := PaymentString(p)
	if err != nil {
		return "", err
	}

	size := p.Size
	if size == "" {
		size = defaultQRSize
	}

	return fmt.Sprintf(
		"https://api.qrserver.com/v1/create-qr-code/?size=%s&data=%s",
		size, url.QueryEscape(data),
	), nil
}

// Details is a human-readable rendition of payment data for email bodies.
type Details struct {
	AccountNumber  string
	Amount         string
	VariableSymbol string
	Message        string
}

// FormatDetails formats the payment fields the way they appear in
// confirmation emails, with "-" placeholders for absent values.
func FormatDetails(p Payment) Details {
	d := Details{
		AccountNumber:  p.BankAccount,
		Amount:         FormatCZK(p.Amount),
		VariableSymbol: p.VariableSymbol,
		Message:        p.Message,
	}
	if d.VariableSymbol == "" {
		d.VariableSymbol = "-"
	}
	if d.Message == "" {
		d.Message = "-"
	}
	return d
}

// FormatCZK renders an amount with Czech thousands separation, e.g.
// "4 800 Kč". Fractional halers are dropped; prices are whole crowns.
func FormatCZK(amount float64) string {
	n := int64(math.Round(amount))
	s := fmt.Sprintf("%d", n)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)
	out := strings.Join(groups, " ")
	if neg {
		out = "-" + out
	}
	return out + " Kč"
}

func leftPad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
