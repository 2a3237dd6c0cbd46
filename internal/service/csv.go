package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/petdohod/workshop-api/internal/domain"
)

// utf8BOM makes Excel detect the encoding when the export is opened
// directly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var exportHeader = []string{
	"Jméno", "Příjmení", "Email", "Telefon",
	"Adresa", "Město", "PSČ", "Typ",
	"Partner", "Partner email",
	"Workshop", "Místo", "Cena", "Variabilní symbol",
	"Status", "Poznámky", "Datum registrace",
}

// ExportCSV renders registrations as a semicolon-delimited CSV with a UTF-8
// BOM, the format Czech Excel expects.
func ExportCSV(regs []domain.Registration) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, reg := range regs {
		record := []string{
			reg.FirstName,
			reg.LastName,
			reg.Email,
			reg.Phone,
			deref(reg.Address),
			deref(reg.City),
			deref(reg.Zip),
			reg.RegistrationType,
			partnerName(reg),
			deref(reg.PartnerEmail),
			reg.WorkshopDate,
			reg.WorkshopLocation,
			reg.Price,
			deref(reg.VariableSymbol),
			reg.Status,
			deref(reg.Notes),
			reg.CreatedAt.Format("02.01.2006 15:04"),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

func partnerName(reg domain.Registration) string {
	first := deref(reg.PartnerFirstName)
	last := deref(reg.PartnerLastName)
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
