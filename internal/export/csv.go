package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"ngoconnect/internal/domain"
)

// RegistrationsFilename is the download name offered for the users export.
const RegistrationsFilename = "ngo_registrations.csv"

// WriteUsers streams the registrations CSV with the columns the admin
// dashboard has always offered.
func WriteUsers(w io.Writer, users []domain.User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Name", "Email", "Role", "JoinedAt"}); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, u := range users {
		record := []string{u.ID, u.Name, u.Email, string(u.Role), u.JoinedAt.Format(time.RFC3339)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
