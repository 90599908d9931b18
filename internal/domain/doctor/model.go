package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctors table (practitioner profile). RegistrationNo is
// the Medical Council of Mauritius registration number printed on every
// prescription header.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Qualifications string    `db:"qualifications" json:"qualifications"`
	Specialty      string    `db:"specialty" json:"specialty"`
	RegistrationNo string    `db:"registration_no" json:"registration_no"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Email          *string   `db:"email" json:"email,omitempty"`
	Address        *string   `db:"address" json:"address,omitempty"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
