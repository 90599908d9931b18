package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table (intake record).
type Patient struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	BirthDate      *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Age            int       `db:"age" json:"age"`
	Gender         string    `db:"gender" json:"gender"`
	WeightKg       float64   `db:"weight_kg" json:"weight_kg"`
	HeightCm       float64   `db:"height_cm" json:"height_cm"`
	Allergies      []string  `db:"allergies" json:"allergies"`
	MedicalHistory []string  `db:"medical_history" json:"medical_history"`
	Medications    []string  `db:"medications" json:"medications"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Email          *string   `db:"email" json:"email,omitempty"`
	Address        *string   `db:"address" json:"address,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// BMI returns the body mass index, or 0 when weight or height is missing.
func (p *Patient) BMI() float64 {
	if p.WeightKg <= 0 || p.HeightCm <= 0 {
		return 0
	}
	h := p.HeightCm / 100
	return p.WeightKg / (h * h)
}
