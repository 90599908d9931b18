package consultation

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teleconsult/teleconsult/internal/docgen"
	"github.com/teleconsult/teleconsult/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const cols = `id, patient_id, doctor_id, step, chief_complaint, questions,
	transcript, diagnosis_raw, documents, fallback_used, finalized_at,
	created_at, updated_at`

func scanConsultation(row pgx.Row) (*Consultation, error) {
	var c Consultation
	var questions, diagnosis, documents []byte
	err := row.Scan(&c.ID, &c.PatientID, &c.DoctorID, &c.Step, &c.ChiefComplaint,
		&questions, &c.Transcript, &diagnosis, &documents, &c.FallbackUsed,
		&c.FinalizedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &c.Questions); err != nil {
			return nil, err
		}
	}
	if len(diagnosis) > 0 {
		if err := json.Unmarshal(diagnosis, &c.DiagnosisRaw); err != nil {
			return nil, err
		}
	}
	if len(documents) > 0 {
		var set docgen.DocumentSet
		if err := json.Unmarshal(documents, &set); err != nil {
			return nil, err
		}
		c.Documents = &set
	}
	return &c, nil
}

func marshalJSONB(c *Consultation) (questions, diagnosis, documents []byte, err error) {
	if len(c.Questions) > 0 {
		if questions, err = json.Marshal(c.Questions); err != nil {
			return
		}
	}
	if c.DiagnosisRaw != nil {
		if diagnosis, err = json.Marshal(c.DiagnosisRaw); err != nil {
			return
		}
	}
	if c.Documents != nil {
		documents, err = json.Marshal(c.Documents)
	}
	return
}

func (r *repoPG) Create(ctx context.Context, c *Consultation) error {
	c.ID = uuid.New()
	questions, diagnosis, documents, err := marshalJSONB(c)
	if err != nil {
		return err
	}
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO consultations (id, patient_id, doctor_id, step, chief_complaint,
			questions, transcript, diagnosis_raw, documents, fallback_used, finalized_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		c.ID, c.PatientID, c.DoctorID, c.Step, c.ChiefComplaint,
		questions, c.Transcript, diagnosis, documents, c.FallbackUsed, c.FinalizedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return scanConsultation(r.conn(ctx).QueryRow(ctx,
		`SELECT `+cols+` FROM consultations WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, c *Consultation) error {
	questions, diagnosis, documents, err := marshalJSONB(c)
	if err != nil {
		return err
	}
	_, err = r.conn(ctx).Exec(ctx, `
		UPDATE consultations SET step=$2, chief_complaint=$3, questions=$4, transcript=$5,
			diagnosis_raw=$6, documents=$7, fallback_used=$8, finalized_at=$9, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.Step, c.ChiefComplaint, questions, c.Transcript,
		diagnosis, documents, c.FallbackUsed, c.FinalizedAt)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM consultations WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+cols+` FROM consultations WHERE patient_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var consultations []*Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, 0, err
		}
		consultations = append(consultations, c)
	}
	return consultations, total, rows.Err()
}
