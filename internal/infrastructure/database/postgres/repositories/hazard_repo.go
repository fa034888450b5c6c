package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	goerrors "errors"

	"github.com/sakhi-health/toxiscan/internal/domain/hazard"
	"github.com/sakhi-health/toxiscan/pkg/errors"
	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

// SourceDatabase is the source identifier stamped on records served from
// the hazard_records table.
const SourceDatabase = "hazard_database"

// HazardRepository is a hazard.KnowledgeBase backed by the hazard_records
// table.
type HazardRepository struct {
	db *sql.DB
}

// NewHazardRepository builds a repository over db.
func NewHazardRepository(db *sql.DB) *HazardRepository {
	return &HazardRepository{db: db}
}

var _ hazard.KnowledgeBase = (*HazardRepository)(nil)

// ByCAS returns the hazard record for a CAS number, or ok=false when the
// chemical is not in the table.
func (r *HazardRepository) ByCAS(ctx context.Context, casNumber string) (*toxicity.HazardRecord, bool, error) {
	var (
		name          string
		edcTypesRaw   []byte
		riskScore     float64
		effectsRaw    []byte
		fssaiApproved sql.NullBool
		fssaiLimit    string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT name, edc_types, risk_score, health_effects, fssai_approved, fssai_limit
		 FROM hazard_records WHERE cas_number = $1`,
		casNumber,
	).Scan(&name, &edcTypesRaw, &riskScore, &effectsRaw, &fssaiApproved, &fssaiLimit)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeDatabaseError, "hazard lookup failed")
	}

	var edcTypes []toxicity.EDCType
	if err := json.Unmarshal(edcTypesRaw, &edcTypes); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeSerialization, "decode edc types").WithDetail(casNumber)
	}
	var effects []string
	if err := json.Unmarshal(effectsRaw, &effects); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeSerialization, "decode health effects").WithDetail(casNumber)
	}

	rec := &toxicity.HazardRecord{
		Name:          name,
		CASNumber:     casNumber,
		EDCTypes:      edcTypes,
		RiskScore:     riskScore,
		HealthEffects: effects,
		Regulatory:    toxicity.RegulatoryStatus{FSSAILimit: fssaiLimit},
		Sources:       []string{SourceDatabase},
		Confidence:    1.0,
	}
	if fssaiApproved.Valid {
		approved := fssaiApproved.Bool
		rec.Regulatory.FSSAIApproved = &approved
	}
	if err := rec.Validate(); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeHazardRecordInvalid, "stored hazard record is invalid").WithDetail(casNumber)
	}
	return rec, true, nil
}

// Upsert adds or updates one hazard record.
func (r *HazardRepository) Upsert(ctx context.Context, rec *toxicity.HazardRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	edcTypes, err := json.Marshal(rec.EDCTypes)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encode edc types")
	}
	effects, err := json.Marshal(rec.HealthEffects)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encode health effects")
	}

	var approved sql.NullBool
	if rec.Regulatory.FSSAIApproved != nil {
		approved = sql.NullBool{Bool: *rec.Regulatory.FSSAIApproved, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO hazard_records (cas_number, name, edc_types, risk_score, health_effects, fssai_approved, fssai_limit)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (cas_number) DO UPDATE SET
		     name = EXCLUDED.name,
		     edc_types = EXCLUDED.edc_types,
		     risk_score = EXCLUDED.risk_score,
		     health_effects = EXCLUDED.health_effects,
		     fssai_approved = EXCLUDED.fssai_approved,
		     fssai_limit = EXCLUDED.fssai_limit`,
		rec.CASNumber, rec.Name, edcTypes, rec.RiskScore, effects, approved, rec.Regulatory.FSSAILimit,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "hazard upsert failed")
	}
	return nil
}
