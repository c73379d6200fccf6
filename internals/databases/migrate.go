package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	eventModel "sponsorku_backend/internals/features/events/events/model"
	proposalModel "sponsorku_backend/internals/features/events/proposals/model"
	submissionModel "sponsorku_backend/internals/features/events/submissions/model"
	paymentModel "sponsorku_backend/internals/features/finance/payments/model"
	catalogModel "sponsorku_backend/internals/features/masters/catalog/model"
	authModel "sponsorku_backend/internals/features/users/auth/model"
	userModel "sponsorku_backend/internals/features/users/user/model"
)

// AutoMigrate: semua tabel + unique index (uq_proposals_event, uq_proposal_sponsors_pair, uq_payments_order_id).
// Urutan mengikuti FK: master → users → profiles → events → proposals → submissions → payments.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Warn().Err(err).Msg("[MIGRATE] pgcrypto tidak bisa dibuat (gen_random_uuid butuh PG13+ / pgcrypto)")
	}

	models := catalogModel.AllModels()
	models = append(models,
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&userModel.EOProfileModel{},
		&userModel.SponsorProfileModel{},
		&eventModel.EventModel{},
		&proposalModel.ProposalModel{},
		&submissionModel.ProposalSponsorModel{},
		&paymentModel.PaymentModel{},
		&paymentModel.PaymentGatewayEventModel{},
	)

	if err := db.AutoMigrate(models...); err != nil {
		return err
	}
	for _, fk := range foreignKeys {
		if err := db.Exec(fk.SQL()).Error; err != nil {
			return fmt.Errorf("fk %s: %w", fk.Name, err)
		}
	}
	log.Info().Int("tables", len(models)).Int("fks", len(foreignKeys)).Msg("[MIGRATE] ✅ AutoMigrate selesai")
	return nil
}

/* ===================== Foreign keys ===================== */

type foreignKey struct {
	Name     string
	Table    string
	Column   string
	RefTable string
	RefCol   string
	OnDelete string
}

// SQL: idempotent, constraint yang sudah ada dilewati
func (fk foreignKey) SQL() string {
	return fmt.Sprintf(`DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
    ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s;
  END IF;
END $$;`, fk.Name, fk.Table, fk.Name, fk.Column, fk.RefTable, fk.RefCol, fk.OnDelete)
}

// referensi master stale → 23503 → 400 (helper.PGAppError)
var foreignKeys = []foreignKey{
	// profiles
	{"fk_eo_profiles_user", "eo_profiles", "eo_profile_user_id", "users", "id", "CASCADE"},
	{"fk_sponsor_profiles_user", "sponsor_profiles", "sponsor_profile_user_id", "users", "id", "CASCADE"},
	{"fk_sponsor_profiles_category", "sponsor_profiles", "sponsor_profile_category_id", catalogModel.TableSponsorCategories, "id", "SET NULL"},
	{"fk_sponsor_profiles_type", "sponsor_profiles", "sponsor_profile_type_id", catalogModel.TableSponsorTypes, "id", "SET NULL"},
	{"fk_sponsor_profiles_scope", "sponsor_profiles", "sponsor_profile_scope_id", catalogModel.TableSponsorScopes, "id", "SET NULL"},

	// events
	{"fk_events_eo", "events", "event_eo_id", "eo_profiles", "eo_profile_id", "CASCADE"},
	{"fk_events_category", "events", "event_category_id", catalogModel.TableEventCategories, "id", "SET NULL"},
	{"fk_events_sponsor_type", "events", "event_sponsor_type_id", catalogModel.TableEventSponsorTypes, "id", "SET NULL"},
	{"fk_events_size", "events", "event_size_id", catalogModel.TableEventSizes, "id", "SET NULL"},
	{"fk_events_mode", "events", "event_mode_id", catalogModel.TableEventModes, "id", "SET NULL"},

	// proposals & submissions
	{"fk_proposals_event", "proposals", "proposal_event_id", "events", "event_id", "CASCADE"},
	{"fk_proposal_sponsors_proposal", "proposal_sponsors", "proposal_sponsor_proposal_id", "proposals", "proposal_id", "CASCADE"},
	{"fk_proposal_sponsors_event", "proposal_sponsors", "proposal_sponsor_event_id", "events", "event_id", "CASCADE"},
	{"fk_proposal_sponsors_sponsor", "proposal_sponsors", "proposal_sponsor_sponsor_id", "sponsor_profiles", "sponsor_profile_id", "CASCADE"},

	// ledger tetap ada walau event dihapus
	{"fk_payments_event", "payments", "payment_event_id", "events", "event_id", "SET NULL"},
	{"fk_payments_eo", "payments", "payment_eo_id", "eo_profiles", "eo_profile_id", "RESTRICT"},
}
