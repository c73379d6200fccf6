package seeds

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	masters "sponsorku_backend/internals/seeds/masters"
)

const MastersSeedPath = "internals/seeds/masters/data_masters.json"

// RunAllSeeds: idempotent, aman dipanggil tiap start (SEED_ON_START=true)
func RunAllSeeds(db *gorm.DB) {
	//* Master dropdown
	if err := masters.SeedMastersFromJSON(db, MastersSeedPath); err != nil {
		log.Error().Err(err).Msg("[SEED] masters gagal")
		return
	}
	log.Info().Msg("[SEED] ✅ masters")
}
