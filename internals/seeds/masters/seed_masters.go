package masters

import (
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sponsorku_backend/internals/features/masters/catalog/model"
)

// SeedMastersFromJSON: idempoten, nama yang sudah ada dilewati (ON CONFLICT DO NOTHING)
func SeedMastersFromJSON(db *gorm.DB, filePath string) error {
	log.Info().Str("file", filePath).Msg("📥 Membaca file master")

	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var data map[string][]string
	if err := sonic.Unmarshal(file, &data); err != nil {
		return err
	}

	for _, table := range model.AllTables {
		names := data[table]
		if len(names) == 0 {
			continue
		}
		rows := make([]model.Master, 0, len(names))
		for _, n := range names {
			rows = append(rows, model.Master{Name: n})
		}
		res := db.Table(table).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
			Create(&rows)
		if res.Error != nil {
			return res.Error
		}
		log.Info().Str("table", table).Int64("inserted", res.RowsAffected).Msg("✅ master seeded")
	}
	return nil
}
