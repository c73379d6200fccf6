package model

// Master: bentuk seragam tabel master {id serial, name unique}
type Master struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:255;not null;uniqueIndex" json:"name"`
}

/* ===================== Event masters ===================== */

type EventCategoryModel struct{ Master }

func (EventCategoryModel) TableName() string { return TableEventCategories }

type EventSponsorTypeModel struct{ Master }

func (EventSponsorTypeModel) TableName() string { return TableEventSponsorTypes }

type EventSizeModel struct{ Master }

func (EventSizeModel) TableName() string { return TableEventSizes }

type EventModeModel struct{ Master }

func (EventModeModel) TableName() string { return TableEventModes }

/* ===================== Sponsor masters ===================== */

type SponsorCategoryModel struct{ Master }

func (SponsorCategoryModel) TableName() string { return TableSponsorCategories }

type SponsorTypeModel struct{ Master }

func (SponsorTypeModel) TableName() string { return TableSponsorTypes }

type SponsorScopeModel struct{ Master }

func (SponsorScopeModel) TableName() string { return TableSponsorScopes }

const (
	TableEventCategories   = "event_categories"
	TableEventSponsorTypes = "event_sponsor_types"
	TableEventSizes        = "event_sizes"
	TableEventModes        = "event_modes"
	TableSponsorCategories = "sponsor_categories"
	TableSponsorTypes      = "sponsor_types"
	TableSponsorScopes     = "sponsor_scopes"
)

// AllTables: urutan tetap (dipakai loader & seeder)
var AllTables = []string{
	TableEventCategories,
	TableEventSponsorTypes,
	TableEventSizes,
	TableEventModes,
	TableSponsorCategories,
	TableSponsorTypes,
	TableSponsorScopes,
}

// AllModels untuk AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&EventCategoryModel{},
		&EventSponsorTypeModel{},
		&EventSizeModel{},
		&EventModeModel{},
		&SponsorCategoryModel{},
		&SponsorTypeModel{},
		&SponsorScopeModel{},
	}
}
