package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sponsorku_backend/internals/features/events/events/model"
	catalogModel "sponsorku_backend/internals/features/masters/catalog/model"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	helper "sponsorku_backend/internals/helpers"
	"sponsorku_backend/internals/helpers/dbtime"
)

/* =========================================================
   CREATE (JSON / multipart)
   ========================================================= */

type CreateEventRequest struct {
	Name          string  `json:"name" form:"name"`
	Location      *string `json:"location" form:"location"`
	Target        *string `json:"target" form:"target"`
	Requirements  *string `json:"requirements" form:"requirements"`
	Description   *string `json:"description" form:"description"`
	StartTime     string  `json:"start_time" form:"start_time"`
	EndTime       string  `json:"end_time" form:"end_time"`
	CategoryID    *int    `json:"category_id" form:"category_id"`
	SponsorTypeID *int    `json:"sponsor_type_id" form:"sponsor_type_id"`
	SizeID        *int    `json:"size_id" form:"size_id"`
	ModeID        *int    `json:"mode_id" form:"mode_id"`
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func (r *CreateEventRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = trimPtr(r.Location)
	r.Target = trimPtr(r.Target)
	r.Requirements = trimPtr(r.Requirements)
	r.Description = trimPtr(r.Description)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
}

// ParseTimes: start & end wajib, format fleksibel (RFC3339 / YYYY-MM-DD HH:MM:SS / ...)
func (r *CreateEventRequest) ParseTimes() (time.Time, time.Time, error) {
	if r.StartTime == "" || r.EndTime == "" {
		return time.Time{}, time.Time{}, helper.ErrValidation("Start & End time required")
	}
	start, err := dbtime.ParseFlexible(r.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, helper.ErrValidation("Invalid date format")
	}
	end, err := dbtime.ParseFlexible(r.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, helper.ErrValidation("Invalid date format")
	}
	return start, end, nil
}

func (r *CreateEventRequest) ToModel(eoID uuid.UUID, start, end time.Time) *model.EventModel {
	return &model.EventModel{
		EventEOID:          eoID,
		EventName:          r.Name,
		EventLocation:      r.Location,
		EventTarget:        r.Target,
		EventRequirements:  r.Requirements,
		EventDescription:   r.Description,
		EventStartTime:     start,
		EventEndTime:       end,
		EventCategoryID:    r.CategoryID,
		EventSponsorTypeID: r.SponsorTypeID,
		EventSizeID:        r.SizeID,
		EventModeID:        r.ModeID,
	}
}

/* =========================================================
   PATCH (tri-state)
   ========================================================= */

type PatchEventRequest struct {
	Name          helper.PatchField[string] `json:"name"`
	Location      helper.PatchField[string] `json:"location"`
	Target        helper.PatchField[string] `json:"target"`
	Requirements  helper.PatchField[string] `json:"requirements"`
	Description   helper.PatchField[string] `json:"description"`
	StartTime     helper.PatchField[string] `json:"start_time"`
	EndTime       helper.PatchField[string] `json:"end_time"`
	CategoryID    helper.PatchField[int]    `json:"category_id"`
	SponsorTypeID helper.PatchField[int]    `json:"sponsor_type_id"`
	SizeID        helper.PatchField[int]    `json:"size_id"`
	ModeID        helper.PatchField[int]    `json:"mode_id"`
}

func patchOptional(dst **string, pf helper.PatchField[string]) {
	if v, ok := pf.Get(); ok {
		*dst = trimPtr(v)
	}
}

func patchRef(dst **int, pf helper.PatchField[int]) {
	if v, ok := pf.Get(); ok {
		*dst = v
	}
}

func patchTime(dst *time.Time, pf helper.PatchField[string], field string) (bool, error) {
	v, ok := pf.Get()
	if !ok {
		return false, nil
	}
	if pf.IsNull() || strings.TrimSpace(*v) == "" {
		return false, helper.ErrValidation(field + " tidak boleh kosong")
	}
	t, err := dbtime.ParseFlexible(*v)
	if err != nil {
		return false, helper.ErrValidation("Invalid date format")
	}
	changed := !t.Equal(*dst)
	*dst = t
	return changed, nil
}

// Apply: terapkan patch ke model. startChanged dipakai untuk aturan "tidak boleh di masa lalu".
func (p *PatchEventRequest) Apply(m *model.EventModel) (startChanged bool, err error) {
	if v, ok := p.Name.Get(); ok {
		name := trimPtr(v)
		if name == nil {
			return false, helper.ErrValidation("name tidak boleh kosong")
		}
		m.EventName = *name
	}
	patchOptional(&m.EventLocation, p.Location)
	patchOptional(&m.EventTarget, p.Target)
	patchOptional(&m.EventRequirements, p.Requirements)
	patchOptional(&m.EventDescription, p.Description)

	if startChanged, err = patchTime(&m.EventStartTime, p.StartTime, "start_time"); err != nil {
		return false, err
	}
	if _, err = patchTime(&m.EventEndTime, p.EndTime, "end_time"); err != nil {
		return false, err
	}

	patchRef(&m.EventCategoryID, p.CategoryID)
	patchRef(&m.EventSponsorTypeID, p.SponsorTypeID)
	patchRef(&m.EventSizeID, p.SizeID)
	patchRef(&m.EventModeID, p.ModeID)
	return startChanged, nil
}

/* =========================================================
   LIST QUERY
   ========================================================= */

type ListEventQuery struct {
	Q        string
	Upcoming bool
	Now      time.Time
}

/* =========================================================
   RESPONSE
   ========================================================= */

type EventResponse struct {
	model.EventModel
	Category    *catalog.Entry `json:"category,omitempty"`
	SponsorType *catalog.Entry `json:"sponsor_type,omitempty"`
	Size        *catalog.Entry `json:"size,omitempty"`
	Mode        *catalog.Entry `json:"mode,omitempty"`
}

func ToEventResponse(m *model.EventModel, snap *catalog.Snapshot) EventResponse {
	return EventResponse{
		EventModel:  *m,
		Category:    snap.Entry(catalogModel.TableEventCategories, m.EventCategoryID),
		SponsorType: snap.Entry(catalogModel.TableEventSponsorTypes, m.EventSponsorTypeID),
		Size:        snap.Entry(catalogModel.TableEventSizes, m.EventSizeID),
		Mode:        snap.Entry(catalogModel.TableEventModes, m.EventModeID),
	}
}

func ToEventResponseList(rows []model.EventModel, snap *catalog.Snapshot) []EventResponse {
	out := make([]EventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToEventResponse(&rows[i], snap))
	}
	return out
}

// CatalogRefsOf: referensi master dari model (dipakai setelah patch)
func CatalogRefsOf(m *model.EventModel) []catalog.Ref {
	return []catalog.Ref{
		{Table: catalogModel.TableEventCategories, Field: "category_id", ID: m.EventCategoryID},
		{Table: catalogModel.TableEventSponsorTypes, Field: "sponsor_type_id", ID: m.EventSponsorTypeID},
		{Table: catalogModel.TableEventSizes, Field: "size_id", ID: m.EventSizeID},
		{Table: catalogModel.TableEventModes, Field: "mode_id", ID: m.EventModeID},
	}
}
