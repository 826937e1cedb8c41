package dto

import (
	"venuedesk/internal/domains/venue/model"
	"venuedesk/shared"
	gDto "venuedesk/shared/dto"
	gModel "venuedesk/shared/model"
	"venuedesk/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateVenueRequest struct {
	Name      string   `json:"name"      validate:"required,max=100"`
	Floor     string   `json:"floor"     validate:"omitempty,max=50"`
	Capacity  int      `json:"capacity"  validate:"required,gte=1"`
	Amenities []string `json:"amenities" validate:"omitempty,dive,max=100"`
	Status    string   `json:"status"    validate:"omitempty,oneof=available maintenance"`
}

func (c *CreateVenueRequest) ToModel(user string) model.Venue {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	return model.Venue{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Floor:     c.Floor,
		Capacity:  c.Capacity,
		Amenities: c.Amenities,
		Status:    status,
		Active:    true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateVenueRequest struct {
	Name      string   `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Floor     string   `db:"floor"     json:"floor"     validate:"omitempty,max=50"`
	Capacity  int      `db:"capacity"  json:"capacity"  validate:"omitempty,gte=1"`
	Amenities []string `json:"amenities"                validate:"omitempty,dive,max=100"`
	Status    string   `db:"status"    json:"status"    validate:"omitempty,oneof=available maintenance"`
}

// AmenitiesColumn returns the amenities as a driver-encodable array.
func (u *UpdateVenueRequest) AmenitiesColumn() pq.StringArray {
	return pq.StringArray(u.Amenities)
}

type VenueResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Floor     string   `json:"floor"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
	Status    string   `json:"status"`
	Active    bool     `json:"active"`
	gDto.Metadata
}

func (r *VenueResponse) FromModel(mod model.Venue) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Floor = mod.Floor
	r.Capacity = mod.Capacity
	r.Amenities = mod.Amenities
	r.Status = mod.Status
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetVenuesResponse struct {
	Venues    []VenueResponse `json:"venues"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVenuesResponse) FromModels(models []model.Venue, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Venues = make([]VenueResponse, len(models))
	for i, mod := range models {
		r.Venues[i].FromModel(mod)
	}
}
