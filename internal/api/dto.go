package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/weeks/internal/models"
	"github.com/starford/weeks/internal/planner"
)

var textKinds = []any{models.KindGoal, models.KindNote}

// AddItemRequest is the request body for adding a week item or inserting after an item.
type AddItemRequest struct {
	Kind models.Kind `json:"kind" example:"1" validate:"required"`
	Text string      `json:"text" example:"Call the dentist" validate:"required"`
}

// Validate validates the request.
func (r *AddItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Kind, validation.Required, validation.In(textKinds...)),
		validation.Field(&r.Text, validation.Required, validation.RuneLength(1, planner.MaxTextLength)),
	)
}

// AddObjectiveRequest is the request body for adding an objective to a year.
// At most one of Season and Month may be set.
type AddObjectiveRequest struct {
	Kind   models.Kind `json:"kind" example:"1" validate:"required"`
	Text   string      `json:"text" example:"Read twelve books" validate:"required"`
	Season *int        `json:"season,omitempty" example:"2"`
	Month  *int        `json:"month,omitempty" example:"7"`
}

// Validate validates the request.
func (r *AddObjectiveRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Kind, validation.Required, validation.In(textKinds...)),
		validation.Field(&r.Text, validation.Required, validation.RuneLength(1, planner.MaxTextLength)),
		validation.Field(&r.Season,
			validation.When(r.Month != nil, validation.Nil.Error("must be empty when month is set")),
			validation.Min(1), validation.Max(4)),
		validation.Field(&r.Month, validation.Min(1), validation.Max(12)),
	)
}

// ReorderRequest moves the item at index From to index To. Snapshot is the
// tag of the view the indices refer to; the If-Match header may carry it instead.
type ReorderRequest struct {
	From     int    `json:"from" example:"0"`
	To       int    `json:"to" example:"2"`
	Snapshot string `json:"snapshot,omitempty" example:"9f86d081884c7d65"`
}

// Validate validates the request.
func (r *ReorderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.From, validation.Min(0)),
		validation.Field(&r.To, validation.Min(0)),
	)
}

// TextRequest is the request body for replacing an item's text.
type TextRequest struct {
	Text string `json:"text" example:"Call the dentist at 9" validate:"required"`
}

// Validate validates the request.
func (r *TextRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text, validation.Required, validation.RuneLength(1, planner.MaxTextLength)),
	)
}

// MoveRequest is the request body for a one-step move.
type MoveRequest struct {
	Direction string `json:"direction" example:"up" validate:"required"`
}

// Validate validates the request.
func (r *MoveRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Direction, validation.Required, validation.In(string(planner.Up), string(planner.Down))),
	)
}

// ShiftRequest is the request body for moving a week item by whole weeks.
type ShiftRequest struct {
	Weeks int `json:"weeks" example:"1" validate:"required"`
}

// Validate validates the request.
func (r *ShiftRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Weeks, validation.Required),
	)
}

// PeriodRequest is the request body for placing an item in a year, season or month.
type PeriodRequest struct {
	Year   int  `json:"year" example:"1403" validate:"required"`
	Season *int `json:"season,omitempty" example:"2"`
	Month  *int `json:"month,omitempty"`
}

// Validate validates the request.
func (r *PeriodRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Year, validation.Required, validation.Min(1)),
		validation.Field(&r.Season,
			validation.When(r.Month != nil, validation.Nil.Error("must be empty when month is set")),
			validation.Min(1), validation.Max(4)),
		validation.Field(&r.Month, validation.Min(1), validation.Max(12)),
	)
}

func (r *PeriodRequest) period() planner.Period {
	return planner.Period{Year: r.Year, Season: r.Season, Month: r.Month}
}

// BackupResponse is returned after a successful database backup.
type BackupResponse struct {
	Path string `json:"path" example:"backups/weeks.2024-07-13T10-00-00Z.backup" validate:"required"`
}
