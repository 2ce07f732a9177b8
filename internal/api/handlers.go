package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/weeks/internal/apperr"
	"github.com/starford/weeks/internal/calendar"
	"github.com/starford/weeks/internal/planner"
	"github.com/starford/weeks/internal/settings"
)

const maxBodyBytes = 1 << 20

// SettingsStore reads and replaces the calendar settings.
type SettingsStore interface {
	Current() planner.Settings
	Update(f settings.File) (planner.Settings, error)
}

// Handler holds API route handlers.
type Handler struct {
	svc       *planner.Service
	settings  SettingsStore
	backupDir string
}

// NewHandler creates a new Handler.
func NewHandler(svc *planner.Service, set SettingsStore, backupDir string) *Handler {
	return &Handler{svc: svc, settings: set, backupDir: backupDir}
}

// writeError maps planner errors onto HTTP statuses. Unexpected errors are
// logged and reported as 500.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrUnknownID):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("ordering changed, reload and retry"))
	case errors.Is(err, apperr.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNoKeySpace), errors.Is(err, apperr.ErrInvertedBounds):
		writeJSON(w, http.StatusConflict, errorBody("can't move item: "+err.Error()))
	case errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, apperr.ErrIndexOutOfRange),
		errors.Is(err, apperr.ErrSameIndex),
		errors.Is(err, apperr.ErrOutOfRange),
		errors.Is(err, apperr.ErrBadDaysRange),
		errors.Is(err, apperr.ErrLongDaysRange):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// decode reads a JSON body into v and validates it.
func decode(w http.ResponseWriter, r *http.Request, v validation.Validatable) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	if err := v.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return false
	}
	return true
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	n, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid "+name))
		return 0, false
	}
	return n, true
}

func dayParam(w http.ResponseWriter, r *http.Request) (calendar.Day, bool) {
	n, ok := intParam(w, r, "day")
	return calendar.Day(n), ok
}

func snapshotOf(r *http.Request, body string) string {
	if body != "" {
		return body
	}
	// Strip surrounding quotes if present (standard ETag format).
	return strings.Trim(r.Header.Get("If-Match"), `"`)
}

// Today handles GET /api/today.
//
//	@Summary		Today in the main and secondary calendars
//	@Tags			calendar
//	@Produce		json
//	@Success		200	{object}	planner.TodayView
//	@Security		BearerAuth
//	@Router			/today [get]
func (h *Handler) Today(w http.ResponseWriter, _ *http.Request) {
	view, err := h.svc.TodayInfo()
	if err != nil {
		writeError(w, "today", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetSettings handles GET /api/settings.
//
//	@Summary		The calendar settings
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	settings.File
//	@Security		BearerAuth
//	@Router			/settings [get]
func (h *Handler) GetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, settings.FromSettings(h.settings.Current()))
}

// UpdateSettings handles PUT /api/settings.
//
//	@Summary		Replace the calendar settings
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			body	body		settings.File	true	"New settings"
//	@Success		200		{object}	settings.File
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/settings [put]
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settings.File
	if !decode(w, r, &req) {
		return
	}
	s, err := h.settings.Update(req)
	if err != nil {
		writeError(w, "update settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings.FromSettings(s))
}

// CalendarInfo handles GET /api/calendars/{variant}?lang=.
//
//	@Summary		Month and season names of a calendar
//	@Tags			calendar
//	@Produce		json
//	@Param			variant	path		string	true	"Gregorian, Persian, Chinese or Arabic"
//	@Param			lang	query		string	false	"Language code"
//	@Success		200		{object}	calendar.Metadata
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/calendars/{variant} [get]
func (h *Handler) CalendarInfo(w http.ResponseWriter, r *http.Request) {
	v, err := calendar.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		writeError(w, "calendar info", err)
		return
	}
	lang := h.settings.Current().PairFor(v).Language
	if code := r.URL.Query().Get("lang"); code != "" {
		if lang, err = calendar.ParseLanguage(code); err != nil {
			writeError(w, "calendar info", err)
			return
		}
	}
	md, err := h.svc.CalendarInfo(v, lang)
	if err != nil {
		writeError(w, "calendar info", err)
		return
	}
	writeJSON(w, http.StatusOK, md)
}

// CurrentWeek handles GET /api/weeks/current.
//
//	@Summary		The current week, or one offset from it
//	@Tags			weeks
//	@Produce		json
//	@Param			offset	query		int	false	"Weeks from the current week"
//	@Success		200		{object}	planner.WeekView
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/weeks/current [get]
func (h *Handler) CurrentWeek(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid offset"))
			return
		}
		offset = n
	}
	view, err := h.svc.WeekAt(r.Context(), offset)
	if err != nil {
		writeError(w, "current week", err)
		return
	}
	writeView(w, view, view.Snapshot)
}

// GetWeek handles GET /api/weeks/{day}.
//
//	@Summary		The week containing an absolute day
//	@Tags			weeks
//	@Produce		json
//	@Param			day	path		int	true	"Days since 1970-01-01"
//	@Success		200	{object}	planner.WeekView
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/weeks/{day} [get]
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	view, err := h.svc.Week(r.Context(), day)
	if err != nil {
		writeError(w, "get week", err)
		return
	}
	writeView(w, view, view.Snapshot)
}

// AddWeekItem handles POST /api/weeks/{day}/items.
//
//	@Summary		Append an item to a week
//	@Tags			weeks
//	@Accept			json
//	@Produce		json
//	@Param			day		path		int				true	"Any day of the week"
//	@Param			body	body		AddItemRequest	true	"Item"
//	@Success		201		{object}	models.ItemView
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/weeks/{day}/items [post]
func (h *Handler) AddWeekItem(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	it, err := h.svc.AddWeekItem(r.Context(), day, req.Kind, req.Text)
	if err != nil {
		writeError(w, "add week item", err)
		return
	}
	writeJSON(w, http.StatusCreated, planner.ItemView(it, h.settings.Current()))
}

// ReorderWeek handles POST /api/weeks/{day}/reorder.
//
//	@Summary		Move an item to another position in its week
//	@Tags			weeks
//	@Accept			json
//	@Produce		json
//	@Param			day			path		int				true	"Any day of the week"
//	@Param			If-Match	header		string			false	"Snapshot of the week view"
//	@Param			body		body		ReorderRequest	true	"Positions"
//	@Success		200			{object}	models.ItemView
//	@Failure		400			{object}	errResponse
//	@Failure		409			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/weeks/{day}/reorder [post]
func (h *Handler) ReorderWeek(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	var req ReorderRequest
	if !decode(w, r, &req) {
		return
	}
	it, err := h.svc.ReorderWeek(r.Context(), day, req.From, req.To, snapshotOf(r, req.Snapshot))
	if err != nil {
		writeError(w, "reorder week", err)
		return
	}
	writeJSON(w, http.StatusOK, planner.ItemView(it, h.settings.Current()))
}

// CurrentYear handles GET /api/years/current.
//
//	@Summary		Objectives of the current year
//	@Tags			years
//	@Produce		json
//	@Success		200	{object}	planner.YearView
//	@Security		BearerAuth
//	@Router			/years/current [get]
func (h *Handler) CurrentYear(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.CurrentYear(r.Context())
	if err != nil {
		writeError(w, "current year", err)
		return
	}
	writeView(w, view, view.Snapshot)
}

// GetYear handles GET /api/years/{year}.
//
//	@Summary		Objectives of a year of the main calendar
//	@Tags			years
//	@Produce		json
//	@Param			year	path		int	true	"Year"
//	@Success		200		{object}	planner.YearView
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/years/{year} [get]
func (h *Handler) GetYear(w http.ResponseWriter, r *http.Request) {
	year, ok := intParam(w, r, "year")
	if !ok {
		return
	}
	view, err := h.svc.Year(r.Context(), int(year))
	if err != nil {
		writeError(w, "get year", err)
		return
	}
	writeView(w, view, view.Snapshot)
}

// AddObjective handles POST /api/years/{year}/items.
//
//	@Summary		Add an objective to a year, season or month
//	@Tags			years
//	@Accept			json
//	@Produce		json
//	@Param			year	path		int					true	"Year"
//	@Param			body	body		AddObjectiveRequest	true	"Objective"
//	@Success		201		{object}	models.ItemView
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/years/{year}/items [post]
func (h *Handler) AddObjective(w http.ResponseWriter, r *http.Request) {
	year, ok := intParam(w, r, "year")
	if !ok {
		return
	}
	var req AddObjectiveRequest
	if !decode(w, r, &req) {
		return
	}
	p := planner.Period{Year: int(year), Season: req.Season, Month: req.Month}
	it, err := h.svc.AddObjective(r.Context(), p, req.Kind, req.Text)
	if err != nil {
		writeError(w, "add objective", err)
		return
	}
	writeJSON(w, http.StatusCreated, planner.ItemView(it, h.settings.Current()))
}

// ReorderYear handles POST /api/years/{year}/reorder.
//
//	@Summary		Move an objective to another position in its year
//	@Tags			years
//	@Accept			json
//	@Produce		json
//	@Param			year		path		int				true	"Year"
//	@Param			If-Match	header		string			false	"Snapshot of the year view"
//	@Param			body		body		ReorderRequest	true	"Positions"
//	@Success		200			{object}	models.ItemView
//	@Failure		400			{object}	errResponse
//	@Failure		409			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/years/{year}/reorder [post]
func (h *Handler) ReorderYear(w http.ResponseWriter, r *http.Request) {
	year, ok := intParam(w, r, "year")
	if !ok {
		return
	}
	var req ReorderRequest
	if !decode(w, r, &req) {
		return
	}
	it, err := h.svc.ReorderYear(r.Context(), int(year), req.From, req.To, snapshotOf(r, req.Snapshot))
	if err != nil {
		writeError(w, "reorder year", err)
		return
	}
	writeJSON(w, http.StatusOK, planner.ItemView(it, h.settings.Current()))
}

// GetItem handles GET /api/items/{id}.
//
//	@Summary		One item
//	@Tags			items
//	@Produce		json
//	@Param			id	path		int	true	"Item id"
//	@Success		200	{object}	models.ItemView
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/items/{id} [get]
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	it, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, "get item", err)
		return
	}
	writeJSON(w, http.StatusOK, planner.ItemView(it, h.settings.Current()))
}

// UpdateText handles PUT /api/items/{id}/text.
//
//	@Summary		Replace an item's text
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int			true	"Item id"
//	@Param			body	body		TextRequest	true	"Text"
//	@Success		200		{object}	models.ItemView
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/items/{id}/text [put]
func (h *Handler) UpdateText(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req TextRequest
	if !decode(w, r, &req) {
		return
	}
	it, err := h.svc.UpdateText(r.Context(), id, req.Text)
	if err != nil {
		writeError(w, "update text", err)
		return
	}
	writeJSON(w, http.StatusOK, planner.ItemView(it, h.settings.Current()))
}

// ToggleItem handles POST /api/items/{id}/toggle.
//
//	@Summary		Flip an item between done and undone
//	@Tags			items
//	@Produce		json
//	@Param			id	path		int	true	"Item id"
//	@Success		200	{object}	models.ItemView
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/items/{id}/toggle [post]
func (h *Handler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	it, err := h.svc.ToggleItem(r.Context(), id)
	if err != nil {
		writeError(w, "toggle item", err)
		return
	}
	writeJSON(w, http.StatusOK, planner.ItemView(it, h.settings.Current()))
}

// MoveItem handles POST /api/items/{id}/move.
//
//	@Summary		Move an item one position up or down
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int			true	"Item id"
//	@Param			body	body		MoveRequest	true	"Direction"
//	@Success		200		{object}	models.ItemView
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/items/{id}/move [post]
func (h *Handler) MoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req MoveRequest
	if !decode(w, r, &req) {
		return
	}
	it, err := h.svc.MoveItem(r.Context(), id, planner.Direction(req.Direction))
	if err != nil {
		writeError(w, "move item", err)
		return
	}
	writeJSON(w, http.StatusOK, planner.ItemView(it, h.settings.Current()))
}

// InsertAfter handles POST /api/items/{id}/after.
//
//	@Summary		Insert an item directly after another
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Id of the preceding item"
//	@Param			body	body		AddItemRequest	true	"Item"
//	@Success		201		{object}	models.ItemView
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/items/{id}/after [post]
func (h *Handler) InsertAfter(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	it, err := h.svc.InsertAfter(r.Context(), id, req.Kind, req.Text)
	if err != nil {
		writeError(w, "insert after", err)
		return
	}
	writeJSON(w, http.StatusCreated, planner.ItemView(it, h.settings.Current()))
}

// ShiftItem handles POST /api/items/{id}/shift.
//
//	@Summary		Move a week item by whole weeks
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Item id"
//	@Param			body	body		ShiftRequest	true	"Weeks"
//	@Success		200		{object}	models.ItemView
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/items/{id}/shift [post]
func (h *Handler) ShiftItem(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req ShiftRequest
	if !decode(w, r, &req) {
		return
	}
	it, err := h.svc.ShiftItem(r.Context(), id, req.Weeks)
	if err != nil {
		writeError(w, "shift item", err)
		return
	}
	writeJSON(w, http.StatusOK, planner.ItemView(it, h.settings.Current()))
}

// SetPeriod handles PUT /api/items/{id}/period.
//
//	@Summary		Place an item in a year, season or month
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Item id"
//	@Param			body	body		PeriodRequest	true	"Period"
//	@Success		200		{object}	models.ItemView
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/items/{id}/period [put]
func (h *Handler) SetPeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	var req PeriodRequest
	if !decode(w, r, &req) {
		return
	}
	it, err := h.svc.SetObjectivePeriod(r.Context(), id, req.period())
	if err != nil {
		writeError(w, "set period", err)
		return
	}
	writeJSON(w, http.StatusOK, planner.ItemView(it, h.settings.Current()))
}

// DeleteItem handles DELETE /api/items/{id}.
//
//	@Summary		Delete an item
//	@Tags			items
//	@Param			id	path	int	true	"Item id"
//	@Success		204	"Item deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/items/{id} [delete]
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		writeError(w, "delete item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Backup handles POST /api/backup.
//
//	@Summary		Copy the database into the backup directory
//	@Tags			admin
//	@Produce		json
//	@Success		201	{object}	BackupResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/backup [post]
func (h *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	path, err := h.svc.Backup(r.Context(), h.backupDir)
	if err != nil {
		writeError(w, "backup", err)
		return
	}
	writeJSON(w, http.StatusCreated, BackupResponse{Path: path})
}
