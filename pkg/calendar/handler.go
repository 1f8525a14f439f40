package calendar

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/modulink/modulink/internal/rest"
	"github.com/modulink/modulink/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	clock   utils.Clock
}

func NewHandler(service *Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

type SlotDTO struct {
	UID            string  `json:"uid"`
	Kind           string  `json:"kind"`
	Title          string  `json:"title"`
	Location       string  `json:"location,omitempty"`
	ParticipantIds []int   `json:"participantIds,omitempty"`
	StartHour      float64 `json:"startHour"`
	EndHour        float64 `json:"endHour"`
	Column         int     `json:"column"`
	TotalColumns   int     `json:"totalColumns"`
}

type DayDTO struct {
	Date  string    `json:"date"`
	Today bool      `json:"today"`
	Slots []SlotDTO `json:"slots"`
}

type WeekViewDTO struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Days  []DayDTO `json:"days"`
}

type MonthItemDTO struct {
	UID   string `json:"uid"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

type MonthCellDTO struct {
	Date    string         `json:"date"`
	InMonth bool           `json:"inMonth"`
	Today   bool           `json:"today"`
	Items   []MonthItemDTO `json:"items"`
}

type MonthViewDTO struct {
	Start string         `json:"start"`
	End   string         `json:"end"`
	Cells []MonthCellDTO `json:"cells"`
}

type ViewDTO struct {
	View  string        `json:"view"`
	Label string        `json:"label"`
	Week  *WeekViewDTO  `json:"week,omitempty"`
	Month *MonthViewDTO `json:"month,omitempty"`
}

// GetView returns the fully computed layout for one week or month, so the
// client only has to translate hours and columns into pixels.
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date := h.clock.Now()
	if dateString := r.URL.Query().Get("date"); dateString != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, dateString, time.Local)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date format",
				Details: "'date' must be in YYYY-MM-DD format",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		date = parsed
	}

	view := ViewMode(r.URL.Query().Get("view"))
	if view == "" {
		view = ViewWeek
	}
	if view != ViewWeek && view != ViewMonth {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid view",
			Details: "'view' must be 'week' or 'month'",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	filter := Filter{ShowEvents: true, ShowTasks: true}
	if v := r.URL.Query().Get("events"); v != "" {
		filter.ShowEvents, _ = strconv.ParseBool(v)
	}
	if v := r.URL.Query().Get("tasks"); v != "" {
		filter.ShowTasks, _ = strconv.ParseBool(v)
	}

	var dto ViewDTO
	if view == ViewMonth {
		month := h.service.MonthView(r.Context(), date, filter)
		dto = ViewDTO{View: string(ViewMonth), Label: month.Label, Month: monthToDTO(month)}
	} else {
		week := h.service.WeekView(r.Context(), date, filter)
		dto = ViewDTO{View: string(ViewWeek), Label: week.Label, Week: weekToDTO(week)}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ExportICS streams the calendar for a time range as an iCalendar file.
func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	fromString := r.URL.Query().Get("from")
	toString := r.URL.Query().Get("to")
	from, err := time.Parse(time.RFC3339, fromString)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid from (date) format",
			Details: "'from' must be in RFC3339 format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	to, err := time.Parse(time.RFC3339, toString)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid to (date) format",
			Details: "'to' must be in RFC3339 format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	items := h.service.Load(r.Context(), Window{Start: from, End: to}, Filter{ShowEvents: true, ShowTasks: true})
	serialized := ExportICS(items, h.clock.Now())

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="modulink.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(serialized)); err != nil {
		log.Errorf("failed to write ICS response: %v", err)
	}
}

func weekToDTO(view WeekView) *WeekViewDTO {
	days := make([]DayDTO, 0, len(view.Days))
	for _, day := range view.Days {
		slots := make([]SlotDTO, 0, len(day.Slots))
		for _, slot := range day.Slots {
			slots = append(slots, SlotDTO{
				UID:            slot.Item.UID,
				Kind:           string(slot.Item.Kind),
				Title:          slot.Item.Title,
				Location:       slot.Item.Location,
				ParticipantIds: slot.Item.ParticipantIds,
				StartHour:      slot.StartHour,
				EndHour:        slot.EndHour,
				Column:         slot.Column,
				TotalColumns:   slot.TotalColumns,
			})
		}
		days = append(days, DayDTO{
			Date:  day.Day.Format(time.DateOnly),
			Today: day.Today,
			Slots: slots,
		})
	}
	return &WeekViewDTO{
		Start: view.Window.Start.Format(time.DateOnly),
		End:   view.Window.End.AddDate(0, 0, -1).Format(time.DateOnly),
		Days:  days,
	}
}

func monthToDTO(view MonthView) *MonthViewDTO {
	cells := make([]MonthCellDTO, 0, len(view.Cells))
	for _, cell := range view.Cells {
		items := make([]MonthItemDTO, 0, len(cell.Items))
		for _, item := range cell.Items {
			items = append(items, MonthItemDTO{
				UID:   item.UID,
				Kind:  string(item.Kind),
				Title: item.Title,
			})
		}
		cells = append(cells, MonthCellDTO{
			Date:    cell.Day.Format(time.DateOnly),
			InMonth: cell.InMonth,
			Today:   cell.Today,
			Items:   items,
		})
	}
	return &MonthViewDTO{
		Start: view.Window.Start.Format(time.DateOnly),
		End:   view.Window.End.AddDate(0, 0, -1).Format(time.DateOnly),
		Cells: cells,
	}
}
