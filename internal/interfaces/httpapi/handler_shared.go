package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/domain/league"
	"github.com/riskibarqy/footy-career/internal/domain/saveslot"
	"github.com/riskibarqy/footy-career/internal/engine"
	"github.com/riskibarqy/footy-career/internal/usecase"
)

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSON(r *http.Request, out any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func invalidQuery(msg string) error {
	return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, msg)
}

type playerRequest struct {
	Name        string            `json:"name" validate:"required,max=40"`
	Position    string            `json:"position" validate:"required"`
	SubPosition string            `json:"sub_position" validate:"required"`
	Attributes  career.Attributes `json:"attributes"`
}

func (r playerRequest) player() engine.NewGameInput {
	return engine.NewGameInput{
		Name:        r.Name,
		Position:    career.Position(r.Position),
		SubPosition: career.SubPosition(r.SubPosition),
		Attributes:  r.Attributes,
	}
}

type createCareerRequest struct {
	SlotID string  `json:"slot_id" validate:"omitempty,max=64"`
	Label  string  `json:"label" validate:"omitempty,max=80"`
	Seed   *uint64 `json:"seed"`
	playerRequest
}

type trainRequest struct {
	Attribute string `json:"attribute" validate:"required"`
}

type purchaseRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

type mediaResponseRequest struct {
	Response string `json:"response" validate:"required"`
}

type socialPostRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

type listDTO[T any] struct {
	Items []T `json:"items"`
}

type slotDTO struct {
	SlotID     string    `json:"slot_id"`
	Label      string    `json:"label,omitempty"`
	Version    int64     `json:"version"`
	Phase      string    `json:"phase"`
	PlayerName string    `json:"player_name,omitempty"`
	Year       int       `json:"year"`
	Round      int       `json:"round"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func slotToDTO(s saveslot.Slot) slotDTO {
	return slotDTO{
		SlotID:     s.ID,
		Label:      s.Label,
		Version:    s.Version,
		Phase:      s.Phase,
		PlayerName: s.PlayerName,
		Year:       s.Year,
		Round:      s.Round,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

type ladderRowDTO struct {
	Position      int     `json:"position"`
	TeamID        string  `json:"team_id"`
	Name          string  `json:"name"`
	Played        int     `json:"played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Draws         int     `json:"draws"`
	PointsFor     int     `json:"points_for"`
	PointsAgainst int     `json:"points_against"`
	Percentage    float64 `json:"percentage"`
	LadderPoints  int     `json:"ladder_points"`
	UserClub      bool    `json:"user_club"`
}

func ladderRowToDTO(pos int, t league.Team, userClub bool) ladderRowDTO {
	st := t.Standing
	return ladderRowDTO{
		Position:      pos,
		TeamID:        t.ID,
		Name:          t.Name,
		Played:        st.Played,
		Wins:          st.Wins,
		Losses:        st.Losses,
		Draws:         st.Draws,
		PointsFor:     st.PointsFor,
		PointsAgainst: st.PointsAgainst,
		Percentage:    st.Percentage,
		LadderPoints:  st.Points,
		UserClub:      userClub,
	}
}

type hallOfFameDTO struct {
	SlotID       string `json:"slot_id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	RetiredYear  int    `json:"retired_year"`
	Seasons      int    `json:"seasons"`
	Matches      int    `json:"matches"`
	Goals        int    `json:"goals"`
	Awards       int    `json:"awards"`
	Premierships int    `json:"premierships"`
}

func hallOfFameToDTO(r saveslot.HallOfFameRecord) hallOfFameDTO {
	return hallOfFameDTO{
		SlotID:       r.SlotID,
		Name:         r.Name,
		Position:     r.Position,
		RetiredYear:  r.RetiredYear,
		Seasons:      r.Seasons,
		Matches:      r.Matches,
		Goals:        r.Goals,
		Awards:       r.Awards,
		Premierships: r.Flags,
	}
}
