package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/footy-career/internal/domain/media"
	"github.com/riskibarqy/footy-career/internal/engine"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
	"github.com/riskibarqy/footy-career/internal/usecase"
)

type Handler struct {
	careerService *usecase.CareerService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(careerService *usecase.CareerService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		careerService: careerService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListCareers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListCareers")
	defer span.End()

	items, err := h.careerService.ListCareers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list careers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]slotDTO, 0, len(items))
	for _, item := range items {
		out = append(out, slotToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, listDTO[slotDTO]{Items: out})
}

func (h *Handler) CreateCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreateCareer")
	defer span.End()

	var req createCareerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.careerService.CreateCareer(ctx, usecase.CreateCareerInput{
		SlotID: req.SlotID,
		Label:  req.Label,
		Seed:   req.Seed,
		Player: req.player(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create career failed", "slot_id", req.SlotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, view)
}

func (h *Handler) GetCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetCareer")
	defer span.End()

	view, err := h.careerService.GetCareer(ctx, r.PathValue("slotID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) GetLadder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetLadder")
	defer span.End()

	view, err := h.careerService.GetCareer(ctx, r.PathValue("slotID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ladder := engine.Ladder(view.State)
	out := make([]ladderRowDTO, 0, len(ladder))
	for i, team := range ladder {
		out = append(out, ladderRowToDTO(i+1, team, team.ID == view.State.UserTeamID()))
	}
	writeSuccess(ctx, w, http.StatusOK, listDTO[ladderRowDTO]{Items: out})
}

func (h *Handler) DeleteCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeleteCareer")
	defer span.End()

	slotID := r.PathValue("slotID")
	if err := h.careerService.DeleteCareer(ctx, slotID); err != nil {
		h.logger.WarnContext(ctx, "delete career failed", "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"slot_id": slotID, "status": "deleted"})
}

func (h *Handler) StartNewCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "StartNewCareer")
	defer span.End()

	var req playerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slotID := r.PathValue("slotID")
	view, err := h.careerService.StartNewCareer(ctx, slotID, req.player())
	h.respond(ctx, w, "start new career", slotID, view, err)
}

func (h *Handler) SimulateDraftPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SimulateDraftPick")
	defer span.End()

	slotID := r.PathValue("slotID")
	view, err := h.careerService.SimulateDraftPick(ctx, slotID)
	h.respond(ctx, w, "simulate draft pick", slotID, view, err)
}

func (h *Handler) CompleteDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CompleteDraft")
	defer span.End()

	slotID := r.PathValue("slotID")
	view, err := h.careerService.CompleteDraft(ctx, slotID)
	h.respond(ctx, w, "complete draft", slotID, view, err)
}

func (h *Handler) SimulateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SimulateRound")
	defer span.End()

	slotID := r.PathValue("slotID")
	view, err := h.careerService.SimulateRound(ctx, slotID)
	h.respond(ctx, w, "simulate round", slotID, view, err)
}

func (h *Handler) TrainAttribute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "TrainAttribute")
	defer span.End()

	var req trainRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slotID := r.PathValue("slotID")
	view, err := h.careerService.TrainAttribute(ctx, slotID, req.Attribute)
	h.respond(ctx, w, "train attribute", slotID, view, err)
}

func (h *Handler) AcknowledgeMilestone(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "AcknowledgeMilestone")
	defer span.End()

	slotID := r.PathValue("slotID")
	view, err := h.careerService.AcknowledgeMilestone(ctx, slotID)
	h.respond(ctx, w, "acknowledge milestone", slotID, view, err)
}

func (h *Handler) ClaimReward(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ClaimReward")
	defer span.End()

	slotID := r.PathValue("slotID")
	view, err := h.careerService.ClaimReward(ctx, slotID)
	h.respond(ctx, w, "claim reward", slotID, view, err)
}

func (h *Handler) PurchaseItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "PurchaseItem")
	defer span.End()

	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slotID := r.PathValue("slotID")
	view, err := h.careerService.PurchaseItem(ctx, slotID, req.ItemID)
	h.respond(ctx, w, "purchase item", slotID, view, err)
}

func (h *Handler) AcceptTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "AcceptTransfer")
	defer span.End()

	slotID := r.PathValue("slotID")
	view, err := h.careerService.AcceptTransfer(ctx, slotID, r.PathValue("offerID"))
	h.respond(ctx, w, "accept transfer", slotID, view, err)
}

func (h *Handler) RejectTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RejectTransfer")
	defer span.End()

	slotID := r.PathValue("slotID")
	view, err := h.careerService.RejectTransfer(ctx, slotID, r.PathValue("offerID"))
	h.respond(ctx, w, "reject transfer", slotID, view, err)
}

func (h *Handler) RespondToMedia(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RespondToMedia")
	defer span.End()

	var req mediaResponseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slotID := r.PathValue("slotID")
	view, err := h.careerService.RespondToMedia(ctx, slotID, r.PathValue("eventID"), req.Response)
	h.respond(ctx, w, "respond to media", slotID, view, err)
}

func (h *Handler) CreateSocialPost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreateSocialPost")
	defer span.End()

	var req socialPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slotID := r.PathValue("slotID")
	view, err := h.careerService.CreateSocialPost(ctx, slotID, req.Content)
	h.respond(ctx, w, "create social post", slotID, view, err)
}

func (h *Handler) RetirePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RetirePlayer")
	defer span.End()

	slotID := r.PathValue("slotID")
	view, err := h.careerService.RetirePlayer(ctx, slotID)
	h.respond(ctx, w, "retire player", slotID, view, err)
}

func (h *Handler) ResetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ResetGame")
	defer span.End()

	slotID := r.PathValue("slotID")
	view, err := h.careerService.ResetGame(ctx, slotID)
	h.respond(ctx, w, "reset game", slotID, view, err)
}

func (h *Handler) ListShopItems(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListShopItems")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, listDTO[media.Item]{Items: media.Catalog})
}

func (h *Handler) ListHallOfFame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListHallOfFame")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			writeError(ctx, w, invalidQuery("limit must be an integer between 1 and 100"))
			return
		}
		limit = v
	}

	items, err := h.careerService.HallOfFame(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list hall of fame failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]hallOfFameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, hallOfFameToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, listDTO[hallOfFameDTO]{Items: out})
}

func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, intent, slotID string, view usecase.CareerView, err error) {
	if err != nil {
		mapped := mapError(ctx, err)
		if mapped.HTTPStatus >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, intent+" failed", "slot_id", slotID, "error", err)
		} else {
			h.logger.DebugContext(ctx, intent+" rejected", "slot_id", slotID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, view)
}
