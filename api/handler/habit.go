package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/plandeck/backend/api/transport"
	"github.com/plandeck/backend/domain"
	"github.com/plandeck/backend/pkg/httpcontext"
	habitUC "github.com/plandeck/backend/usecase/habit"
)

type HabitHandler struct {
	baseHandler
	uc *habitUC.UseCase
}

func NewHabitHandler(uc *habitUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *HabitHandler {
	return &HabitHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List habits
// @Tags habits
// @Router /api/v1/habits [get]
func (h *HabitHandler) GetHabits(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	includeArchived := string(ctx.QueryArgs().Peek("include_archived")) == "true"

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habits, err := h.uc.ListHabits(stdCtx, userID, includeArchived)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, habits)
}

// @Summary Create habit
// @Tags habits
// @Router /api/v1/habits [post]
func (h *HabitHandler) CreateHabit(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.HabitRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habit, err := h.uc.CreateHabit(stdCtx, userID, req.Name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, habit)
}

// @Summary Archive habit
// @Tags habits
// @Router /api/v1/habits/{id} [delete]
func (h *HabitHandler) ArchiveHabit(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing habit id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ArchiveHabit(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Check off habit for a day
// @Tags habits
// @Router /api/v1/habits/{id}/checkoff [post]
func (h *HabitHandler) CheckOff(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing habit id", nil))
		return
	}

	var req transport.CheckOffRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entry, err := h.uc.CheckOff(stdCtx, id, req.Day, req.Note)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entry)
}

// @Summary Remove a habit check-off
// @Tags habits
// @Router /api/v1/habits/{id}/checkoff/{day} [delete]
func (h *HabitHandler) Uncheck(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	day, _ := ctx.UserValue("day").(string)
	if id == "" || day == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing habit id or day", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Uncheck(stdCtx, id, day); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Habit analytics
// @Tags habits
// @Router /api/v1/habits/{id}/analytics [get]
func (h *HabitHandler) GetAnalytics(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing habit id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	analytics, err := h.uc.Analytics(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, analytics)
}
