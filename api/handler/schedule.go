package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/plandeck/backend/api/transport"
	"github.com/plandeck/backend/domain"
	"github.com/plandeck/backend/pkg/httpcontext"
	scheduleUC "github.com/plandeck/backend/usecase/schedule"
)

type ScheduleHandler struct {
	baseHandler
	uc *scheduleUC.UseCase
}

func NewScheduleHandler(uc *scheduleUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List time blocks
// @Tags schedule
// @Router /api/v1/blocks [get]
func (h *ScheduleHandler) GetBlocks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	from, to, ok := h.parseRange(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	blocks, err := h.uc.ListBlocks(stdCtx, userID, from, to)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, blocks)
}

// @Summary Create time block
// @Tags schedule
// @Router /api/v1/blocks [post]
func (h *ScheduleHandler) CreateBlock(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	block, ok := h.parseBlock(ctx, userID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateBlock(stdCtx, block)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update time block
// @Tags schedule
// @Router /api/v1/blocks/{id} [put]
func (h *ScheduleHandler) UpdateBlock(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	block, ok := h.parseBlock(ctx, userID)
	if !ok {
		return
	}
	if block.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			block.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateBlock(stdCtx, block)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete time block
// @Tags schedule
// @Router /api/v1/blocks/{id} [delete]
func (h *ScheduleHandler) DeleteBlock(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing block id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteBlock(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Workload for a day
// @Tags schedule
// @Router /api/v1/schedule/workload [get]
func (h *ScheduleHandler) GetWorkload(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	day := h.parseDay(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	workload, err := h.uc.Workload(stdCtx, userID, day)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, workload)
}

// @Summary Suggest free slots
// @Tags schedule
// @Router /api/v1/schedule/suggestions [get]
func (h *ScheduleHandler) GetSuggestions(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	day := h.parseDay(ctx)
	wantMinutes := parseInt(string(ctx.QueryArgs().Peek("minutes")), 30)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	slots, err := h.uc.SuggestSlots(stdCtx, userID, day, wantMinutes)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, slots)
}

// @Summary Auto-schedule pending tasks
// @Tags schedule
// @Router /api/v1/schedule/auto [post]
func (h *ScheduleHandler) AutoSchedule(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	day := h.parseDay(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	blocks, err := h.uc.AutoSchedule(stdCtx, userID, day)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, blocks)
}

func (h *ScheduleHandler) parseBlock(ctx *fasthttp.RequestCtx, userID string) (*domain.TimeBlock, bool) {
	var req transport.TimeBlockRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return nil, false
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid start time", nil))
		return nil, false
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid end time", nil))
		return nil, false
	}

	var taskID *string
	if req.TaskID != "" {
		taskID = &req.TaskID
	}

	return &domain.TimeBlock{
		ID:     req.ID,
		UserID: userID,
		TaskID: taskID,
		Title:  req.Title,
		Start:  start,
		End:    end,
	}, true
}

// parseDay reads the day query parameter, defaulting to today.
func (h *ScheduleHandler) parseDay(ctx *fasthttp.RequestCtx) time.Time {
	if raw := string(ctx.QueryArgs().Peek("day")); raw != "" {
		if parsed, err := domain.ParseDay(raw); err == nil {
			return parsed
		}
	}
	return time.Now()
}

func (h *ScheduleHandler) parseRange(ctx *fasthttp.RequestCtx) (time.Time, time.Time, bool) {
	from, err := time.Parse(time.RFC3339, string(ctx.QueryArgs().Peek("from")))
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid from time", nil))
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(time.RFC3339, string(ctx.QueryArgs().Peek("to")))
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid to time", nil))
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
