package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Leganyst/operations-board/internal/model"
	"github.com/Leganyst/operations-board/internal/repository"
	"github.com/Leganyst/operations-board/internal/service"
)

type catalogService interface {
	ListResources(ctx context.Context, filter repository.ResourceFilter, page, pageSize int) (*service.ResourceListing, error)
}

type ResourceHandler struct {
	catalog   catalogService
	responder responder
}

func NewResourceHandler(catalog catalogService, log *zap.Logger) *ResourceHandler {
	return &ResourceHandler{catalog: catalog, responder: newResponder(log)}
}

// List — GET /api/v1/schedule/resources.
// Параметры: search, type (повторяемый), include_inactive, page, page_size.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.ResourceFilter{
		Search:   q.Get("search"),
		TenantID: TenantFromContext(r.Context()),
	}
	for _, t := range q["type"] {
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Types = append(filter.Types, model.ResourceType(part))
			}
		}
	}
	if v := q.Get("include_inactive"); v != "" {
		includeInactive, err := strconv.ParseBool(v)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest,
				"include_inactive должен быть булевым значением")
			return
		}
		filter.IncludeInactive = includeInactive
	}

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	listing, err := h.catalog.ListResources(r.Context(), filter, page, pageSize)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listing)
}
