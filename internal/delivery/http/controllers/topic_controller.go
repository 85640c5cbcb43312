package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"skillsharehub/internal/delivery/http/helpers"
	"skillsharehub/internal/delivery/http/middleware"
	"skillsharehub/internal/domain"
)

// CreateTopicRequest is the request body for POST /topics.
type CreateTopicRequest struct {
	Label string `json:"label" validate:"required,max=100"`
}

// TopicSuccessResponse is the success response envelope for POST /topics (201).
type TopicSuccessResponse struct {
	Data  *domain.Topic     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TopicListSuccessResponse is the success response envelope for GET /topics (200).
type TopicListSuccessResponse struct {
	Data  []*domain.Topic   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type TopicController struct {
	Logger  *slog.Logger
	Service domain.TopicService
}

func NewTopicController(logger *slog.Logger, svc domain.TopicService) *TopicController {
	return &TopicController{
		Logger:  logger,
		Service: svc,
	}
}

// ListTopics godoc
// @Summary List topics
// @Tags topics
// @Produce json
// @Success 200 {object} controllers.TopicListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /topics [get]
func (c *TopicController) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := c.Service.ListTopics(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, topics)
}

// CreateTopic godoc
// @Summary Create a topic
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param topic body CreateTopicRequest true "Topic label"
// @Success 201 {object} controllers.TopicSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /topics [post]
func (c *TopicController) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req CreateTopicRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	topic, err := c.Service.CreateTopic(r.Context(), req.Label)
	if err != nil {
		if errors.Is(err, domain.ErrTopicExists) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
			return
		}
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, topic)
}
