package handlers

import (
	"net/http"

	request "mecanica_xpto_os/internal/adapter/http/dto/request"
	response "mecanica_xpto_os/internal/adapter/http/dto/response"
	"mecanica_xpto_os/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServiceHandler struct {
	usecase usecase.IServiceCatalogUseCase
	log     *zap.Logger
}

func NewServiceHandler(uc usecase.IServiceCatalogUseCase, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{usecase: uc, log: log}
}

// CreateService godoc
// @Summary  Cadastra um serviço
// @Tags     services
// @Accept   json
// @Produce  json
// @Param    body body request.CreateServiceRequest true "Service"
// @Success  201 {object} response.ServiceResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /services [post]
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var payload request.CreateServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidRequest(c)
		return
	}
	svc, err := h.usecase.CreateService(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, h.log, "[service][handler] create", err, zap.String("name", payload.Name))
		return
	}
	c.JSON(http.StatusCreated, response.FromService(svc))
}

// GetService godoc
// @Summary  Consulta um serviço
// @Tags     services
// @Produce  json
// @Param    id path string true "Service ID"
// @Success  200 {object} response.ServiceResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /services/{id} [get]
func (h *ServiceHandler) GetService(c *gin.Context) {
	id := c.Param("id")
	svc, err := h.usecase.GetService(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "[service][handler] get", err, zap.String("service_id", id))
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc))
}
