package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/internal/ports"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/httpx"
)

// Handler holds the HTTP surface dependencies: the write side
// (processor), the read side (reader) and the standalone email gate.
type Handler struct {
	processor ports.OrderProcessor
	reader    ports.OrderReadService
	emails    ports.EmailVerifier
	log       ports.Logger
	timeout   time.Duration
}

func NewHandler(
	processor ports.OrderProcessor,
	reader ports.OrderReadService,
	emails ports.EmailVerifier,
	log ports.Logger,
	timeout time.Duration,
) *Handler {
	return &Handler{
		processor: processor,
		reader:    reader,
		emails:    emails,
		log:       log,
		timeout:   timeout,
	}
}

// NewRouter wires the gin engine. otelServiceName is empty when
// tracing is disabled; the otelgin middleware is attached only when a
// name is given.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/order/:id", h.getOrderByID)
	r.GET("/user/:id/orders", h.listOrdersByUser)

	api := r.Group("/api", authRequired())
	{
		orders := api.Group("/orders")
		orders.POST("/frp", h.submitOrder(domain.ProjectFRP))
		orders.POST("/sc", h.submitOrder(domain.ProjectSC))
		orders.POST("/mdi", h.submitOrder(domain.ProjectMDI))
		orders.POST("/hpp", h.submitOrder(domain.ProjectHPP))
		orders.POST("/importsale", h.submitOrder(domain.ProjectImportSale))
		orders.POST("/mi", h.submitOrder(domain.ProjectMI))

		api.POST("/email/verify", h.verifyEmail)
	}

	return r
}

func (h *Handler) getOrderByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		fail(c, http.StatusBadRequest, "empty id")
		return
	}
	order, err := h.reader.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "GetOrder failed id=%s err=%v", id, err)
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	ok(c, http.StatusOK, "", order)
}

func (h *Handler) listOrdersByUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		fail(c, http.StatusBadRequest, "empty user id")
		return
	}

	limit, offset := httpx.ParseLimitOffset(c, 20, 100)

	orders, err := h.reader.OrdersByUser(c.Request.Context(), id, limit, offset)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "OrdersByUser failed id=%s err=%v", id, err)
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	ok(c, http.StatusOK, "", orders)
}
