package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meseros-cotizador/internal/handler"
	"meseros-cotizador/internal/models"
	"meseros-cotizador/internal/whatsapp"
)

type refreshRequest struct {
	Field models.Field        `json:"field"`
	Form  models.RawFormInput `json:"form"`
}

// NewRouter exposes the quotation engine to a browser front end. The browser
// opens the returned WhatsApp link itself after showing the preview.
func NewRouter(quotes *handler.QuoteHandler, links whatsapp.LinkBuilder) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/fecha-minima", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"min_date": quotes.MinDate()})
	})

	r.POST("/api/recalculo", func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		var indicators []models.Indicator
		if req.Field == "" {
			indicators = quotes.RefreshAll(req.Form)
		} else {
			indicators = quotes.Refresh(req.Field, req.Form)
		}
		if indicators == nil {
			indicators = []models.Indicator{}
		}
		c.JSON(http.StatusOK, gin.H{"indicators": indicators})
	})

	r.POST("/api/cotizaciones", func(c *gin.Context) {
		var form models.RawFormInput
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		q, err := quotes.Prepare(form)
		if errors.Is(err, handler.ErrInvalidQuote) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"validation": q.Validation})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		message := q.Summary.Message()
		c.JSON(http.StatusOK, gin.H{
			"validation": q.Validation,
			"summary":    q.Summary,
			"display":    q.Summary.Display(),
			"message":    message,
			"link":       links.Build(message),
		})
	})

	r.POST("/api/cotizaciones/envio", func(c *gin.Context) {
		var form models.RawFormInput
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		q, err := quotes.Prepare(form)
		if errors.Is(err, handler.ErrInvalidQuote) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"validation": q.Validation})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		err = quotes.Dispatch(c.Request.Context(), q)
		switch {
		case errors.Is(err, handler.ErrNoDispatcher):
			c.JSON(http.StatusConflict, gin.H{
				"error": "server-side sending is disabled; open the link instead",
				"link":  links.Build(q.Summary.Message()),
			})
		case err != nil:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			// Handed off only; delivery is not observable here.
			c.JSON(http.StatusAccepted, gin.H{"status": "handed_off", "summary": q.Summary})
		}
	})

	return r
}
