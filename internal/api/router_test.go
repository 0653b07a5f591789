package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meseros-cotizador/internal/handler"
	"meseros-cotizador/internal/models"
	"meseros-cotizador/internal/quote"
	"meseros-cotizador/internal/whatsapp"
)

type recordingDispatcher struct {
	messages []string
	err      error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, message string) error {
	d.messages = append(d.messages, message)
	return d.err
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouterWith(t, &recordingDispatcher{})
}

func newTestRouterWith(t *testing.T, d handler.Dispatcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rules := quote.DefaultRules()
	rules.Location = time.UTC
	h := handler.NewQuoteHandler(d, rules, zerolog.Nop())
	h.Validator().SetClock(func() time.Time {
		return time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)
	})
	return NewRouter(h, whatsapp.LinkBuilder{Number: "5219981447597"})
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := doJSON(t, newTestRouter(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMinDate(t *testing.T) {
	w := doJSON(t, newTestRouter(t), http.MethodGet, "/api/fecha-minima", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"min_date":"2026-10-19"}`, w.Body.String())
}

func TestRecalculo(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/recalculo", refreshRequest{
		Field: models.FieldMesas,
		Form:  models.RawFormInput{Mesas: "5"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Indicators []models.Indicator `json:"indicators"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Indicators, 1)
	assert.Equal(t, models.IndicatorShown, resp.Indicators[0].State)
	assert.Equal(t, 2.0, resp.Indicators[0].Value)

	w = doJSON(t, r, http.MethodPost, "/api/recalculo", refreshRequest{Field: models.FieldLugar})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"indicators":[]}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/recalculo", refreshRequest{})
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Indicators, 3)
}

func validForm() models.RawFormInput {
	return models.RawFormInput{
		Nombre:     "Ana Pérez",
		Telefono:   "9981234567",
		Fecha:      "2026-10-20",
		Lugar:      "Salón X",
		Mesas:      "10",
		Invitados:  "150",
		Barra:      "4",
		HoraInicio: "19:00",
		HoraFin:    "01:00",
	}
}

func TestCotizaciones_Valid(t *testing.T) {
	w := doJSON(t, newTestRouter(t), http.MethodPost, "/api/cotizaciones", validForm())
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summary models.QuoteSummary  `json:"summary"`
		Display []models.SummaryLine `json:"display"`
		Message string               `json:"message"`
		Link    string               `json:"link"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 3, resp.Summary.Plan.WaitStaffCount)
	assert.Equal(t, 6.0, resp.Summary.Duracion.Hours)
	assert.Len(t, resp.Display, 9)

	u, err := url.Parse(resp.Link)
	require.NoError(t, err)
	assert.Equal(t, "/5219981447597", u.Path)
	assert.Equal(t, resp.Message, u.Query().Get("text"))
}

func TestCotizaciones_Invalid(t *testing.T) {
	w := doJSON(t, newTestRouter(t), http.MethodPost, "/api/cotizaciones", models.RawFormInput{Nombre: "Ana Pérez"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Validation models.ValidationResult `json:"validation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Validation.Valid)
	first, ok := resp.Validation.FirstFailed()
	require.True(t, ok)
	assert.Equal(t, models.FieldTelefono, first)
}

func TestCotizaciones_BadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/cotizaciones", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newTestRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCotizaciones_TypedJSONPayload(t *testing.T) {
	body := `{"nombre":"Ana Pérez","telefono":"9981234567","fecha":"2026-10-20",` +
		`"lugar":"Salón X","mesas":10,"invitados":150,"barra":4,` +
		`"horaInicio":"19:00","horaFin":"01:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cotizaciones", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newTestRouter(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Summary models.QuoteSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Summary.Plan.WaitStaffCount)
	assert.Equal(t, 4, resp.Summary.Plan.BarStaffCount)
	assert.Equal(t, 150, resp.Summary.Invitados)
}

func TestCotizaciones_BooleanBarAndBadValuesValidate(t *testing.T) {
	body := `{"nombre":"Ana Pérez","telefono":9981234567,"fecha":"2026-10-20",` +
		`"lugar":"Salón X","mesas":{"n":10},"invitados":[150],"barra":true,` +
		`"horaInicio":"19:00","horaFin":null}`
	req := httptest.NewRequest(http.MethodPost, "/api/cotizaciones", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newTestRouter(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	var resp struct {
		Validation models.ValidationResult `json:"validation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []models.Field{models.FieldMesas, models.FieldInvitados, models.FieldHoraFin}, resp.Validation.FailedFields)
}

func TestEnvio_HandsOffMessage(t *testing.T) {
	d := &recordingDispatcher{}

	w := doJSON(t, newTestRouterWith(t, d), http.MethodPost, "/api/cotizaciones/envio", validForm())

	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	require.Len(t, d.messages, 1)
	assert.True(t, strings.HasPrefix(d.messages[0], quote.DefaultGreeting))
	assert.Contains(t, w.Body.String(), `"status":"handed_off"`)
}

func TestEnvio_InvalidNotSent(t *testing.T) {
	d := &recordingDispatcher{}

	w := doJSON(t, newTestRouterWith(t, d), http.MethodPost, "/api/cotizaciones/envio", models.RawFormInput{})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, d.messages)
}

func TestEnvio_WithoutDispatcherReturnsLink(t *testing.T) {
	w := doJSON(t, newTestRouterWith(t, nil), http.MethodPost, "/api/cotizaciones/envio", validForm())

	require.Equal(t, http.StatusConflict, w.Code)
	var resp struct {
		Link string `json:"link"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Link, "https://wa.me/5219981447597?text="))
}

func TestEnvio_ChannelError(t *testing.T) {
	d := &recordingDispatcher{err: errors.New("not on WhatsApp")}

	w := doJSON(t, newTestRouterWith(t, d), http.MethodPost, "/api/cotizaciones/envio", validForm())

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
