package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factura/internal/domain/billing"
	"factura/internal/infrastructure/pdf"
	"factura/internal/infrastructure/storage/memory"
	"factura/pkg/logger"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	store := memory.NewStore()
	svc := billing.NewService(store, store, nil, nil)
	return NewRouter(RouterConfig{
		Logger:   logger.Default(),
		Billing:  svc,
		Renderer: pdf.NewRenderer("USD"),
		Issuer:   billing.Issuer{Name: "Factura SARL"},
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func worksheetBody() map[string]any {
	return map[string]any{
		"clientName":    "Moussa Diallo",
		"feePercentage": 10,
		"transport":     "31.50",
		"articles": []map[string]any{
			{"description": "Office chair", "quantity": 2, "unitPrice": "64.87"},
			{"description": "Desk", "quantity": 4, "unitPrice": "50.00"},
		},
	}
}

func TestRouter_HealthLive(t *testing.T) {
	w := doJSON(t, testRouter(t), http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_InvoiceLifecycle(t *testing.T) {
	router := testRouter(t)

	// create
	w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", worksheetBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var inv map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	assert.Equal(t, "FAC001", inv["id"])
	assert.Equal(t, "394.21", inv["total"])

	// list
	w = doJSON(t, router, http.MethodGet, "/api/v1/invoices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// pdf
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/FAC001/pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())

	// cancel twice: both succeed
	w = doJSON(t, router, http.MethodDelete, "/api/v1/invoices/FAC001", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, http.MethodDelete, "/api/v1/invoices/FAC001", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_DraftConvert(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/drafts", worksheetBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var draft map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	draftID := draft["id"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/v1/drafts/"+draftID+"/convert", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// draft gone, invoice present
	w = doJSON(t, router, http.MethodGet, "/api/v1/drafts/"+draftID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/v1/invoices/FAC001", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_InvalidFeeRejected(t *testing.T) {
	body := worksheetBody()
	body["feePercentage"] = 7

	w := doJSON(t, testRouter(t), http.MethodPost, "/api/v1/invoices", body)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var errResp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "INVALID_FEE_PERCENTAGE", errResp["code"])
}

func TestRouter_UnknownInvoice(t *testing.T) {
	w := doJSON(t, testRouter(t), http.MethodGet, "/api/v1/invoices/FAC404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
