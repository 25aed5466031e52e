package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sales-inquiry-api/internal/application/auth"
	appsales "github.com/jhoicas/sales-inquiry-api/internal/application/sales"
	"github.com/jhoicas/sales-inquiry-api/internal/domain"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
	domainsales "github.com/jhoicas/sales-inquiry-api/internal/domain/sales"
	"github.com/jhoicas/sales-inquiry-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/sales-inquiry-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/sales-inquiry-api/pkg/jwt"
	"github.com/jhoicas/sales-inquiry-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memEmployees struct {
	byCode map[string]entity.Employee
	err    error
}

func (m *memEmployees) FindByCode(_ context.Context, code string) (*entity.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.byCode[code]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memEmployees) SetPasswordHash(_ context.Context, code, hash string) error {
	e, ok := m.byCode[code]
	if !ok {
		return domain.ErrNotFound
	}
	e.PasswordHash = &hash
	m.byCode[code] = e
	return nil
}

type stubSales struct {
	rows    []entity.SalesRecord
	lastQ   domainsales.SalesQuery
	queries int
	err     error
}

func (s *stubSales) Query(_ context.Context, q domainsales.SalesQuery) ([]entity.SalesRecord, error) {
	s.queries++
	s.lastQ = q
	return s.rows, s.err
}

type stubPDF struct{}

func (stubPDF) GenerateSalesReport(context.Context, appsales.ReportMeta, []entity.SalesRecord) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	app       *fiber.App
	employees *memEmployees
	sales     *stubSales
	tokens    *pkgjwt.TokenManager
	metrics   *metrics.Metrics
}

func hashed(t *testing.T, pw string) *string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(h)
	return &s
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	tokens := newTokens(t)
	emps := &memEmployees{byCode: map[string]entity.Employee{
		"E001": {Code: "E001", Name: "Ana", PasswordHash: hashed(t, "secret1"), AccessScope: "REGION1"},
		"E002": {Code: "E002", Name: "Luis", AccessScope: "REGION2"},
		"E003": {Code: "E003", Name: "Sin ámbito", PasswordHash: hashed(t, "secret3")},
	}}
	sales := &stubSales{rows: []entity.SalesRecord{{
		InvoiceNo: "INV1", CustomerCode: "ACME01", CustomerName: "Acme", GoodsCode: "G1", GoodsName: "Tornillo",
		SalesQty: decimal.RequireFromString("2"), SalesAmount: decimal.RequireFromString("10.50"),
	}}}
	authUC := auth.NewAuthUseCase(emps, auth.NewBcryptHasher(bcrypt.MinCost), tokens)
	salesUC := appsales.NewSalesUseCase(domainsales.NewQueryBuilder("DTT", "en-US"), sales, xlsx.NewExcelizeExporter(), stubPDF{}).
		WithClock(func() time.Time { return fixedNow })

	m := metrics.New()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{AuthUC: authUC, SalesUC: salesUC, Tokens: tokens, Metrics: m})
	return &testEnv{app: app, employees: emps, sales: sales, tokens: tokens, metrics: m}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, authHeader string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) bearer(t *testing.T, claim entity.SessionClaim) string {
	t.Helper()
	tok, err := e.tokens.Issue(claim)
	require.NoError(t, err)
	return "Bearer " + tok
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OKDevuelveTokenYUsuario(t *testing.T) {
	env := newEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"code": "E001", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		User  struct {
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"user"`
	}
	decode(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "E001", body.User.Code)
	assert.Equal(t, "Ana", body.User.Name)
}

func TestLogin_SinContraseñaPideSetup(t *testing.T) {
	env := newEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"code": "E002", "password": "loquesea"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, true, body["needsPasswordSetup"])
	assert.Equal(t, "E002", body["code"])
	assert.NotContains(t, body, "token")
}

func TestLogin_Errores(t *testing.T) {
	env := newEnv(t)
	cases := []struct {
		name   string
		in     map[string]string
		status int
		msg    string
	}{
		{"faltan campos", map[string]string{"code": "E001"}, http.StatusBadRequest, "required"},
		{"código inexistente", map[string]string{"code": "NOPE", "password": "secret1"}, http.StatusUnauthorized, "Invalid user code"},
		{"contraseña incorrecta", map[string]string{"code": "E001", "password": "otra123"}, http.StatusUnauthorized, "Invalid password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/auth/login", tc.in, "")
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.msg)
			assert.NotContains(t, string(body), "$2a$", "nunca se expone el hash")
		})
	}
}

func TestLogin_CuerpoInvalido(t *testing.T) {
	env := newEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_AlmacenCaidoEs500Generico(t *testing.T) {
	env := newEnv(t)
	env.employees.err = domain.ErrStoreUnavailable
	resp := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"code": "E001", "password": "secret1"}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Internal server error")
}

func TestSetupPassword_FlujoCompleto(t *testing.T) {
	env := newEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/setup-password", map[string]string{"code": "E002", "password": "nueva1"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session map[string]any
	decode(t, resp, &session)
	assert.NotEmpty(t, session["token"])

	// Segundo intento: ya establecida.
	resp = env.do(t, http.MethodPost, "/api/auth/setup-password", map[string]string{"code": "E002", "password": "otra12"}, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Ahora el login funciona con la nueva contraseña.
	resp = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"code": "E002", "password": "nueva1"}, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSetupPassword_Errores(t *testing.T) {
	env := newEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/setup-password", map[string]string{"code": "E002", "password": "corta"}, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "contraseña débil")

	resp = env.do(t, http.MethodPost, "/api/auth/setup-password", map[string]string{"code": "NOPE", "password": "nueva1"}, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Nil(t, env.employees.byCode["E002"].PasswordHash)
}

func TestChangePassword(t *testing.T) {
	env := newEnv(t)
	hdr := env.bearer(t, entity.SessionClaim{Code: "E001", Name: "Ana", AccessScope: "REGION1"})

	resp := env.do(t, http.MethodPost, "/api/auth/change-password",
		map[string]string{"currentPassword": "mala12", "newPassword": "nueva1"}, hdr)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/change-password",
		map[string]string{"currentPassword": "secret1", "newPassword": "nueva1"}, hdr)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msg map[string]string
	decode(t, resp, &msg)
	assert.NotEmpty(t, msg["message"])

	resp = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"code": "E001", "password": "nueva1"}, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChangePassword_SinTokenYEmpleadoBorrado(t *testing.T) {
	env := newEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/change-password",
		map[string]string{"currentPassword": "secret1", "newPassword": "nueva1"}, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/change-password",
		map[string]string{"currentPassword": "secret1", "newPassword": "nueva1"},
		env.bearer(t, entity.SessionClaim{Code: "GONE", AccessScope: "R1"}))
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sales
// ──────────────────────────────────────────────────────────────────────────────

func TestSales_SinTokenNoConsulta(t *testing.T) {
	env := newEnv(t)
	for _, path := range []string{"/api/sales", "/api/sales/export", "/api/sales/export/pdf"} {
		resp := env.do(t, http.MethodGet, path, nil, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
	assert.Equal(t, 0, env.sales.queries)
}

func TestSales_SearchUsaAmbitoDelToken(t *testing.T) {
	env := newEnv(t)
	hdr := env.bearer(t, entity.SessionClaim{Code: "E001", AccessScope: "REGION1"})

	resp := env.do(t, http.MethodGet, "/api/sales?customerCode=ACME&goodsCode=G1&accessScope=ALL", nil, hdr)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"SALES_QTY":2`)
	assert.Contains(t, string(raw), `"SALES_AMOUNT":10.50`)
	assert.Contains(t, string(raw), `"INVOICE_NO":"INV1"`)

	assert.Equal(t, "REGION1%", env.sales.lastQ.Params[domainsales.ParamAccessScopePattern],
		"el ámbito de la query string se ignora")
	assert.Equal(t, "%ACME%", env.sales.lastQ.Params[domainsales.ParamCustomerCode])
	assert.Equal(t, "%G1%", env.sales.lastQ.Params[domainsales.ParamGoodsCode])
}

func TestSales_SearchVacioEsArray(t *testing.T) {
	env := newEnv(t)
	env.sales.rows = nil
	resp := env.do(t, http.MethodGet, "/api/sales", nil, env.bearer(t, entity.SessionClaim{Code: "E001", AccessScope: "R1"}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, "[]", string(raw))
}

func TestSales_AmbitoVacioEs403(t *testing.T) {
	env := newEnv(t)
	resp := env.do(t, http.MethodGet, "/api/sales", nil, env.bearer(t, entity.SessionClaim{Code: "E003"}))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, env.sales.queries)
}

func TestSales_ExportXLSXAdjunto(t *testing.T) {
	env := newEnv(t)
	resp := env.do(t, http.MethodGet, "/api/sales/export", nil, env.bearer(t, entity.SessionClaim{Code: "E001", AccessScope: "REGION1"}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, appsales.ContentTypeXLSX, resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="SalesData_2026-10-14.xlsx"`, resp.Header.Get("Content-Disposition"))

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, xlsx.Headers(), rows[0])
	assert.Equal(t, "INV1", rows[1][0])
}

func TestSales_ExportPDFAdjunto(t *testing.T) {
	env := newEnv(t)
	resp := env.do(t, http.MethodGet, "/api/sales/export/pdf", nil, env.bearer(t, entity.SessionClaim{Code: "E001", AccessScope: "REGION1"}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, appsales.ContentTypePDF, resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="SalesData_2026-10-14.pdf"`, resp.Header.Get("Content-Disposition"))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestHealth(t *testing.T) {
	env := newEnv(t)
	resp := env.do(t, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

// salesRowsSamples número de observaciones del histograma sales_query_rows para kind.
func salesRowsSamples(t *testing.T, m *metrics.Metrics, kind string) uint64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "sales_query_rows" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "kind" && l.GetValue() == kind {
					return metric.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	return 0
}

func TestSales_MetricaDeFilasPorTipo(t *testing.T) {
	env := newEnv(t)
	hdr := env.bearer(t, entity.SessionClaim{Code: "E001", AccessScope: "REGION1"})

	for _, path := range []string{"/api/sales", "/api/sales/export", "/api/sales/export/pdf"} {
		resp := env.do(t, http.MethodGet, path, nil, hdr)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	for _, kind := range []string{"search", "xlsx", "pdf"} {
		assert.Equal(t, uint64(1), salesRowsSamples(t, env.metrics, kind), "kind=%s", kind)
	}
}
