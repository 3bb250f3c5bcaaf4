package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/planillapro/planilla-backend-go/internal/pkg/clock"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
	"github.com/planillapro/planilla-backend-go/internal/pkg/jwt"
	"github.com/planillapro/planilla-backend-go/internal/repository/memory"
	contractService "github.com/planillapro/planilla-backend-go/internal/service/contract"
	"github.com/planillapro/planilla-backend-go/internal/service/master"
	payrollService "github.com/planillapro/planilla-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

func assertAmount(t *testing.T, expected, actual string) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	got, err := decimal.NewFromString(actual)
	require.NoError(t, err)
	assert.True(t, want.Equal(got), "expected %s, got %s", want, got)
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	contracts := memory.NewContractStore()
	employees := memory.NewEmployeeStore(contracts)
	headquarters := memory.NewHeadquartersStore()
	payrolls := memory.NewPayrollStore()

	clk := clock.Fixed{T: time.Date(2024, time.April, 20, 12, 0, 0, 0, time.UTC)}

	JWTService := jwt.NewJWTService(handlerTestSecret, "1h")
	masterSvc := master.NewMasterService(headquarters, employees)
	contractSvc := contractService.NewContractService(database.PassthroughTx{}, contracts, employees, clk)
	payrollSvc := payrollService.NewPayrollService(database.PassthroughTx{}, payrolls, contracts, employees, clk, true)

	router := NewRouter(
		JWTService,
		NewPayrollHandler(payrollSvc),
		NewContractHandler(contractSvc),
		NewMasterHandler(masterSvc),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	token, _, err := JWTService.GenerateAccessToken("test-user", "admin")
	require.NoError(t, err)

	return srv, token
}

func doRequest(t *testing.T, srv *httptest.Server, token, method, path string, body interface{}) (*http.Response, testEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope testEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func seedHandlerEmployee(t *testing.T, srv *httptest.Server, token string) string {
	t.Helper()

	_, env := doRequest(t, srv, token, http.MethodPost, "/api/v1/headquarters", map[string]interface{}{
		"name": "Main Office",
	})
	var hq struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &hq))

	_, env = doRequest(t, srv, token, http.MethodPost, "/api/v1/employees", map[string]interface{}{
		"headquarters_id": hq.ID,
		"employee_code":   "EMP-001",
		"full_name":       "Maria Lopez",
	})
	var emp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &emp))
	return emp.ID
}

func TestRouter_RequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doRequest(t, srv, "", http.MethodGet, "/api/v1/employees", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestPayrollFlow(t *testing.T) {
	srv, token := newTestServer(t)
	employeeID := seedHandlerEmployee(t, srv, token)

	// Hire on a biweekly contract.
	resp, env := doRequest(t, srv, token, http.MethodPost, "/api/v1/contracts", map[string]interface{}{
		"employee_id":       employeeID,
		"hire_date":         "2023-01-02",
		"accounting_salary": "1000",
		"real_salary":       "1200",
		"frequency":         "biweekly",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	// Open the payroll month.
	resp, env = doRequest(t, srv, token, http.MethodPost, "/api/v1/payrolls/generate", map[string]interface{}{
		"period_year":  2024,
		"period_month": 4,
		"employee_ids": []string{employeeID},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var batch struct {
		Created int `json:"created"`
		Items   []struct {
			PayrollID string `json:"payroll_id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &batch))
	require.Equal(t, 1, batch.Created)
	require.Len(t, batch.Items, 1)
	payrollID := batch.Items[0].PayrollID

	// Settle both halves.
	resp, _ = doRequest(t, srv, token, http.MethodPost, "/api/v1/payrolls/payments/generate", map[string]interface{}{
		"employee_id":  employeeID,
		"period_year":  2024,
		"period_month": 4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env = doRequest(t, srv, token, http.MethodGet, fmt.Sprintf("/api/v1/payrolls/%s/payments", payrollID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payments []struct {
		Biweekly         int    `json:"biweekly"`
		AccountingAmount string `json:"accounting_amount"`
		RealAmount       string `json:"real_amount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payments))
	require.Len(t, payments, 2)
	assertAmount(t, "400", payments[0].AccountingAmount)
	assertAmount(t, "80", payments[0].RealAmount)
	assertAmount(t, "600", payments[1].AccountingAmount)
	assertAmount(t, "120", payments[1].RealAmount)

	// Closing locks edits with a conflict.
	resp, _ = doRequest(t, srv, token, http.MethodPost, fmt.Sprintf("/api/v1/payrolls/%s/close", payrollID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = doRequest(t, srv, token, http.MethodPost, fmt.Sprintf("/api/v1/payrolls/%s/additionals", payrollID), map[string]interface{}{
		"description": "bonus",
		"amount":      "100",
		"quantity":    1,
		"pay_card":    1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	// Reopening unlocks.
	resp, _ = doRequest(t, srv, token, http.MethodPost, fmt.Sprintf("/api/v1/payrolls/%s/reopen", payrollID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, srv, token, http.MethodPost, fmt.Sprintf("/api/v1/payrolls/%s/additionals", payrollID), map[string]interface{}{
		"description": "bonus",
		"amount":      "100",
		"quantity":    1,
		"pay_card":    1,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestPayrollValidationAndNotFound(t *testing.T) {
	srv, token := newTestServer(t)

	// Out-of-range month fails validation.
	resp, env := doRequest(t, srv, token, http.MethodPost, "/api/v1/payrolls/generate", map[string]interface{}{
		"period_year":  2024,
		"period_month": 13,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "period_month")

	// Unknown payroll maps to 404.
	resp, _ = doRequest(t, srv, token, http.MethodGet, "/api/v1/payrolls/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDownloadPayslip(t *testing.T) {
	srv, token := newTestServer(t)
	employeeID := seedHandlerEmployee(t, srv, token)

	resp, _ := doRequest(t, srv, token, http.MethodPost, "/api/v1/contracts", map[string]interface{}{
		"employee_id":       employeeID,
		"hire_date":         "2023-01-02",
		"accounting_salary": "1000",
		"real_salary":       "1200",
		"frequency":         "monthly",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, env := doRequest(t, srv, token, http.MethodPost, "/api/v1/payrolls/generate", map[string]interface{}{
		"period_year":  2024,
		"period_month": 4,
		"employee_ids": []string{employeeID},
	})
	var batch struct {
		Items []struct {
			PayrollID string `json:"payroll_id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &batch))
	require.Len(t, batch.Items, 1)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/payrolls/"+batch.Items[0].PayrollID+"/payslip", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	pdfResp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer pdfResp.Body.Close()

	assert.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get("Content-Type"))
}
