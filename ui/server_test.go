package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/app"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/submission"
)

const testEndpoint = "https://forms.example.com/d/e/FORM/formResponse"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	cat := catalog.Default()
	enc, err := submission.NewEncoder(testEndpoint, cat)
	require.NoError(t, err)

	srv, err := NewServer(app.NewFormService(cat, enc, nil), opts, nil)
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestIndexWithoutSelection(t *testing.T) {
	srv := newTestServer(t, Options{})

	w := do(t, srv, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Select a phenomenon to view specific controls.")
	assert.Contains(t, body, `name="Noise_Sigma"`)
	assert.NotContains(t, body, `name="L_param"`)
	assert.Contains(t, body, "<strong>DDG Engine</strong>")
	assert.Contains(t, body, "</html>")
}

func TestIndexShowsSelectedControls(t *testing.T) {
	srv := newTestServer(t, Options{})

	w := do(t, srv, httptest.NewRequest(http.MethodGet, "/?pe_id=LS2-1&email=a%40b.org&Noise_Sigma=450&L_param=20000", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.NotContains(t, body, "Select a phenomenon to view specific controls.")
	assert.Contains(t, body, `name="L_param" min="1000" max="20000" step="100" value="8000"`)
	assert.Contains(t, body, `name="k_param" min="0.1" max="1" step="0.1" value="0.7"`)
	assert.Contains(t, body, `name="Noise_Sigma" min="0" max="1000" step="50" value="450"`)
	assert.Contains(t, body, "Simulation Length (Time Steps)")
	assert.NotContains(t, body, `name="Mass_Const"`)
	assert.Contains(t, body, `value="a@b.org"`)
	assert.Contains(t, body, `<option value="LS2-1" selected>`)
}

func TestIndexUnknownCategory(t *testing.T) {
	srv := newTestServer(t, Options{})

	w := do(t, srv, httptest.NewRequest(http.MethodGet, "/?pe_id=ESS2-9", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ESS2-9")
	assert.Contains(t, w.Body.String(), "Select a phenomenon to view specific controls.")
}

func TestSubmitRendersConfirmation(t *testing.T) {
	srv := newTestServer(t, Options{})

	w := do(t, srv, postForm("/submit", url.Values{
		"pe_id":       {"PS3-1_KE"},
		"email":       {"teacher@school.edu"},
		"Mass_Const":  {"12"},
		"t_range":     {"45"},
		"Noise_Sigma": {"100"},
		"L_param":     {"9000"},
	}))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "https://forms.example.com/d/e/FORM/formResponse?")
	assert.Contains(t, body, "Mass_Const=12")
	assert.Contains(t, body, "L_param=0")
	assert.Contains(t, body, "next processing run")
	assert.Contains(t, body, "<td>PE_ID</td><td>PS3-1_KE</td>")
}

func TestSubmitValidationFailures(t *testing.T) {
	srv := newTestServer(t, Options{})

	tests := []struct {
		name    string
		form    url.Values
		status  int
		message string
	}{
		{"no category", url.Values{"email": {"a@b.org"}}, http.StatusUnprocessableEntity, "please select a phenomenon before submitting"},
		{"no email", url.Values{"pe_id": {"LS2-1"}}, http.StatusUnprocessableEntity, "please enter an email address"},
		{"bad email", url.Values{"pe_id": {"LS2-1"}, "email": {"not-an-email"}}, http.StatusUnprocessableEntity, "email address is not valid"},
		{"not a number", url.Values{"pe_id": {"LS2-1"}, "email": {"a@b.org"}, "L_param": {"lots"}}, http.StatusBadRequest, "L_param must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, postForm("/submit", tt.form))
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
			assert.Contains(t, w.Body.String(), `id="ddg-form"`)
		})
	}
}

func TestSubmitAutoRedirect(t *testing.T) {
	srv := newTestServer(t, Options{AutoRedirect: true})

	w := do(t, srv, postForm("/submit", url.Values{"pe_id": {"LS2-1"}, "email": {"a@b.org"}}))
	require.Equal(t, http.StatusSeeOther, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "forms.example.com", loc.Host)
	assert.Equal(t, "8000", loc.Query().Get("L_param"))
	assert.Equal(t, "a@b.org", loc.Query().Get("Email"))
}

func TestAPICatalog(t *testing.T) {
	srv := newTestServer(t, Options{})

	w := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got catalog.Catalog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, catalog.Default().IDs(), got.IDs())
}

func TestAPISubmissions(t *testing.T) {
	srv := newTestServer(t, Options{})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/submissions", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		return do(t, srv, req)
	}

	t.Run("accepted", func(t *testing.T) {
		w := post(`{"pe_id":"LS2-1","email":"a@b.org","values":{"k_param":0.33}}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp submissionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Contains(t, resp.URL, "k_param=0.3")
		assert.Len(t, resp.Summary, 7)
	})

	t.Run("validation", func(t *testing.T) {
		w := post(`{"pe_id":"LS2-1"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("unknown category", func(t *testing.T) {
		w := post(`{"pe_id":"XX-1","email":"a@b.org"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed", func(t *testing.T) {
		w := post(`{"pe_id":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})
}

func TestHealthAndStatic(t *testing.T) {
	srv := newTestServer(t, Options{})

	w := do(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, srv, httptest.NewRequest(http.MethodGet, "/static/css/form.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRenderInlineMarkdown(t *testing.T) {
	assert.Equal(t, "a <em>messy</em> study", string(renderInlineMarkdown("a *messy* study")))
	assert.NotContains(t, string(renderMarkdown("<script>alert(1)</script>")), "<script>")
	assert.Empty(t, renderMarkdown(""))
}
