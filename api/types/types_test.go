package types

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmsite/site-api/internal/services/i18n"
	apperrors "github.com/firmsite/site-api/pkg/errors"
)

func TestDependencies_T(t *testing.T) {
	var nilDeps *Dependencies
	assert.Equal(t, "subscribe", nilDeps.T(i18n.Arabic, "subscribe"))
	assert.Equal(t, "subscribe", (&Dependencies{}).T(i18n.English, "subscribe"))

	catalog, err := i18n.LoadCatalog()
	require.NoError(t, err)
	deps := &Dependencies{Catalog: catalog}
	assert.Equal(t, "Subscribe", deps.T(i18n.English, "subscribe"))
}

func TestPreferencesAndClientID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.0.0.9:1234"

	assert.Equal(t, i18n.English, Language(c))
	assert.Equal(t, i18n.SourceDefault, Preferences(c).Source)
	assert.Equal(t, "10.0.0.9", ClientID(c))

	c.Set(PreferencesKey, i18n.Preferences{Language: i18n.Arabic, Source: i18n.SourceCookie})
	c.Set(ClientIDKey, "sid-1")
	assert.Equal(t, i18n.Arabic, Language(c))
	assert.Equal(t, "sid-1", ClientID(c))
}

func TestParseIntParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		value  string
		want   int
		wantOK bool
	}{
		{name: "valid", value: "42", want: 42, wantOK: true},
		{name: "zero", value: "0", want: 0, wantOK: true},
		{name: "negative", value: "-1"},
		{name: "not a number", value: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			got, ok := ParseIntParam(c, "id")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
				return
			}
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSendError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		back       *Link
		wantStatus int
		wantCode   string
	}{
		{
			name:       "app error",
			err:        apperrors.NotFound("service", "tax"),
			wantStatus: http.StatusNotFound,
			wantCode:   string(apperrors.ErrCodeNotFound),
		},
		{
			name:       "app error with back link",
			err:        apperrors.New(apperrors.ErrCodeSearchFailed, "search could not complete"),
			back:       &Link{Label: "Back", Href: "/"},
			wantStatus: http.StatusBadGateway,
			wantCode:   string(apperrors.ErrCodeSearchFailed),
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			SendErrorWithBack(c, tt.err, tt.back)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, tt.back, resp.Back)
			assert.Len(t, c.Errors, 1)
		})
	}
}
