package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "слот занят")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"слот занят"}`, rec.Body.String())
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"внутренняя ошибка сервера"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Стрижка"}`, false},
		{"unknown field", `{"name":"Стрижка","price":1}`, true},
		{"two objects", `{"name":"a"}{"name":"b"}`, true},
		{"broken json", `{"name":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := DecodeJSON(r, &dst)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Стрижка", dst.Name)
		})
	}
}

func TestPathID(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{
		"salonId": "7",
		"staffId": "-1",
		"bad":     "abc",
	})

	id, err := PathID(r, "salonId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = PathID(r, "staffId")
	assert.Error(t, err)

	_, err = PathID(r, "bad")
	assert.Error(t, err)
}

func TestQueryParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?staffId=3&date=2026-03-02&status=pending&bad=2026-13-01", nil)

	staffID, err := QueryID(r, "staffId")
	require.NoError(t, err)
	require.NotNil(t, staffID)
	assert.Equal(t, int64(3), *staffID)

	missing, err := QueryID(r, "serviceId")
	require.NoError(t, err)
	assert.Nil(t, missing)

	date, err := QueryDate(r, "date")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", date.Format("2006-01-02"))

	_, err = QueryDate(r, "bad")
	assert.Error(t, err)

	assert.Equal(t, "pending", *QueryString(r, "status"))
	assert.Nil(t, QueryString(r, "none"))
}
