// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Post("/v2/storage", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("read"))
	})
	router.Put("/v2/storage", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("write"))
	})
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "registered POST", method: http.MethodPost, path: "/v2/storage", wantStatus: http.StatusOK, wantBody: "read"},
		{name: "registered PUT", method: http.MethodPut, path: "/v2/storage", wantStatus: http.StatusOK, wantBody: "write"},
		{name: "DELETE is hidden", method: http.MethodDelete, path: "/v2/storage", wantStatus: http.StatusNotFound},
		{name: "GET is hidden", method: http.MethodGet, path: "/v2/storage", wantStatus: http.StatusNotFound},
		{name: "POST on single method route", method: http.MethodPost, path: "/healthz", wantStatus: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, path: "/v2/unknown", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestCheckHTTPMethod_DirectCall(t *testing.T) {
	router := buildRouter()
	check := CheckHTTPMethod(router)

	rr := httptest.NewRecorder()
	check(rr, httptest.NewRequest(http.MethodPut, "/v2/storage", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "write", rr.Body.String())

	rr = httptest.NewRecorder()
	check(rr, httptest.NewRequest(http.MethodPatch, "/v2/storage", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
