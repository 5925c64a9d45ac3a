package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"medrequest_xpto/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Actor(middleware.ActorConfig{AllowHeaders: true}))
	return r
}

func doRequest(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func asPatient(id string) map[string]string {
	return map[string]string{middleware.HeaderActorID: id, middleware.HeaderActorRole: "patient"}
}

func asDoctor(id string) map[string]string {
	return map[string]string{middleware.HeaderActorID: id, middleware.HeaderActorRole: "doctor", middleware.HeaderActorName: "Dr. House"}
}
