package websocket

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func originRequest(host, origin string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "http://"+host+"/api/ws", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestOriginChecker_EmptyListIsSameOriginOnly(t *testing.T) {
	check := originChecker(nil)

	assert.True(t, check(originRequest("crm.example.com", "https://crm.example.com")))
	assert.True(t, check(originRequest("crm.example.com", "")))
	assert.False(t, check(originRequest("crm.example.com", "https://evil.example.com")))
}

func TestOriginChecker_List(t *testing.T) {
	check := originChecker([]string{"https://app.example.com/"})

	assert.True(t, check(originRequest("api.example.com", "https://app.example.com")))
	assert.False(t, check(originRequest("api.example.com", "https://evil.example.com")))
}

func TestOriginChecker_Wildcard(t *testing.T) {
	check := originChecker([]string{"*"})
	assert.True(t, check(originRequest("api.example.com", "https://anything.example.net")))
}
