package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"dept-portal/models"
)

type fakeUsers map[string]*models.User

func (f fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := f[username]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func permissionRouter(users UserSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/edit", RequirePermission(users, "schedule_edit"), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, user.Username)
	})
	return r
}

func TestRequirePermission(t *testing.T) {
	users := fakeUsers{
		"editor": {Username: "editor", Role: "editor", Permissions: models.Permissions{"schedule_edit": true}},
		"viewer": {Username: "viewer", Role: "editor"},
		"boss":   {Username: "boss", Role: "admin"},
	}
	r := permissionRouter(users)

	cases := []struct {
		name     string
		username string
		want     int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"unknown user", "ghost", http.StatusUnauthorized},
		{"lacking capability", "viewer", http.StatusForbidden},
		{"capability granted", "editor", http.StatusOK},
		{"admin passes all", "boss", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/edit", nil)
		if tc.username != "" {
			req.Header.Set("X-Username", tc.username)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s: status %d, want %d", tc.name, w.Code, tc.want)
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	users := fakeUsers{
		"editor": {Username: "editor", Role: "editor", Permissions: models.Permissions{"schedule_edit": true}},
		"boss":   {Username: "boss", Role: "admin"},
	}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/admin", RequireAdmin(users), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodDelete, "/admin", nil)
	req.Header.Set("X-Username", "editor")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("editor reached admin route: %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/admin", nil)
	req.Header.Set("X-Username", "boss")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin blocked: %d", w.Code)
	}
}
