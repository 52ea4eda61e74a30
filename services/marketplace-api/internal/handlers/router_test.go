package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/auth"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/db"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/middlewares"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/repository"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	store  *repository.Store
	tokens *auth.Tokens
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gdb, err := db.Open("sqlite", ":memory:", db.Options{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repository.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	store := repository.NewGormStore(gdb)
	tokens := auth.NewTokens("test-secret", time.Hour, "test")
	bookings := service.NewBookingSvc(service.BookingDeps{
		Bookings: store.Bookings,
		Tours:    store.Tours,
		Users:    store.Users,
		Currency: "thb",
		Log:      zerolog.Nop(),
	})
	r := NewRouter(RouterConfig{
		Tokens:        tokens,
		ClientOrigins: []string{"http://localhost:3000"},
		Log:           zerolog.Nop(),
	}, Services{
		Auth:         service.NewAuthSvc(store.Users, tokens),
		Guides:       service.NewGuideSvc(store.Users),
		Tours:        service.NewTourSvc(store.Tours),
		Bookings:     bookings,
		Users:        service.NewUserSvc(store.Users),
		Destinations: service.NewDestinationSvc(store.Destinations),
		Admin:        service.NewAdminSvc(store.Users, store.Tours, store.Bookings, store.Destinations),
	})
	return &testAPI{t: t, router: r, store: store, tokens: tokens}
}

func (a *testAPI) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			a.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w, out
}

func (a *testAPI) user(name string, role domain.Role, location string, langs ...string) (*domain.User, string) {
	a.t.Helper()
	u := &domain.User{
		Name:      name,
		Email:     name + "@example.com",
		Role:      role,
		Location:  location,
		Languages: datatypes.JSONSlice[string](langs),
	}
	if err := a.store.Users.Create(context.Background(), u); err != nil {
		a.t.Fatalf("create %s: %v", name, err)
	}
	tok, _, err := a.tokens.Issue(u.ID, string(role), u.Email)
	if err != nil {
		a.t.Fatalf("issue: %v", err)
	}
	return u, tok
}

func (a *testAPI) tour(guideID string) *domain.Tour {
	a.t.Helper()
	t := &domain.Tour{
		Title: "Amber Fort Morning", Description: "Sunrise at the fort", Price: 1200, Duration: 1,
		Location: "Jaipur", GuideID: guideID, MaxParticipants: 6, AvailableSpots: 6,
		Date: time.Now().Add(48 * time.Hour).UTC(),
	}
	if err := a.store.Tours.Create(context.Background(), t); err != nil {
		a.t.Fatalf("create tour: %v", err)
	}
	return t
}

func (a *testAPI) booking(travelerToken, tourID string) string {
	a.t.Helper()
	w, body := a.do(http.MethodPost, "/api/bookings", travelerToken, gin.H{"tourId": tourID, "participants": 2})
	if w.Code != http.StatusCreated {
		a.t.Fatalf("create booking: %d %v", w.Code, body)
	}
	return body["booking"].(map[string]any)["id"].(string)
}

func TestRegisterLoginAndCheck(t *testing.T) {
	api := newTestAPI(t)
	reg := gin.H{"name": "Ananya", "email": "ananya@example.com", "password": "supersecret"}

	w, body := api.do(http.MethodPost, "/api/auth/register", "", reg)
	if w.Code != http.StatusCreated || body["success"] != true || body["token"] == "" {
		t.Fatalf("register = %d %v", w.Code, body)
	}
	if _, leaked := body["user"].(map[string]any)["passwordHash"]; leaked {
		t.Fatal("password hash must not be serialised")
	}
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middlewares.TokenCookie {
			cookie = c
		}
	}
	if cookie == nil || !cookie.HttpOnly || cookie.MaxAge != 3600 {
		t.Fatalf("session cookie = %+v", cookie)
	}

	w, body = api.do(http.MethodPost, "/api/auth/register", "", reg)
	if w.Code != http.StatusBadRequest || body["error"] != "Email already registered" {
		t.Fatalf("duplicate register = %d %v", w.Code, body)
	}

	w, body = api.do(http.MethodPost, "/api/auth/direct-login", "", gin.H{"email": "ananya@example.com", "password": "wrong-password"})
	if w.Code != http.StatusUnauthorized || body["error"] != "Invalid credentials" {
		t.Fatalf("bad login = %d %v", w.Code, body)
	}

	w, body = api.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ananya@example.com", "password": "supersecret"})
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d %v", w.Code, body)
	}
	token := body["token"].(string)

	w, body = api.do(http.MethodGet, "/api/auth/check", token, nil)
	if w.Code != http.StatusOK || body["authenticated"] != true {
		t.Fatalf("check = %d %v", w.Code, body)
	}
}

func TestExpiredTokenIsUnauthorized(t *testing.T) {
	api := newTestAPI(t)
	u, _ := api.user("ravi", domain.RoleTraveler, "Pune")
	expired := auth.NewTokens("test-secret", -time.Minute, "test")
	tok, _, _ := expired.Issue(u.ID, string(u.Role), u.Email)

	w, body := api.do(http.MethodGet, "/api/bookings", tok, nil)
	if w.Code != http.StatusUnauthorized || body["success"] != false {
		t.Fatalf("expired = %d %v", w.Code, body)
	}
	if w, _ := api.do(http.MethodGet, "/api/bookings", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous = %d", w.Code)
	}
}

func TestGuideSearchIsPublicAndCaseInsensitive(t *testing.T) {
	api := newTestAPI(t)
	api.user("kabir", domain.RoleGuide, "Delhi", "Hindi", "English")
	api.user("meena", domain.RoleGuide, "Mumbai", "Marathi")
	_, travelerTok := api.user("riya", domain.RoleTraveler, "Delhi")

	for _, tok := range []string{"", travelerTok} {
		w, body := api.do(http.MethodGet, "/api/guides?location=delhi", tok, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("search = %d %v", w.Code, body)
		}
		guides := body["guides"].([]any)
		if len(guides) != 1 || guides[0].(map[string]any)["name"] != "kabir" {
			t.Fatalf("guides = %v", guides)
		}
	}

	w, body := api.do(http.MethodGet, "/api/guides?language=hindi", "", nil)
	if w.Code != http.StatusOK || len(body["guides"].([]any)) != 1 {
		t.Fatalf("language search = %d %v", w.Code, body)
	}
	if w, _ := api.do(http.MethodGet, "/api/guides?priceMin=abc", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad price = %d", w.Code)
	}
}

func TestGuideRoutesResolveBesideGuideID(t *testing.T) {
	api := newTestAPI(t)
	g, guideTok := api.user("kabir", domain.RoleGuide, "Delhi")
	_, travelerTok := api.user("riya", domain.RoleTraveler, "Delhi")

	w, body := api.do(http.MethodGet, "/api/guides/profile", guideTok, nil)
	if w.Code != http.StatusOK || body["guide"].(map[string]any)["id"] != g.ID {
		t.Fatalf("profile = %d %v", w.Code, body)
	}
	if w, _ := api.do(http.MethodGet, "/api/guides/profile", travelerTok, nil); w.Code != http.StatusForbidden {
		t.Fatalf("traveler profile = %d", w.Code)
	}
	w, body = api.do(http.MethodGet, "/api/guides/"+g.ID, "", nil)
	if w.Code != http.StatusOK || body["guide"].(map[string]any)["name"] != "kabir" {
		t.Fatalf("public guide = %d %v", w.Code, body)
	}

	w, body = api.do(http.MethodPut, "/api/guides/profile", guideTok, gin.H{"about": "Walks and food", "pricePerDay": 2000})
	if w.Code != http.StatusOK || body["guide"].(map[string]any)["pricePerDay"] != 2000.0 {
		t.Fatalf("update profile = %d %v", w.Code, body)
	}
}

func TestBookingValidation(t *testing.T) {
	api := newTestAPI(t)
	g, _ := api.user("kabir", domain.RoleGuide, "Jaipur")
	_, travelerTok := api.user("riya", domain.RoleTraveler, "Delhi")
	tour := api.tour(g.ID)

	cases := []struct {
		name string
		body gin.H
		want int
	}{
		{"zero participants", gin.H{"tourId": tour.ID, "participants": 0}, http.StatusBadRequest},
		{"negative price", gin.H{"tourId": tour.ID, "participants": 1, "totalPrice": -5}, http.StatusBadRequest},
		{"unknown tour", gin.H{"tourId": "missing", "participants": 1}, http.StatusNotFound},
		{"ok", gin.H{"tourId": tour.ID, "participants": 2}, http.StatusCreated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := api.do(http.MethodPost, "/api/bookings", travelerTok, tc.body)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d (%v)", w.Code, tc.want, body)
			}
		})
	}
}

func TestGuideStatusUpdate(t *testing.T) {
	api := newTestAPI(t)
	owner, ownerTok := api.user("kabir", domain.RoleGuide, "Jaipur")
	_, otherTok := api.user("meena", domain.RoleGuide, "Jaipur")
	_, travelerTok := api.user("riya", domain.RoleTraveler, "Delhi")
	id := api.booking(travelerTok, api.tour(owner.ID).ID)
	path := "/api/guides/bookings/" + id

	if w, _ := api.do(http.MethodPatch, path, otherTok, gin.H{"status": "confirmed"}); w.Code != http.StatusNotFound {
		t.Fatalf("other guide = %d, want 404", w.Code)
	}
	if w, _ := api.do(http.MethodPatch, path, travelerTok, gin.H{"status": "confirmed"}); w.Code != http.StatusForbidden {
		t.Fatalf("traveler = %d, want 403", w.Code)
	}
	if w, body := api.do(http.MethodPatch, path, ownerTok, gin.H{"status": "archived"}); w.Code != http.StatusBadRequest || body["error"] != "Invalid status" {
		t.Fatalf("invalid status = %d %v", w.Code, body)
	}

	steps := []struct {
		status string
		want   int
	}{
		{"confirmed", http.StatusOK},
		{"completed", http.StatusOK},
		{"cancelled", http.StatusBadRequest},
		{"pending", http.StatusBadRequest},
	}
	for _, s := range steps {
		w, body := api.do(http.MethodPatch, path, ownerTok, gin.H{"status": s.status})
		if w.Code != s.want {
			t.Fatalf("-> %s = %d, want %d (%v)", s.status, w.Code, s.want, body)
		}
	}

	w, body := api.do(http.MethodGet, "/api/guides/bookings", ownerTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("guide bookings = %d", w.Code)
	}
	list := body["bookings"].([]any)
	if len(list) != 1 || list[0].(map[string]any)["status"] != "completed" || list[0].(map[string]any)["travelerName"] != "riya" {
		t.Fatalf("guide bookings = %v", list)
	}
}

func TestTravelerCancelAndDashboard(t *testing.T) {
	api := newTestAPI(t)
	g, _ := api.user("kabir", domain.RoleGuide, "Jaipur")
	_, travelerTok := api.user("riya", domain.RoleTraveler, "Delhi")
	_, strangerTok := api.user("dev", domain.RoleTraveler, "Goa")
	id := api.booking(travelerTok, api.tour(g.ID).ID)

	if w, _ := api.do(http.MethodPost, "/api/bookings/"+id+"/cancel", strangerTok, nil); w.Code != http.StatusNotFound {
		t.Fatalf("stranger cancel = %d", w.Code)
	}
	if w, _ := api.do(http.MethodGet, "/api/bookings/"+id, strangerTok, nil); w.Code != http.StatusNotFound {
		t.Fatalf("stranger get = %d", w.Code)
	}
	if w, body := api.do(http.MethodPost, "/api/bookings/"+id+"/cancel", travelerTok, nil); w.Code != http.StatusOK {
		t.Fatalf("cancel = %d %v", w.Code, body)
	}

	w, body := api.do(http.MethodGet, "/api/dashboard", travelerTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard = %d %v", w.Code, body)
	}
	if len(body["upcomingBookings"].([]any)) != 0 || len(body["pastBookings"].([]any)) != 1 {
		t.Fatalf("dashboard = %v", body)
	}
	if w, body := api.do(http.MethodPost, "/api/bookings/"+id+"/pay", travelerTok, gin.H{"cardToken": "tokn_x"}); w.Code != http.StatusInternalServerError || body["error"] != "internal server error" {
		t.Fatalf("pay without gateway = %d %v", w.Code, body)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	api := newTestAPI(t)
	_, travelerTok := api.user("riya", domain.RoleTraveler, "Delhi")
	_, adminTok := api.user("root", domain.RoleAdmin, "")

	for _, path := range []string{"/api/admin/dashboard", "/api/admin/users", "/api/admin/guides", "/api/admin/bookings"} {
		if w, _ := api.do(http.MethodGet, path, travelerTok, nil); w.Code != http.StatusForbidden {
			t.Fatalf("traveler %s = %d, want 403", path, w.Code)
		}
		if w, body := api.do(http.MethodGet, path, adminTok, nil); w.Code != http.StatusOK {
			t.Fatalf("admin %s = %d %v", path, w.Code, body)
		}
	}

	w, body := api.do(http.MethodPost, "/api/admin/destinations", adminTok, gin.H{"name": "Goa Beaches", "country": "India"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create destination = %d %v", w.Code, body)
	}
	w, body = api.do(http.MethodGet, "/api/destinations/goa-beaches", "", nil)
	if w.Code != http.StatusOK || body["destination"].(map[string]any)["name"] != "Goa Beaches" {
		t.Fatalf("get destination = %d %v", w.Code, body)
	}
	if w, _ := api.do(http.MethodPost, "/api/admin/destinations", travelerTok, gin.H{"name": "Ooty"}); w.Code != http.StatusForbidden {
		t.Fatalf("traveler create destination = %d", w.Code)
	}
}

func TestWebhookWithoutGateway(t *testing.T) {
	api := newTestAPI(t)
	if w, _ := api.do(http.MethodPost, "/webhooks/omise", "", gin.H{}); w.Code != http.StatusBadRequest {
		t.Fatalf("empty webhook = %d", w.Code)
	}
	if w, _ := api.do(http.MethodPost, "/webhooks/omise", "", gin.H{"id": "evnt_1"}); w.Code != http.StatusNotFound {
		t.Fatalf("webhook without gateway = %d", w.Code)
	}
}
