package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ArgyPorgy/eigentribe/internal/adapters/http/api"
	"github.com/ArgyPorgy/eigentribe/internal/adapters/repository"
	"github.com/ArgyPorgy/eigentribe/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDeps struct {
	submitErr  error
	submits    int
	lastToken  string
	topN       []repository.Entry
	topNErr    error
	uploadErr  error
	uploadRows int
	adminEmail string
}

func (m *mockDeps) Submit(ctx context.Context, token string, payload []byte) error {
	m.submits++
	m.lastToken = token
	return m.submitErr
}

func (m *mockDeps) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	if m.topNErr != nil {
		return nil, m.topNErr
	}
	if n > len(m.topN) {
		return m.topN, nil
	}
	return m.topN[:n], nil
}

func (m *mockDeps) UploadLeaderboard(ctx context.Context, token, csvData string) (int, error) {
	if m.uploadErr != nil {
		return 0, m.uploadErr
	}
	return m.uploadRows, nil
}

func (m *mockDeps) IsAdmin(email string) bool {
	return m.adminEmail != "" && strings.EqualFold(email, m.adminEmail)
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps *mockDeps) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"ok": true}}, 100)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body["error"]
}

func TestSubmitEndpoint(t *testing.T) {
	Convey("Given the submit endpoint", t, func() {
		deps := &mockDeps{}
		mux := newMux(deps)

		Convey("When sending a CORS preflight", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/submit", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should answer 200 with CORS headers and an empty body", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
				So(w.Header().Get("Access-Control-Allow-Headers"), ShouldEqual, "Content-Type, Authorization")
				So(w.Header().Get("Access-Control-Allow-Methods"), ShouldEqual, "POST, OPTIONS")
				So(w.Body.Len(), ShouldEqual, 0)
			})
		})

		Convey("When posting without an Authorization header", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should fail 401 with the exact message", func() {
				So(w.Code, ShouldEqual, http.StatusUnauthorized)
				So(errorBody(w), ShouldEqual, "No authorization token")
				So(deps.submits, ShouldEqual, 0)
			})
		})

		Convey("When posting with a bearer token", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(`{"name":"Jane"}`))
			req.Header.Set("Authorization", "Bearer session-token")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the token is stripped and passed through", func() {
				So(deps.lastToken, ShouldEqual, "session-token")
			})

			Convey("And a successful pipeline run returns the ack", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body map[string]bool
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["success"], ShouldBeTrue)
			})
		})

		Convey("When the pipeline reports an invalid token", func() {
			deps.submitErr = app.ErrInvalidToken
			req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(`{}`))
			req.Header.Set("Authorization", "Bearer bad")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusUnauthorized)
			So(errorBody(w), ShouldEqual, "Invalid token")
		})

		Convey("When the pipeline reports a rate limit", func() {
			deps.submitErr = &app.RateLimitError{WaitSeconds: 55}
			req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(`{}`))
			req.Header.Set("Authorization", "Bearer tok")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusTooManyRequests)
			So(errorBody(w), ShouldEqual, "Please wait 55 seconds before submitting again")
		})

		Convey("When the pipeline reports validation failures", func() {
			cases := map[error]string{
				app.ErrAllFieldsRequired: "All fields are required",
				app.ErrInvalidWallet:     "Invalid wallet address",
				app.ErrLinkScheme:        "Link must start with http:// or https://",
			}
			for errKind, msg := range cases {
				deps.submitErr = errKind
				req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(`{}`))
				req.Header.Set("Authorization", "Bearer tok")
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(errorBody(w), ShouldEqual, msg)
			}
		})

		Convey("When the sink write fails", func() {
			deps.submitErr = app.ErrSaveFailed
			req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(`{}`))
			req.Header.Set("Authorization", "Bearer tok")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(errorBody(w), ShouldEqual, "Failed to save submission")
		})

		Convey("When using an unsupported method", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/submit", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given a board with three entries", t, func() {
		deps := &mockDeps{topN: []repository.Entry{
			{ID: "1", Rank: 1, UserName: "Arghya", Points: 2500},
			{ID: "2", Rank: 2, UserName: "Sambhav", Points: 2100},
			{ID: "3", Rank: 3, UserName: "Parth", Points: 1850},
		}}
		mux := newMux(deps)

		Convey("When requesting the top 2", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=2", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then two entries are returned in rank order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var entries []map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &entries), ShouldBeNil)
				So(len(entries), ShouldEqual, 2)
				So(entries[0]["user_name"], ShouldEqual, "Arghya")
			})
		})

		Convey("When omitting the limit", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When passing a bogus limit", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=abc", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestAdminCheckEndpoint(t *testing.T) {
	Convey("Given an admin account", t, func() {
		deps := &mockDeps{adminEmail: "admin@example.com"}
		mux := newMux(deps)

		Convey("When checking the admin email", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/check?email=admin%40example.com", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			var body map[string]bool
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["isAdmin"], ShouldBeTrue)
		})

		Convey("When checking another email", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/check?email=jane%40example.com", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			var body map[string]bool
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["isAdmin"], ShouldBeFalse)
		})

		Convey("When the email parameter is missing", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/check", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorBody(w), ShouldEqual, "Missing email parameter")
		})
	})
}

func TestUploadEndpoint(t *testing.T) {
	Convey("Given the upload endpoint", t, func() {
		deps := &mockDeps{uploadRows: 2}
		mux := newMux(deps)

		post := func(body string, auth bool) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/api/leaderboard/upload", strings.NewReader(body))
			if auth {
				req.Header.Set("Authorization", "Bearer admin-token")
			}
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		Convey("When uploading valid CSV data", func() {
			w := post(`{"csvData":"email,name,points,rank\n"}`, true)

			Convey("Then the row count is acknowledged", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["message"], ShouldEqual, "Leaderboard updated: 2 rows")
			})
		})

		Convey("When the Authorization header is missing", func() {
			w := post(`{"csvData":"x"}`, false)
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("When csvData is missing", func() {
			w := post(`{}`, true)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorBody(w), ShouldEqual, "Missing csvData")
		})

		Convey("When the caller is not the admin", func() {
			deps.uploadErr = app.ErrNotAdmin
			w := post(`{"csvData":"x"}`, true)
			So(w.Code, ShouldEqual, http.StatusForbidden)
		})

		Convey("When the CSV is malformed", func() {
			deps.uploadErr = repository.ErrBadCSV
			w := post(`{"csvData":"x"}`, true)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStatsAndHealth(t *testing.T) {
	Convey("Given the service endpoints", t, func() {
		mux := newMux(&mockDeps{})

		Convey("When requesting stats", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "ok")
		})

		Convey("When requesting health", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
		})
	})
}
