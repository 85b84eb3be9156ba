package sink_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArgyPorgy/eigentribe/internal/adapters/sink"
	. "github.com/smartystreets/goconvey/convey"
)

func validRecord() sink.Record {
	return sink.Record{
		UserID:      "user-123",
		UserEmail:   "jane@example.com",
		Name:        "Jane Doe",
		Wallet:      "0x1234567890123456789012",
		Link:        "https://x.com/jane/status/1",
		ContentTags: []string{"Thread"},
	}
}

func TestClientAppend(t *testing.T) {
	Convey("Given a sink that accepts writes", t, func() {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := sink.NewClient(srv.URL)

		Convey("When appending a record", func() {
			err := client.Append(context.Background(), validRecord())

			Convey("Then the write succeeds", func() {
				So(err, ShouldBeNil)
			})

			Convey("And the wire shape uses snake_case keys", func() {
				So(got["user_id"], ShouldEqual, "user-123")
				So(got["user_email"], ShouldEqual, "jane@example.com")
				So(got["name"], ShouldEqual, "Jane Doe")
				So(got["wallet"], ShouldEqual, "0x1234567890123456789012")
				So(got["link"], ShouldEqual, "https://x.com/jane/status/1")
				So(got["content_tags"], ShouldNotBeNil)
			})
		})
	})

	Convey("Given a sink returning 503", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := sink.NewClient(srv.URL)

		Convey("When appending a record", func() {
			err := client.Append(context.Background(), validRecord())

			Convey("Then ErrWriteFailed is returned", func() {
				So(errors.Is(err, sink.ErrWriteFailed), ShouldBeTrue)
			})
		})
	})

	Convey("Given a record missing required fields", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("sink should not be called for invalid records")
		}))
		defer srv.Close()

		client := sink.NewClient(srv.URL)

		Convey("When appending the record", func() {
			rec := validRecord()
			rec.UserEmail = ""
			err := client.Append(context.Background(), rec)

			Convey("Then the record is rejected before the write", func() {
				So(errors.Is(err, sink.ErrInvalidRecord), ShouldBeTrue)
			})
		})
	})

	Convey("Given tags are absent", t, func() {
		var raw []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := make([]byte, r.ContentLength)
			_, _ = r.Body.Read(buf)
			raw = buf
		}))
		defer srv.Close()

		client := sink.NewClient(srv.URL)

		Convey("When appending a record without tags", func() {
			rec := validRecord()
			rec.ContentTags = nil
			err := client.Append(context.Background(), rec)

			Convey("Then the key is omitted from the payload", func() {
				So(err, ShouldBeNil)
				So(string(raw), ShouldNotContainSubstring, "content_tags")
			})
		})
	})
}
