package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/cowin/pkg/logger"
)

const sampleJSON = `{"days":[{"date":"2021-05-01","dose1Count":10,"dose2Count":4}],"byAge":[{"ageRange":"18-44","count":7}],"byGender":[{"gender":"Male","count":7}]}`

type fakeService struct {
	pollsUntilSettled int32
	finalStatus       string
	healthStatus      int
	body              func(n int64) (int, string)
	calls             int64
	closed            int32
}

func (f *fakeService) handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(f.healthStatus)
	})
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/dashboard/abc", http.StatusSeeOther)
	})
	var polls int32
	r.Get("/dashboard/{id}", func(w http.ResponseWriter, _ *http.Request) {
		status := "IN_PROGRESS"
		if atomic.AddInt32(&polls, 1) > f.pollsUntilSettled {
			status = f.finalStatus
		}
		fmt.Fprintf(w, `<main class="dashboard" data-status="%s"></main>`, status)
	})
	r.Delete("/dashboard/{id}", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&f.closed, 1)
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/api/vaccination", func(w http.ResponseWriter, _ *http.Request) {
		code, body := f.body(atomic.AddInt64(&f.calls, 1))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	})
	return r
}

func healthyService() *fakeService {
	return &fakeService{
		pollsUntilSettled: 1,
		finalStatus:       "SUCCESS",
		healthStatus:      http.StatusOK,
		body:              func(int64) (int, string) { return http.StatusOK, sampleJSON },
	}
}

func testConfig(url string) *Config {
	return &Config{BaseURL: url, Requests: 8, Workers: 3, Timeout: 5 * time.Second}
}

func TestRun(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	ctx := context.Background()

	Convey("Given a healthy dashboard service", t, func() {
		fake := healthyService()
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		Convey("When the probe runs", func() {
			stats, err := Run(ctx, testConfig(srv.URL))

			Convey("Then every call succeeds with one distinct body", func() {
				So(err, ShouldBeNil)
				So(stats.Requests, ShouldEqual, 8)
				So(stats.Succeeded, ShouldEqual, 8)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.DistinctBodies, ShouldEqual, 1)
				So(stats.DashboardState, ShouldEqual, "SUCCESS")
				So(atomic.LoadInt32(&fake.closed), ShouldEqual, 1)
			})
		})
	})

	Convey("Given an unhealthy service", t, func() {
		fake := healthyService()
		fake.healthStatus = http.StatusServiceUnavailable
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		Convey("Then the probe stops at the health check", func() {
			_, err := Run(ctx, testConfig(srv.URL))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
			So(atomic.LoadInt64(&fake.calls), ShouldEqual, 0)
		})
	})

	Convey("Given a dashboard that settles on failure", t, func() {
		fake := healthyService()
		fake.finalStatus = "FAILURE"
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		Convey("Then the probe reports the failure view", func() {
			stats, err := Run(ctx, testConfig(srv.URL))
			So(errors.Is(err, ErrDashboardFailed), ShouldBeTrue)
			So(stats.DashboardState, ShouldEqual, "FAILURE")
		})
	})

	Convey("Given an upstream that fails every call", t, func() {
		fake := healthyService()
		fake.body = func(int64) (int, string) {
			return http.StatusBadGateway, `{"code":"upstream_error","message":"upstream unavailable: status 500"}`
		}
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		Convey("Then verification fails", func() {
			stats, err := Run(ctx, testConfig(srv.URL))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "status 502")
			So(stats.Failed, ShouldEqual, 8)
		})
	})

	Convey("Given responses that differ between calls", t, func() {
		fake := healthyService()
		fake.body = func(n int64) (int, string) {
			if n%2 == 0 {
				return http.StatusOK, `{"days":[],"byAge":[],"byGender":[]}`
			}
			return http.StatusOK, sampleJSON
		}
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		Convey("Then the probe flags the fetch as not idempotent", func() {
			stats, err := Run(ctx, testConfig(srv.URL))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "not idempotent")
			So(stats.DistinctBodies, ShouldEqual, 2)
		})
	})

	Convey("Given a response with a negative count", t, func() {
		fake := healthyService()
		fake.body = func(int64) (int, string) {
			return http.StatusOK, `{"days":[],"byAge":[{"ageRange":"18-44","count":-1}],"byGender":[]}`
		}
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		Convey("Then verification rejects it", func() {
			_, err := Run(ctx, testConfig(srv.URL))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "negative count")
		})
	})

	Convey("Given a service that is not listening", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		Convey("Then the health check fails to connect", func() {
			_, err := Run(ctx, testConfig(url))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "failed to connect")
		})
	})
}

func TestSetupLogging(t *testing.T) {
	Convey("Given verbose and quiet modes", t, func() {
		So(SetupLogging(true), ShouldBeNil)
		So(SetupLogging(false), ShouldBeNil)
	})
}
