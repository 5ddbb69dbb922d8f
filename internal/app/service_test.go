package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/internal/domain/compat"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// newGithubStub serves minimal user, repo, commit, language and search
// responses so lookups resolve without the real API.
func newGithubStub() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"public_repos": 40, "followers": 30})
	})
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	})
	mux.HandleFunc("/repos/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/commits"):
			_ = json.NewEncoder(w).Encode([]map[string]string{{"sha": "a"}, {"sha": "b"}, {"sha": "c"}})
		case strings.HasSuffix(r.URL.Path, "/languages"):
			_ = json.NewEncoder(w).Encode(map[string]int{"Go": 1000})
		default:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"fork":       false,
				"created_at": "2026-01-10T00:00:00Z",
				"pushed_at":  "2026-02-01T00:00:00Z",
			})
		}
	})
	return httptest.NewServer(mux)
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithConcurrency(4),
			service.WithMaxResultsCap(10),
			service.WithMixWeights(0.7, 0.3),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				So(svc.GetStats()["started"], ShouldBeTrue)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})
	})

	Convey("Given a service with weights that do not sum to one", t, func() {
		svc := service.New(service.WithWeights(compat.Weights{Complementary: 0.9}))

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then startup should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestService_Match(t *testing.T) {
	Convey("Given a started service backed by a stub API", t, func() {
		stub := newGithubStub()
		defer stub.Close()

		svc := service.New(
			service.WithGithubBaseURL(stub.URL),
			service.WithMaxResultsCap(2),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		subject := model.BuilderProfile{UserID: "alice", Skills: []string{"react", "figma"}}
		pool := []model.BuilderProfile{
			{UserID: "bob", Skills: []string{"golang", "postgres"}, GithubURL: "https://github.com/bob"},
			{UserID: "carol", Skills: []string{"react", "figma"}},
			{UserID: "dave", Skills: []string{"solidity"}},
		}

		Convey("When ranking the pool", func() {
			matches := svc.Match(context.Background(), subject, pool, 10)

			Convey("Then the limit should be capped", func() {
				So(matches, ShouldHaveLength, 2)
			})

			Convey("And scores should be ordered best first", func() {
				So(matches[0].FinalScore, ShouldBeGreaterThanOrEqualTo, matches[1].FinalScore)
			})
		})

		Convey("When the pool is empty", func() {
			matches := svc.Match(context.Background(), subject, nil, 5)

			Convey("Then the result should be an empty slice", func() {
				So(matches, ShouldNotBeNil)
				So(matches, ShouldBeEmpty)
			})
		})
	})
}

func TestService_CheckPlagiarism(t *testing.T) {
	Convey("Given a started service backed by a stub API", t, func() {
		stub := newGithubStub()
		defer stub.Close()

		svc := service.New(service.WithGithubBaseURL(stub.URL))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When checking an original submission", func() {
			verdict := svc.CheckPlagiarism(context.Background(),
				"proj-1", "A decentralized voting platform built on zero knowledge proofs",
				"https://github.com/alice/zkvote", nil)

			Convey("Then the verdict should be original", func() {
				So(verdict.IsPlagiarized, ShouldBeFalse)
				So(verdict.Report.Recommendation, ShouldEqual, "Appears original")
			})

			Convey("And the submission should be recorded for later checks", func() {
				So(svc.GetStats()["knownProjects"], ShouldEqual, 1)
			})
		})

		Convey("When a later submission copies a recorded description", func() {
			desc := "A decentralized voting platform built on zero knowledge proofs"
			_ = svc.CheckPlagiarism(context.Background(), "proj-1", desc, "https://github.com/alice/zkvote", nil)

			verdict := svc.CheckPlagiarism(context.Background(), "proj-2", desc,
				"https://github.com/mallory/zkvote", []string{"proj-1"})

			Convey("Then the prior match should be reported", func() {
				So(verdict.Matches, ShouldHaveLength, 1)
				So(verdict.Matches[0].ProjectID, ShouldEqual, "proj-1")
				So(verdict.Matches[0].Similarity, ShouldEqual, 100)
				So(verdict.IsPlagiarized, ShouldBeTrue)
			})
		})

		Convey("When comparing against an unknown project id", func() {
			verdict := svc.CheckPlagiarism(context.Background(), "proj-3",
				"An on-chain reputation oracle", "https://github.com/alice/oracle",
				[]string{"never-seen"})

			Convey("Then the unknown id should contribute nothing", func() {
				So(verdict.Matches, ShouldBeEmpty)
			})
		})
	})
}
