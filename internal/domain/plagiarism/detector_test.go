package plagiarism_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/plagiarism"
	"github.com/okian/matchday/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type stubMetadata struct {
	meta model.RepoMetadata
	err  error
}

func (s *stubMetadata) RepoMetadata(ctx context.Context, repoRef string) (model.RepoMetadata, error) {
	return s.meta, s.err
}

type stubSearch struct {
	results []plagiarism.SearchResult
	err     error
	queries []string
}

func (s *stubSearch) SearchRepos(ctx context.Context, query string) ([]plagiarism.SearchResult, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}

type stubStore struct {
	descriptions map[string]string
}

func (s *stubStore) Description(ctx context.Context, projectID string) (string, error) {
	d, ok := s.descriptions[projectID]
	if !ok {
		return "", errors.New("unknown project")
	}
	return d, nil
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	description := "A decentralized NFT marketplace on Arbitrum"

	Convey("Given a forked repository with a single commit", t, func() {
		detector := plagiarism.NewDetector(
			plagiarism.WithMetadataSource(&stubMetadata{meta: model.RepoMetadata{
				IsFork:      true,
				ParentRepo:  "acme/nft-market",
				CommitCount: 1,
			}}),
		)

		Convey("When the submission is checked", func() {
			verdict := detector.Check(ctx, description, "github.com/someone/copy", nil)

			Convey("Then a high fork flag and a medium low-commits flag are raised", func() {
				So(verdict.Report.Flags, ShouldHaveLength, 2)
				So(verdict.Report.Flags[0].Kind, ShouldEqual, "fork")
				So(verdict.Report.Flags[0].Severity, ShouldEqual, types.SeverityHigh)
				So(verdict.Report.Flags[0].Message, ShouldContainSubstring, "acme/nft-market")
				So(verdict.Report.Flags[1].Kind, ShouldEqual, "low_commits")
				So(verdict.Report.Flags[1].Severity, ShouldEqual, types.SeverityMedium)
			})

			Convey("And the verdict is plagiarized with confidence of at least 20", func() {
				So(verdict.Confidence, ShouldBeGreaterThanOrEqualTo, 20)
				So(verdict.IsPlagiarized, ShouldBeTrue)
			})
		})
	})

	Convey("Given an unreachable repository", t, func() {
		detector := plagiarism.NewDetector(
			plagiarism.WithMetadataSource(&stubMetadata{err: errors.New("cannot access repository")}),
		)

		Convey("When the submission is checked", func() {
			verdict := detector.Check(ctx, description, "github.com/missing/repo", nil)

			Convey("Then the error is recorded in the report, not raised", func() {
				So(verdict.Report.RepoCheckError, ShouldEqual, "cannot access repository")
				So(verdict.Report.RepoCheck, ShouldBeNil)
				So(verdict.Report.Flags, ShouldBeEmpty)
				So(verdict.IsPlagiarized, ShouldBeFalse)
				So(verdict.Confidence, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a clean repository and a near-identical public project", t, func() {
		search := &stubSearch{results: []plagiarism.SearchResult{
			{
				Name:        "acme/nft-market",
				Description: "A decentralized NFT marketplace on Arbitrum",
				URL:         "https://github.com/acme/nft-market",
				Stars:       900,
			},
			{
				Name:        "other/tool",
				Description: "A command line time tracker",
				URL:         "https://github.com/other/tool",
			},
		}}
		detector := plagiarism.NewDetector(
			plagiarism.WithMetadataSource(&stubMetadata{meta: model.RepoMetadata{CommitCount: 42}}),
			plagiarism.WithSearchSource(search),
		)

		Convey("When the submission is checked", func() {
			verdict := detector.Check(ctx, description, "github.com/me/original", nil)

			Convey("Then the search query holds the first normalized tokens", func() {
				So(search.queries, ShouldHaveLength, 1)
				So(search.queries[0], ShouldEqual, "a decentralized nft marketplace on arbitrum")
			})

			Convey("And only the close match is recorded as public_repo", func() {
				So(verdict.Matches, ShouldHaveLength, 1)
				So(verdict.Matches[0].Type, ShouldEqual, types.MatchPublicRepo)
				So(verdict.Matches[0].Name, ShouldEqual, "acme/nft-market")
				So(verdict.Matches[0].URL, ShouldEqual, "https://github.com/acme/nft-market")
				So(verdict.Matches[0].Similarity, ShouldEqual, 100)
			})

			Convey("And a 100% match with no flags is plagiarized with manual review", func() {
				So(verdict.Confidence, ShouldEqual, 100)
				So(verdict.IsPlagiarized, ShouldBeTrue)
				So(verdict.Report.Recommendation, ShouldEqual, "Manual review required")
				So(verdict.Report.SimilarProjects, ShouldEqual, 2)
			})
		})
	})

	Convey("Given prior projects to compare against", t, func() {
		store := &stubStore{descriptions: map[string]string{
			"p1": "A decentralized NFT marketplace on Arbitrum",
			"p2": "A recipe sharing app",
		}}
		detector := plagiarism.NewDetector(
			plagiarism.WithMetadataSource(&stubMetadata{meta: model.RepoMetadata{CommitCount: 10}}),
			plagiarism.WithDescriptionStore(store),
		)

		Convey("When the submission matches a stored description", func() {
			verdict := detector.Check(ctx, description, "github.com/me/original", []string{"p1", "p2", "p-missing"})

			Convey("Then only matches above 80% are recorded as description matches", func() {
				So(verdict.Matches, ShouldHaveLength, 1)
				So(verdict.Matches[0].ProjectID, ShouldEqual, "p1")
				So(verdict.Matches[0].Type, ShouldEqual, types.MatchDescription)
			})
		})
	})

	Convey("Given confidence and flag combinations", t, func() {
		Convey("When confidence is high without any high flag", func() {
			search := &stubSearch{results: []plagiarism.SearchResult{{
				Name:        "x/y",
				Description: description,
				URL:         "https://github.com/x/y",
			}}}
			detector := plagiarism.NewDetector(
				plagiarism.WithMetadataSource(&stubMetadata{meta: model.RepoMetadata{CommitCount: 10}}),
				plagiarism.WithSearchSource(search),
			)
			verdict := detector.Check(ctx, description, "ref", nil)

			Convey("Then the confidence disjunct alone triggers the verdict", func() {
				So(verdict.Confidence, ShouldBeGreaterThan, 75)
				So(verdict.Report.Flags, ShouldBeEmpty)
				So(verdict.IsPlagiarized, ShouldBeTrue)
			})
		})

		Convey("When a single high flag exists at low confidence", func() {
			detector := plagiarism.NewDetector(
				plagiarism.WithMetadataSource(&stubMetadata{meta: model.RepoMetadata{
					IsFork:      true,
					ParentRepo:  "a/b",
					CommitCount: 50,
				}}),
			)
			verdict := detector.Check(ctx, description, "ref", nil)

			Convey("Then the flag disjunct alone triggers the verdict", func() {
				So(verdict.Confidence, ShouldEqual, 20)
				So(verdict.IsPlagiarized, ShouldBeTrue)
			})
		})

		Convey("When confidence is 100 with extra high flags", func() {
			search := &stubSearch{results: []plagiarism.SearchResult{{
				Name:        "x/y",
				Description: description,
				URL:         "https://github.com/x/y",
			}}}
			detector := plagiarism.NewDetector(
				plagiarism.WithMetadataSource(&stubMetadata{meta: model.RepoMetadata{
					IsFork:      true,
					ParentRepo:  "a/b",
					CommitCount: 0,
				}}),
				plagiarism.WithSearchSource(search),
			)
			verdict := detector.Check(ctx, description, "ref", nil)

			Convey("Then confidence is clamped to 100", func() {
				So(verdict.Confidence, ShouldEqual, 100)
			})
		})
	})

	Convey("Given identical inputs and identical lookup responses", t, func() {
		build := func() model.PlagiarismVerdict {
			detector := plagiarism.NewDetector(
				plagiarism.WithMetadataSource(&stubMetadata{meta: model.RepoMetadata{
					IsFork:      true,
					ParentRepo:  "a/b",
					CommitCount: 1,
				}}),
				plagiarism.WithSearchSource(&stubSearch{results: []plagiarism.SearchResult{{
					Name:        "x/y",
					Description: "A decentralized marketplace",
					URL:         "https://github.com/x/y",
				}}}),
			)
			return detector.Check(ctx, description, "ref", nil)
		}

		Convey("When the check runs twice", func() {
			Convey("Then the verdicts are identical", func() {
				So(build(), ShouldResemble, build())
			})
		})
	})
}
