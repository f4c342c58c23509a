package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/ShawnKyzer/docsearch"
	main "github.com/ShawnKyzer/docsearch/cmd/docsearch"
	"github.com/ShawnKyzer/docsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints totals and bucket counts", func(t *testing.T) {
		t.Parallel()

		index := &mock.Index{
			OverviewFn: func(_ context.Context) (*docsearch.Overview, error) {
				return &docsearch.Overview{
					TotalDocuments: 42,
					Sections: []docsearch.SectionCount{
						{Value: "user-guide", Count: 30},
						{Value: "additional", Count: 12},
					},
					Subsections: []docsearch.SectionCount{
						{Value: "concepts", Count: 18},
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Index:  index,
		}

		cmd := &main.SectionsCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "42 documents")
		assert.Contains(t, output, "user-guide")
		assert.Contains(t, output, "30")
		assert.Contains(t, output, "additional")
		assert.Contains(t, output, "concepts")
	})

	t.Run("suggests crawling when the index is empty", func(t *testing.T) {
		t.Parallel()

		index := &mock.Index{
			OverviewFn: func(_ context.Context) (*docsearch.Overview, error) {
				return &docsearch.Overview{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Index:  index,
		}

		cmd := &main.SectionsCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "docsearch crawl")
	})

	t.Run("returns error when overview fails", func(t *testing.T) {
		t.Parallel()

		index := &mock.Index{
			OverviewFn: func(_ context.Context) (*docsearch.Overview, error) {
				return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "engine down")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Index:  index,
		}

		cmd := &main.SectionsCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "engine down")
	})
}
