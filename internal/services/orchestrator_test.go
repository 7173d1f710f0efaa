package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramos/internal/domain"
)

type fakeResolver struct {
	ref domain.RepoRef
	err error
}

func (f fakeResolver) Resolve() (domain.RepoRef, error) {
	return f.ref, f.err
}

func TestOrchestratorLoad(t *testing.T) {
	source := &fakeSource{
		branches:      namedBranches("b1"),
		defaultBranch: strPtr("main"),
		metadata:      map[string]domain.BranchMetadata{},
	}
	svc, _ := newTestService(t, source)
	orchestrator := NewOrchestrator(svc)

	result, err := orchestrator.Load(context.Background(),
		PageView{Tree: true, Root: true},
		fakeResolver{ref: testRef})
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, testRef, result.Ref)
	require.Len(t, result.Data.Branches, 1)
}

func TestOrchestratorSkipsRejectedViews(t *testing.T) {
	tests := []struct {
		name string
		view PageView
	}{
		{name: "not a tree", view: PageView{Root: true}},
		{name: "not at root", view: PageView{Tree: true}},
		{name: "not found page", view: PageView{Tree: true, Root: true, NotFound: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{}
			svc, _ := newTestService(t, source)
			orchestrator := NewOrchestrator(svc)

			result, err := orchestrator.Load(context.Background(), tt.view, fakeResolver{ref: testRef})
			require.NoError(t, err)

			assert.True(t, result.Skipped)
			assert.Equal(t, 0, source.listCalls, "a skipped load must not fetch")
		})
	}
}

func TestOrchestratorResolverErrorAborts(t *testing.T) {
	source := &fakeSource{}
	svc, _ := newTestService(t, source)
	orchestrator := NewOrchestrator(svc)

	_, err := orchestrator.Load(context.Background(),
		PageView{Tree: true, Root: true},
		fakeResolver{err: errors.New("no origin remote")})

	assert.ErrorContains(t, err, "no origin remote")
	assert.Equal(t, 0, source.listCalls)
}
