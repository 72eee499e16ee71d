package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/firmsite/site-api/internal/services/cms"
)

// MockCollectionSource is a mock implementation of CollectionSource
type MockCollectionSource struct {
	mock.Mock
}

func (m *MockCollectionSource) ListServices(ctx context.Context) ([]cms.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cms.Service), args.Error(1)
}

func (m *MockCollectionSource) ListTeamMembers(ctx context.Context) ([]cms.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cms.TeamMember), args.Error(1)
}

func TestFetcher_Fetch(t *testing.T) {
	source := new(MockCollectionSource)
	source.On("ListServices", mock.Anything).Return([]cms.Service{{ID: 1, Title: "Law Consulting"}}, nil)
	source.On("ListTeamMembers", mock.Anything).Return([]cms.TeamMember{{ID: 2, Name: "Law Smith"}}, nil)

	cols, err := NewFetcher(source, time.Second).Fetch(context.Background())
	require.NoError(t, err)

	assert.Len(t, cols.Services, 1)
	assert.Len(t, cols.Team, 1)
	source.AssertExpectations(t)
}

func TestFetcher_EmptyCollectionsAreNotNil(t *testing.T) {
	source := new(MockCollectionSource)
	source.On("ListServices", mock.Anything).Return(nil, nil)
	source.On("ListTeamMembers", mock.Anything).Return(nil, nil)

	cols, err := NewFetcher(source, 0).Fetch(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cols.Services)
	assert.NotNil(t, cols.Team)
}

func TestFetcher_FailFast(t *testing.T) {
	tests := []struct {
		name        string
		servicesErr error
		teamErr     error
	}{
		{name: "services fail", servicesErr: errors.New("services down")},
		{name: "team fails", teamErr: errors.New("team down")},
		{name: "both fail", servicesErr: errors.New("a"), teamErr: errors.New("b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(MockCollectionSource)
			if tt.servicesErr != nil {
				source.On("ListServices", mock.Anything).Return(nil, tt.servicesErr)
			} else {
				source.On("ListServices", mock.Anything).Return([]cms.Service{{ID: 1}}, nil)
			}
			if tt.teamErr != nil {
				source.On("ListTeamMembers", mock.Anything).Return(nil, tt.teamErr)
			} else {
				source.On("ListTeamMembers", mock.Anything).Return([]cms.TeamMember{{ID: 2}}, nil)
			}

			cols, err := NewFetcher(source, time.Second).Fetch(context.Background())
			assert.Nil(t, cols, "no partial result may be published")
			assert.ErrorIs(t, err, ErrFetchFailed)
		})
	}
}

// blockingSource blocks team members until its context ends
type blockingSource struct {
	servicesErr error
}

func (b *blockingSource) ListServices(ctx context.Context) ([]cms.Service, error) {
	return nil, b.servicesErr
}

func (b *blockingSource) ListTeamMembers(ctx context.Context) ([]cms.TeamMember, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestFetcher_FailureCancelsSibling(t *testing.T) {
	source := &blockingSource{servicesErr: errors.New("services down")}

	done := make(chan error, 1)
	go func() {
		_, err := NewFetcher(source, 0).Fetch(context.Background())
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrFetchFailed)
	case <-time.After(2 * time.Second):
		t.Fatal("sibling fetch was not cancelled")
	}
}

func TestFetcher_Timeout(t *testing.T) {
	source := &blockingSource{}

	_, err := NewFetcher(source, 20*time.Millisecond).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
