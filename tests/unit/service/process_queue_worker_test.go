package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docpipe/internal/domain"
	"docpipe/internal/service"
	"docpipe/mocks"
)

// stubJobService records RunClaimed dispatches; everything else is unused by
// the worker.
type stubJobService struct {
	mu  sync.Mutex
	ran []uuid.UUID
}

func (s *stubJobService) CreateJob(ctx context.Context, input *service.CreateJobInput) (*domain.ProcessingJob, error) {
	return nil, nil
}

func (s *stubJobService) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ProcessingJob, error) {
	return nil, nil
}

func (s *stubJobService) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ProcessingJob, int, error) {
	return nil, 0, nil
}

func (s *stubJobService) ProcessJob(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ProcessingJob, error) {
	return nil, nil
}

func (s *stubJobService) RunClaimed(ctx context.Context, job *domain.ProcessingJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ran = append(s.ran, job.ID)
}

func (s *stubJobService) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	return nil
}

func (s *stubJobService) ranJobs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.ran...)
}

func TestProcessQueueWorker_DispatchesClaimedJobs(t *testing.T) {
	repo := new(mocks.MockJobRepo)
	stub := &stubJobService{}
	worker := service.NewProcessQueueWorker(repo, stub, service.ProcessQueueConfig{
		PollInterval: 10 * time.Millisecond,
		Concurrency:  2,
	})

	jobA := domain.ProcessingJob{ID: uuid.New(), State: domain.JobStateProcessing}
	jobB := domain.ProcessingJob{ID: uuid.New(), State: domain.JobStateProcessing}
	repo.On("ClaimQueued", mock.Anything, 2).Return([]domain.ProcessingJob{jobA, jobB}, nil).Once()
	repo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).Return([]domain.ProcessingJob{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return len(stub.ranJobs()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down after cancel")
	}

	assert.ElementsMatch(t, []uuid.UUID{jobA.ID, jobB.ID}, stub.ranJobs())
}

func TestProcessQueueWorker_StopsOnCancelWithoutClaims(t *testing.T) {
	repo := new(mocks.MockJobRepo)
	repo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).Return([]domain.ProcessingJob{}, nil)

	worker := service.NewProcessQueueWorker(repo, &stubJobService{}, service.ProcessQueueConfig{
		PollInterval: 5 * time.Millisecond,
		Concurrency:  1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not shut down after cancel")
	}
}
