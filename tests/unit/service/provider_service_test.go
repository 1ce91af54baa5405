package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docpipe/internal/domain"
	"docpipe/internal/llm"
	"docpipe/internal/service"
	"docpipe/mocks"
)

func TestProviderCreate_PopulatesRecord(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	svc := service.NewProviderService(repo, new(mocks.MockCompleter))
	tenantID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Provider) bool {
		return p.TenantID == tenantID && p.Kind == domain.ProviderKindLLM &&
			p.Type == domain.ProviderGroq && p.ID != uuid.Nil
	})).Return(nil)

	p, err := svc.Create(context.Background(), &service.CreateProviderInput{
		TenantID:    tenantID,
		Name:        "groq main",
		Kind:        domain.ProviderKindLLM,
		Type:        domain.ProviderGroq,
		APIKey:      "gsk_secret_key_1234",
		Endpoint:    "https://api.groq.com/openai/v1/chat/completions",
		Model:       "llama-3.3-70b-versatile",
		MaxTokens:   4096,
		Temperature: 0.2,
		IsActive:    true,
		IsDefault:   true,
	})

	require.NoError(t, err)
	assert.Equal(t, "groq main", p.Name)
	assert.True(t, p.IsDefault)
	repo.AssertExpectations(t)
}

func TestProviderUpdate_EmptyAPIKeyKeepsStoredKey(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	svc := service.NewProviderService(repo, new(mocks.MockCompleter))
	tenantID := uuid.New()

	existing := &domain.Provider{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "old name",
		Kind:     domain.ProviderKindLLM,
		Type:     domain.ProviderOpenAI,
		APIKey:   "sk-stored-key",
		IsActive: true,
	}
	repo.On("GetByID", mock.Anything, tenantID, existing.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	p, err := svc.Update(context.Background(), &service.UpdateProviderInput{
		TenantID:   tenantID,
		ProviderID: existing.ID,
		Name:       "new name",
		APIKey:     "",
		IsActive:   true,
	})

	require.NoError(t, err)
	assert.Equal(t, "new name", p.Name)
	assert.Equal(t, "sk-stored-key", p.APIKey)
}

func TestProviderUpdate_NewAPIKeyReplacesStoredKey(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	svc := service.NewProviderService(repo, new(mocks.MockCompleter))
	tenantID := uuid.New()

	existing := &domain.Provider{
		ID:       uuid.New(),
		TenantID: tenantID,
		Kind:     domain.ProviderKindLLM,
		Type:     domain.ProviderOpenAI,
		APIKey:   "sk-stored-key",
	}
	repo.On("GetByID", mock.Anything, tenantID, existing.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	p, err := svc.Update(context.Background(), &service.UpdateProviderInput{
		TenantID:   tenantID,
		ProviderID: existing.ID,
		APIKey:     "sk-rotated-key",
	})

	require.NoError(t, err)
	assert.Equal(t, "sk-rotated-key", p.APIKey)
}

func TestTestConnection_RejectsOCRProvider(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	completer := new(mocks.MockCompleter)
	svc := service.NewProviderService(repo, completer)
	tenantID := uuid.New()

	p := &domain.Provider{
		ID:       uuid.New(),
		TenantID: tenantID,
		Kind:     domain.ProviderKindOCR,
		Type:     domain.ProviderOCRSpace,
	}
	repo.On("GetByID", mock.Anything, tenantID, p.ID).Return(p, nil)

	_, err := svc.TestConnection(context.Background(), tenantID, p.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm providers only")
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTestConnection_ReturnsModelReply(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	completer := new(mocks.MockCompleter)
	svc := service.NewProviderService(repo, completer)
	tenantID := uuid.New()

	p := &domain.Provider{
		ID:       uuid.New(),
		TenantID: tenantID,
		Kind:     domain.ProviderKindLLM,
		Type:     domain.ProviderAnthropic,
		IsActive: true,
	}
	repo.On("GetByID", mock.Anything, tenantID, p.ID).Return(p, nil)
	completer.On("Complete", mock.Anything, p, mock.AnythingOfType("string"), llm.Options{}).
		Return(&llm.Result{Content: "Connection confirmed."}, nil)

	reply, err := svc.TestConnection(context.Background(), tenantID, p.ID)

	require.NoError(t, err)
	assert.Equal(t, "Connection confirmed.", reply)
}
