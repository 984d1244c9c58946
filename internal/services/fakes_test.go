package services

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"tralli/internal/models/db_models"
	"tralli/internal/repositories"
)

// fakeEmbedder returns a fixed vector for every input, or a configured error.
type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) GetEmbedding(_ context.Context, _ string) (pgvector.Vector, error) {
	f.calls++
	if f.err != nil {
		return pgvector.Vector{}, f.err
	}
	return pgvector.NewVector([]float32{0.1, 0.2, 0.3}), nil
}

func (f *fakeEmbedder) GetEmbeddings(_ context.Context, texts []string) ([]pgvector.Vector, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]pgvector.Vector, len(texts))
	for i := range texts {
		out[i] = pgvector.NewVector([]float32{float32(i)})
	}
	return out, nil
}

// fakeVectorRepo serves canned matches and records what it was asked.
type fakeVectorRepo struct {
	matches []repositories.VectorMatch
	err     error

	lastNamespace string
	lastTopK      int

	replacedNamespace string
	replacedRows      []db_models.TravelVector
	upsertedRows      []db_models.TravelVector
}

func (f *fakeVectorRepo) Query(_ context.Context, _ pgvector.Vector, topK int, namespace string) ([]repositories.VectorMatch, error) {
	f.lastNamespace = namespace
	f.lastTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	if len(f.matches) > topK {
		return f.matches[:topK], nil
	}
	return f.matches, nil
}

func (f *fakeVectorRepo) Upsert(_ context.Context, rows []db_models.TravelVector) error {
	if f.err != nil {
		return f.err
	}
	f.upsertedRows = append(f.upsertedRows, rows...)
	return nil
}

func (f *fakeVectorRepo) ReplaceNamespace(_ context.Context, namespace string, rows []db_models.TravelVector) error {
	if f.err != nil {
		return f.err
	}
	f.replacedNamespace = namespace
	f.replacedRows = rows
	return nil
}

// fakeGen replies with a fixed string and keeps the prompts it saw.
type fakeGen struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGen) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
