package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrCorruptIndex", ErrCorruptIndex},
		{"ErrInvalidCorpus", ErrInvalidCorpus},
		{"ErrSourceNotFound", ErrSourceNotFound},
		{"ErrExtraction", ErrExtraction},
		{"ErrExtractorUnavailable", ErrExtractorUnavailable},
		{"ErrUnsupportedType", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrCorruptIndex, ErrInvalidCorpus))
	assert.False(t, errors.Is(ErrExtraction, ErrExtractorUnavailable))
	assert.False(t, errors.Is(ErrNotFound, ErrSourceNotFound))
}

func TestStageError(t *testing.T) {
	cause := fmt.Errorf("decode header: %w", ErrCorruptIndex)
	err := NewStageError(StageLoad, cause)

	require.Error(t, err)
	assert.Equal(t, "load stage: decode header: corrupt index", err.Error())
	assert.ErrorIs(t, err, ErrCorruptIndex)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageLoad, stageErr.Stage)
}

func TestNewStageError_Nil(t *testing.T) {
	assert.NoError(t, NewStageError(StageFit, nil))
}
