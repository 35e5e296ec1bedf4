package binder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mpjsonapi/binder"
)

func TestExtractParts(t *testing.T) {
	t.Parallel()

	entity := &binder.Part{Name: binder.PartEntity, Body: []byte("{}")}
	file := &binder.Part{Name: binder.PartFile, Body: []byte{0x00}}
	extra := &binder.Part{Name: "thumbnail", Body: []byte{0x01}}

	t.Run("both parts present, extras ignored", func(t *testing.T) {
		t.Parallel()

		set, err := binder.ExtractParts([]*binder.Part{extra, file, entity})
		require.NoError(t, err)
		assert.Len(t, set, 2)
		assert.Same(t, entity, set.Entity())
		assert.Same(t, file, set.File())
	})

	tests := []struct {
		name    string
		parts   []*binder.Part
		missing string
	}{
		{name: "no parts", parts: nil, missing: binder.PartEntity},
		{name: "file only", parts: []*binder.Part{file}, missing: binder.PartEntity},
		{name: "entity only", parts: []*binder.Part{entity, extra}, missing: binder.PartFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			set, err := binder.ExtractParts(tt.parts)
			assert.Nil(t, set)
			assert.ErrorIs(t, err, binder.ErrMissingRequiredPart)

			var missingErr *binder.MissingRequiredPartError
			require.True(t, errors.As(err, &missingErr))
			assert.Equal(t, tt.missing, missingErr.Name)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}

	t.Run("bodies are not inspected", func(t *testing.T) {
		t.Parallel()

		set, err := binder.ExtractParts([]*binder.Part{
			{Name: binder.PartEntity, Body: []byte("not json")},
			{Name: binder.PartFile},
		})
		require.NoError(t, err)
		assert.Equal(t, "not json", string(set.Entity().Body))
	})
}
