package jsonapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mpjsonapi/jsonapi"
	"github.com/dmitrymomot/mpjsonapi/pkg/validator"
)

func TestValidateDocument(t *testing.T) {
	t.Parallel()

	widget := func(id string) *jsonapi.Document {
		return jsonapi.NewDocument(&jsonapi.Resource{Type: "widgets", ID: id, Attributes: map[string]any{"name": "a"}})
	}

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, jsonapi.ValidateDocument(widget(""), "widgets", ""))
	})

	t.Run("update", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, jsonapi.ValidateDocument(widget("42"), "widgets", "42"))
	})

	t.Run("missing data", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, jsonapi.ValidateDocument(nil, "widgets", ""), jsonapi.ErrMissingData)
		assert.ErrorIs(t, jsonapi.ValidateDocument(&jsonapi.Document{}, "widgets", ""), jsonapi.ErrMissingData)
	})

	t.Run("missing type and id", func(t *testing.T) {
		t.Parallel()

		err := jsonapi.ValidateDocument(jsonapi.NewDocument(&jsonapi.Resource{}), "widgets", "42")
		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)
		assert.Equal(t, []string{jsonapi.PointerType, jsonapi.PointerID}, verrs.Fields())
	})

	t.Run("type mismatch", func(t *testing.T) {
		t.Parallel()

		doc := jsonapi.NewDocument(&jsonapi.Resource{Type: "gadgets"})
		assert.ErrorIs(t, jsonapi.ValidateDocument(doc, "widgets", ""), jsonapi.ErrResourceTypeMismatch)
	})

	t.Run("id mismatch", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, jsonapi.ValidateDocument(widget("7"), "widgets", "42"), jsonapi.ErrResourceIDMismatch)
	})

	t.Run("attribute pointer", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "/data/attributes/fileUrl", jsonapi.AttributePointer("fileUrl"))
	})
}
