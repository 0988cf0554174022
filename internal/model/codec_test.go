package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconRoundTrip(t *testing.T) {
	cases := []Icon{
		{Format: IconFormatEmoji, Emoji: "📄"},
		{Format: IconFormatFile, File: "bafy123"},
		{Format: IconFormatIcon, Name: "star", Color: ColorYellow},
	}
	for _, want := range cases {
		b, err := json.Marshal(want)
		require.NoError(t, err)
		var got Icon
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, want, got)
	}
}

func TestIconUnknownVariantRejected(t *testing.T) {
	var got Icon
	err := json.Unmarshal([]byte(`{"format":"gradient","name":"x"}`), &got)
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, DecodeErrorUnknownVariant, decodeErr.Kind)
}

func TestIconOptionalFieldsOmittedNotNull(t *testing.T) {
	b, err := json.Marshal(Icon{Format: IconFormatEmoji, Emoji: "🔥"})
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	_, hasFile := raw["file"]
	_, hasName := raw["name"]
	_, hasColor := raw["color"]
	assert.False(t, hasFile)
	assert.False(t, hasName)
	assert.False(t, hasColor)
}

func TestPropertyValueRoundTrip(t *testing.T) {
	cases := []PropertyValue{
		{Key: "title", Format: PropertyFormatText, Text: "hello"},
		{Key: "score", Format: PropertyFormatNumber, Number: 3.5},
		{Key: "status", Format: PropertyFormatSelect, Select: "tag1"},
		{Key: "labels", Format: PropertyFormatMultiSelect, MultiSelect: []string{"tag1", "tag2"}},
		{Key: "due", Format: PropertyFormatDate, Date: "2026-08-03"},
		{Key: "attachments", Format: PropertyFormatFiles, Files: []string{"obj1"}},
		{Key: "done", Format: PropertyFormatCheckbox, Checkbox: true},
		{Key: "site", Format: PropertyFormatURL, URL: "https://example.com"},
		{Key: "contact", Format: PropertyFormatEmail, Email: "a@b.com"},
		{Key: "phone", Format: PropertyFormatPhone, Phone: "+1-555"},
		{Key: "related", Format: PropertyFormatObjects, Objects: []string{"obj2"}},
	}
	for _, want := range cases {
		b, err := json.Marshal(want)
		require.NoError(t, err)
		var got PropertyValue
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, want, got)
	}
}

func TestPropertyValueUnknownVariantRejected(t *testing.T) {
	var got PropertyValue
	err := json.Unmarshal([]byte(`{"key":"x","format":"rich_text","rich_text":"y"}`), &got)
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, DecodeErrorUnknownVariant, decodeErr.Kind)
}

func TestObjectDisplayNameFallback(t *testing.T) {
	name := "Spec"
	snippet := "some preview text"
	assert.Equal(t, "Spec", Object{ID: "O1", Name: &name, Snippet: &snippet}.DisplayName())
	assert.Equal(t, "some preview text", Object{ID: "O1", Snippet: &snippet}.DisplayName())
	assert.Equal(t, "O1", Object{ID: "O1"}.DisplayName())
}

func TestPaginationValidate(t *testing.T) {
	total := 10
	ok := Pagination{Offset: 0, Limit: 5, Total: &total, HasMore: true}
	assert.NoError(t, ok.Validate(5))

	badHasMore := Pagination{Offset: 5, Limit: 5, Total: &total, HasMore: true}
	assert.Error(t, badHasMore.Validate(5))

	negOffset := Pagination{Offset: -1, Limit: 5}
	assert.Error(t, negOffset.Validate(0))

	zeroLimit := Pagination{Offset: 0, Limit: 0}
	assert.Error(t, zeroLimit.Validate(0))

	exceedsTotal := Pagination{Offset: 8, Limit: 5, Total: &total, HasMore: false}
	assert.Error(t, exceedsTotal.Validate(5))
}

func TestEntityRoundTrip(t *testing.T) {
	desc := "a space"
	sp := Space{ID: "SP1", Name: "Work", Description: &desc}
	b, err := json.Marshal(sp)
	require.NoError(t, err)
	var got Space
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, sp, got)
}

func TestUnknownFieldsIgnored(t *testing.T) {
	var sp Space
	err := json.Unmarshal([]byte(`{"id":"SP1","name":"Work","gateway_url":"http://x","network_id":"n1"}`), &sp)
	require.NoError(t, err)
	assert.Equal(t, "SP1", sp.ID)
	assert.Equal(t, "Work", sp.Name)
}
