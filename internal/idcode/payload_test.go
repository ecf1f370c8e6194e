package idcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
	}{
		{
			name: "v1 student and question",
			payload: Payload{
				Version:    1,
				StudentRef: "stu-42",
				QuestionID: "q-7",
			},
		},
		{
			name: "v2 student only",
			payload: Payload{
				Version:    2,
				Type:       TypeStudent,
				StudentRef: "stu-42",
			},
		},
		{
			name: "v3 student and page",
			payload: Payload{
				Version:    3,
				Type:       TypeStudentPage,
				StudentRef: "stu-42",
				Page:       2,
				TotalPages: 4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Encode(tt.payload)
			require.NoError(t, err)

			decoded, err := ParsePayload(text)
			require.NoError(t, err)
			assert.Equal(t, tt.payload, decoded)
		})
	}
}

func TestParsePayloadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "not JSON", text: "hello world"},
		{name: "unrecognized version", text: `{"v":9,"s":"stu-1"}`},
		{name: "v1 missing question", text: `{"v":1,"s":"stu-1"}`},
		{name: "v2 wrong type", text: `{"v":2,"type":"teacher","s":"stu-1"}`},
		{name: "v2 missing student", text: `{"v":2,"type":"student"}`},
		{name: "v3 missing page", text: `{"v":3,"type":"student-page","s":"stu-1"}`},
		{name: "empty object", text: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePayload(tt.text)
			assert.ErrorIs(t, err, ErrCodeNotFound)
		})
	}
}

func TestEncodeRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
	}{
		{name: "unsupported version", payload: Payload{Version: 4, StudentRef: "s"}},
		{name: "v1 without question", payload: Payload{Version: 1, StudentRef: "s"}},
		{name: "v2 without student", payload: Payload{Version: 2}},
		{name: "v3 without page", payload: Payload{Version: 3, StudentRef: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.payload)
			assert.Error(t, err)
		})
	}
}
