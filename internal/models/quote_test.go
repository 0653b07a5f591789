package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawFormInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want RawFormInput
	}{
		{
			name: "strings",
			body: `{"nombre":"Ana Pérez","mesas":"10","barra":"4","horaInicio":"19:00"}`,
			want: RawFormInput{Nombre: "Ana Pérez", Mesas: "10", Barra: "4", HoraInicio: "19:00"},
		},
		{
			name: "numbers keep their text",
			body: `{"mesas":10,"invitados":150.5,"barra":4}`,
			want: RawFormInput{Mesas: "10", Invitados: "150.5", Barra: "4"},
		},
		{
			name: "booleans",
			body: `{"barra":true}`,
			want: RawFormInput{Barra: "true"},
		},
		{
			name: "null objects and arrays read as empty",
			body: `{"nombre":null,"mesas":{"n":1},"invitados":[150]}`,
			want: RawFormInput{},
		},
		{
			name: "unknown keys ignored",
			body: `{"lugar":"Salón X","extra":1}`,
			want: RawFormInput{Lugar: "Salón X"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RawFormInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRawFormInput_UnmarshalJSON_NotAnObject(t *testing.T) {
	var got RawFormInput
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &got))
	assert.Error(t, json.Unmarshal([]byte(`"form"`), &got))
}
