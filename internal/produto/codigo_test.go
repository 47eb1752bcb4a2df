package produto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixoCodigo(t *testing.T) {
	tests := []struct {
		modelo, nome, want string
	}{
		{"Camiseta Polo", "Qualquer", "CAM"},
		{"", "Calça Jeans", "CAL"},
		{"Ó-culos", "x", "OCU"},
		{"123", "Boné", "BON"},
		{"Ab", "", "ABX"},
		{"", "", "XXX"},
		{"ção", "", "CAO"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PrefixoCodigo(tt.modelo, tt.nome), "%q/%q", tt.modelo, tt.nome)
	}
}

func TestCodigoSeguinte(t *testing.T) {
	assert.Equal(t, "CAM0001", CodigoSeguinte("CAM", nil))
	assert.Equal(t, "CAM0003", CodigoSeguinte("CAM", []string{"CAM0001", "CAM0002"}))
	assert.Equal(t, "CAM0010", CodigoSeguinte("CAM", []string{"CAM0009", "CAMXYZ", "CAL0050"}))
	assert.Equal(t, "CAM10000", CodigoSeguinte("CAM", []string{"CAM9999"}))
}
