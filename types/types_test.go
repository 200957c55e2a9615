package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBCFLAG(t *testing.T) {
	assert.Equal(t, "Dirichlet", BC_Dirichlet.String())
	assert.Equal(t, "None", BC_None.String())
	assert.Equal(t, "BCFLAG(9)", BCFLAG(9).String())
}
