package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "sao paulo", Normalize("  São   Paulo "))
	assert.Equal(t, "feijao e cafe", Normalize("Feijão é café"))
	assert.Equal(t, "abc", Normalize("ABC"))
	assert.Equal(t, "", Normalize("   "))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"acucar", "cristal", "1kg"}, Tokenize("Açúcar Cristal 1kg"))
	assert.Empty(t, Tokenize("  ...  "))
}
