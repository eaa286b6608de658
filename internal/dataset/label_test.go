package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelStatus_PositiveVocabulary(t *testing.T) {
	for _, status := range []string{
		"Contratado pela Decision",
		"Aprovado",
		"Proposta Aceita",
		"Contratado como Hunting",
		"Documentação PJ",
		"Documentação Cooperado",
		"Documentação CLT",
	} {
		assert.Equal(t, LabelPositive, LabelStatus(status), status)
	}
}

func TestLabelStatus_NegativeVocabulary(t *testing.T) {
	for _, status := range []string{
		"Não Aprovado pelo Requisitante",
		"Não Aprovado pelo Cliente",
		"Não Aprovado pelo RH",
		"Recusado",
		"Desistiu",
		"Desistiu da Contratação",
		"Sem interesse nesta vaga",
	} {
		assert.Equal(t, LabelNegative, LabelStatus(status), status)
	}
}

func TestLabelStatus_UnlistedStatusIsExcluded(t *testing.T) {
	assert.Equal(t, LabelExcluded, LabelStatus("Em avaliação"))
	assert.Equal(t, LabelExcluded, LabelStatus("Prospect"))
	assert.Equal(t, LabelExcluded, LabelStatus(""))
}

func TestLabelStatus_IsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, LabelPositive, LabelStatus("Contratado pela Decision"))
		assert.Equal(t, LabelNegative, LabelStatus("Recusado"))
		assert.Equal(t, LabelExcluded, LabelStatus("Em avaliação"))
	}
}
