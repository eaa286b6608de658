package dataset

// Label is the binary training target derived from a prospect's free-text
// outcome status. Excluded rows never reach model fitting.
type Label int

const (
	LabelNegative Label = 0
	LabelPositive Label = 1
	LabelExcluded Label = -1
)

// The two status vocabularies are business logic reproduced verbatim from
// the recruitment workflow. Changing either set changes model semantics
// non-locally, so they are exhaustive enumerations, never inferred.
var positiveStatuses = map[string]struct{}{
	"Contratado pela Decision": {},
	"Aprovado":                 {},
	"Proposta Aceita":          {},
	"Contratado como Hunting":  {},
	"Documentação PJ":          {},
	"Documentação Cooperado":   {},
	"Documentação CLT":         {},
}

var negativeStatuses = map[string]struct{}{
	"Não Aprovado pelo Requisitante": {},
	"Não Aprovado pelo Cliente":      {},
	"Não Aprovado pelo RH":           {},
	"Recusado":                       {},
	"Desistiu":                       {},
	"Desistiu da Contratação":        {},
	"Sem interesse nesta vaga":       {},
}

// LabelStatus maps an outcome status to its training label. Statuses
// outside both vocabularies are excluded, which drops the row before
// fitting.
func LabelStatus(status string) Label {
	if _, ok := positiveStatuses[status]; ok {
		return LabelPositive
	}
	if _, ok := negativeStatuses[status]; ok {
		return LabelNegative
	}
	return LabelExcluded
}
