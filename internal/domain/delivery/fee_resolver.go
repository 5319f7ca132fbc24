// Package delivery resolve a taxa de entrega a partir do CEP e das áreas
// cadastradas pelo restaurante. Lógica pura, sem I/O: os chamadores carregam
// as áreas e tratam o resultado como sentinela (nunca como erro lançado).
package delivery

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comanda-api/internal/domain/entity"
)

// cepLength CEPs brasileiros têm 8 dígitos.
const cepLength = 8

// Resolution resultado da resolução de taxa. Os chamadores devem ramificar
// sobre ele; InvalidCode e NoCoverage não são erros.
type Resolution int

const (
	ResolutionOK Resolution = iota
	ResolutionInvalidCode
	ResolutionNoCoverage
)

// Quote taxa resolvida e a área que a definiu.
type Quote struct {
	Area *entity.DeliveryArea
	Fee  decimal.Decimal
}

// NormalizeCEP remove tudo que não for dígito ("01.500-000" -> "01500000").
func NormalizeCEP(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveFee percorre as áreas na ordem de cadastro e devolve a taxa da
// primeira cuja faixa [CEPStart, CEPEnd] contém o CEP normalizado (limites
// inclusivos). A comparação é lexicográfica sobre strings de dígitos de
// largura fixa, que coincide com a ordem numérica.
func ResolveFee(areas []*entity.DeliveryArea, rawCEP string) (Quote, Resolution) {
	cep := NormalizeCEP(rawCEP)
	if len(cep) < cepLength {
		return Quote{}, ResolutionInvalidCode
	}
	for _, area := range areas {
		if area.CEPStart <= cep && cep <= area.CEPEnd {
			return Quote{Area: area, Fee: area.Fee}, ResolutionOK
		}
	}
	return Quote{}, ResolutionNoCoverage
}
