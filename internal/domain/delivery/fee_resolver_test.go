package delivery_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comanda-api/internal/domain/delivery"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
)

func area(name, start, end string, fee float64) *entity.DeliveryArea {
	return &entity.DeliveryArea{
		ID:           "area-" + name,
		RestaurantID: "r1",
		Name:         name,
		CEPStart:     start,
		CEPEnd:       end,
		Fee:          decimal.NewFromFloat(fee),
	}
}

func TestNormalizeCEP(t *testing.T) {
	casos := []struct {
		raw  string
		want string
	}{
		{"01.500-000", "01500000"},
		{"01500-000", "01500000"},
		{"01500000", "01500000"},
		{" 01500 000 ", "01500000"},
		{"abc", ""},
		{"123", "123"},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, delivery.NormalizeCEP(c.raw), "raw=%q", c.raw)
	}
}

// Cenário E do fluxo de entrega: faixa única [01000000, 01999999] com taxa 5.00.
func TestResolveFee_FaixaUnica(t *testing.T) {
	areas := []*entity.DeliveryArea{area("centro", "01000000", "01999999", 5.00)}

	q, res := delivery.ResolveFee(areas, "01.500-000")
	require.Equal(t, delivery.ResolutionOK, res)
	assert.True(t, q.Fee.Equal(decimal.NewFromFloat(5.00)))
	assert.Equal(t, "centro", q.Area.Name)

	_, res = delivery.ResolveFee(areas, "02000000")
	assert.Equal(t, delivery.ResolutionNoCoverage, res)

	_, res = delivery.ResolveFee(areas, "123")
	assert.Equal(t, delivery.ResolutionInvalidCode, res)
}

func TestResolveFee_LimitesInclusivos(t *testing.T) {
	areas := []*entity.DeliveryArea{area("zona", "01000000", "01999999", 7.50)}

	_, res := delivery.ResolveFee(areas, "01000000")
	assert.Equal(t, delivery.ResolutionOK, res, "o início da faixa pertence à faixa")

	_, res = delivery.ResolveFee(areas, "01999999")
	assert.Equal(t, delivery.ResolutionOK, res, "o fim da faixa pertence à faixa")

	_, res = delivery.ResolveFee(areas, "00999999")
	assert.Equal(t, delivery.ResolutionNoCoverage, res)
}

// A primeira área na ordem de cadastro vence, mesmo quando uma área posterior
// tem faixa mais justa.
func TestResolveFee_PrimeiraAreaVence(t *testing.T) {
	areas := []*entity.DeliveryArea{
		area("ampla", "01000000", "09999999", 10.00),
		area("justa", "01500000", "01500999", 3.00),
	}

	q, res := delivery.ResolveFee(areas, "01500000")
	require.Equal(t, delivery.ResolutionOK, res)
	assert.Equal(t, "ampla", q.Area.Name)
	assert.True(t, q.Fee.Equal(decimal.NewFromFloat(10.00)))
}

// Round-trip: qualquer formatação do mesmo CEP resolve para a mesma taxa.
func TestResolveFee_FormatacoesEquivalentes(t *testing.T) {
	areas := []*entity.DeliveryArea{area("norte", "02000000", "02999999", 8.00)}

	for _, raw := range []string{"02500000", "02500-000", "02.500-000", " 02500-000 "} {
		q, res := delivery.ResolveFee(areas, raw)
		require.Equal(t, delivery.ResolutionOK, res, "raw=%q", raw)
		assert.True(t, q.Fee.Equal(decimal.NewFromFloat(8.00)), "raw=%q", raw)
	}
}

func TestResolveFee_SemAreas(t *testing.T) {
	_, res := delivery.ResolveFee(nil, "01000000")
	assert.Equal(t, delivery.ResolutionNoCoverage, res)
}
