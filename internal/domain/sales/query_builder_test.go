package sales_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-inquiry-api/internal/domain"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/sales"
)

var builder = sales.NewQueryBuilder("DTT", "en-US")

// ──────────────────────────────────────────────────────────────────────────────
// Ámbito de acceso
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_AmbitoRegionalAgregaPrefijo(t *testing.T) {
	q, err := builder.Build("REGION1", entity.SalesCriteria{})
	require.NoError(t, err)

	assert.Contains(t, q.Text, "h.inchargecode LIKE @accessScopePattern")
	assert.Equal(t, "REGION1%", q.Params[sales.ParamAccessScopePattern])
	assert.NotContains(t, q.Text, "REGION1", "el ámbito nunca se interpola en el texto")
}

func TestBuild_AmbitoALLSinFiltro(t *testing.T) {
	q, err := builder.Build(entity.AccessScopeAll, entity.SalesCriteria{})
	require.NoError(t, err)

	assert.NotContains(t, q.Text, "inchargecode")
	_, ok := q.Params[sales.ParamAccessScopePattern]
	assert.False(t, ok)
}

func TestBuild_AmbitoVacioFallaCerrado(t *testing.T) {
	_, err := builder.Build("", entity.SalesCriteria{CustomerCode: "ACME"})
	assert.ErrorIs(t, err, domain.ErrAccessScopeMissing)
}

func TestBuild_AmbitoConComodinesSeEscapa(t *testing.T) {
	q, err := builder.Build("R_1%", entity.SalesCriteria{})
	require.NoError(t, err)
	assert.Equal(t, `R\_1\%%`, q.Params[sales.ParamAccessScopePattern])
}

// ──────────────────────────────────────────────────────────────────────────────
// Criterios opcionales
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_ClienteYAmbitoConjuntos(t *testing.T) {
	q, err := builder.Build("R1", entity.SalesCriteria{CustomerCode: "ACME"})
	require.NoError(t, err)

	assert.Equal(t, "R1%", q.Params[sales.ParamAccessScopePattern])
	assert.Equal(t, "%ACME%", q.Params[sales.ParamCustomerCode])

	scopeIdx := strings.Index(q.Text, "AND h.inchargecode LIKE @accessScopePattern")
	custIdx := strings.Index(q.Text, "AND h.customercode LIKE @customerCode")
	whereIdx := strings.Index(q.Text, "WHERE h.company = @company")
	require.True(t, whereIdx > 0 && scopeIdx > whereIdx && custIdx > scopeIdx,
		"los predicados deben encadenarse con AND tras el WHERE base")
	assert.NotContains(t, q.Text, " OR ")
}

func TestBuild_ArticuloOpcional(t *testing.T) {
	q, err := builder.Build("R1", entity.SalesCriteria{GoodsCode: "G-10"})
	require.NoError(t, err)
	assert.Equal(t, "%G-10%", q.Params[sales.ParamGoodsCode])
	_, ok := q.Params[sales.ParamCustomerCode]
	assert.False(t, ok, "sin customerCode no hay parámetro de cliente")
	assert.NotContains(t, q.Text, "@customerCode")
}

func TestBuild_CriteriosVaciosOEspaciosSeIgnoran(t *testing.T) {
	q, err := builder.Build(entity.AccessScopeAll, entity.SalesCriteria{CustomerCode: "  ", GoodsCode: ""})
	require.NoError(t, err)
	assert.Len(t, q.Params, 2)
	assert.Equal(t, "DTT", q.Params[sales.ParamCompany])
	assert.Equal(t, "en-US", q.Params[sales.ParamLang])
}

func TestBuild_FiltrosConEspaciosSeRecortan(t *testing.T) {
	q, err := builder.Build("R1", entity.SalesCriteria{CustomerCode: " ACME ", GoodsCode: "\tG1"})
	require.NoError(t, err)
	assert.Equal(t, "%ACME%", q.Params[sales.ParamCustomerCode])
	assert.Equal(t, "%G1%", q.Params[sales.ParamGoodsCode])
}

func TestBuild_ValoresHostilesSoloComoParametros(t *testing.T) {
	hostile := []string{
		"x'; DROP TABLE m_employee; --",
		"ZZ_MARKER_%_",
		`\' OR 1=1`,
	}
	for _, v := range hostile {
		q, err := builder.Build("R1", entity.SalesCriteria{CustomerCode: v, GoodsCode: v})
		require.NoError(t, err)
		assert.NotContains(t, q.Text, v)
		assert.NotContains(t, q.Text, "DROP")
		assert.NotContains(t, q.Text, "MARKER")
		assert.Contains(t, q.Params[sales.ParamCustomerCode], "%")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden y determinismo
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_OrdenEstableYDeterminista(t *testing.T) {
	c := entity.SalesCriteria{CustomerCode: "AC", GoodsCode: "G"}
	q1, err := builder.Build("R1", c)
	require.NoError(t, err)
	q2, err := builder.Build("R1", c)
	require.NoError(t, err)

	assert.Equal(t, q1, q2)
	assert.True(t, strings.HasSuffix(q1.Text, "ORDER BY h.voucherno, d.goodscode"))
}

func TestContainsLikeWildcard(t *testing.T) {
	assert.True(t, sales.ContainsLikeWildcard("R%"))
	assert.True(t, sales.ContainsLikeWildcard("R_1"))
	assert.False(t, sales.ContainsLikeWildcard("REGION1"))
}
