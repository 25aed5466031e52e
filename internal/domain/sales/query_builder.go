// Package sales construye la consulta de ventas con control de acceso por fila.
//
// La consulta resultante nunca contiene valores literales de la petición: todo
// valor viaja en Params y se enlaza como argumento con nombre (@nombre).
package sales

import (
	"strings"

	"github.com/jhoicas/sales-inquiry-api/internal/domain"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
)

// Nombres de parámetros enlazados.
const (
	ParamCompany            = "company"
	ParamLang               = "lang"
	ParamAccessScopePattern = "accessScopePattern"
	ParamCustomerCode       = "customerCode"
	ParamGoodsCode          = "goodsCode"
)

const baseSalesQuery = `
SELECT
    h.voucherno                 AS invoice_no,
    h.customercode              AS customercode,
    COALESCE(c.name, '')        AS customername,
    d.goodscode                 AS goodscode,
    COALESCE(g.name, '')        AS goodsname,
    d.qty_minus - d.qty_plus    AS sales_qty,
    d.taxableamount_sc          AS sales_amount
FROM t_acctransactionh h
JOIN t_acctransactiond d
  ON h.company    = d.company
 AND h.internalno = d.internalno
 AND h.sliptype   = d.sliptype
LEFT JOIN m_correspondent c
  ON h.company      = c.company
 AND c.lang         = @lang
 AND h.customercode = c.code
LEFT JOIN m_goods g
  ON d.company   = g.company
 AND g.lang      = @lang
 AND d.goodscode = g.code
WHERE h.company = @company`

// SalesQuery texto SQL más sus argumentos con nombre.
type SalesQuery struct {
	Text   string
	Params map[string]any
}

// QueryBuilder compone la consulta de ventas para una organización fija.
type QueryBuilder struct {
	Company string
	Lang    string
}

// NewQueryBuilder construye el builder para la empresa e idioma de maestros indicados.
func NewQueryBuilder(company, lang string) QueryBuilder {
	return QueryBuilder{Company: company, Lang: lang}
}

// Build compone la consulta filtrada por ámbito de acceso y criterios opcionales.
// Los predicados se combinan con AND; el filtro de ámbito no es omitible salvo para "ALL".
// Un ámbito vacío devuelve domain.ErrAccessScopeMissing: un prefijo vacío vería todas las filas.
func (b QueryBuilder) Build(accessScope string, criteria entity.SalesCriteria) (SalesQuery, error) {
	if accessScope == "" {
		return SalesQuery{}, domain.ErrAccessScopeMissing
	}

	params := map[string]any{
		ParamCompany: b.Company,
		ParamLang:    b.Lang,
	}

	var sb strings.Builder
	sb.WriteString(baseSalesQuery)

	if accessScope != entity.AccessScopeAll {
		sb.WriteString("\n  AND h.inchargecode LIKE @" + ParamAccessScopePattern + ` ESCAPE '\'`)
		params[ParamAccessScopePattern] = escapeLike(accessScope) + "%"
	}

	if v := strings.TrimSpace(criteria.CustomerCode); v != "" {
		sb.WriteString("\n  AND h.customercode LIKE @" + ParamCustomerCode + ` ESCAPE '\'`)
		params[ParamCustomerCode] = "%" + escapeLike(v) + "%"
	}

	if v := strings.TrimSpace(criteria.GoodsCode); v != "" {
		sb.WriteString("\n  AND d.goodscode LIKE @" + ParamGoodsCode + ` ESCAPE '\'`)
		params[ParamGoodsCode] = "%" + escapeLike(v) + "%"
	}

	sb.WriteString("\nORDER BY h.voucherno, d.goodscode")

	return SalesQuery{Text: sb.String(), Params: params}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutraliza los comodines de LIKE para que el valor se compare literalmente.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsLikeWildcard indica si s contiene caracteres con significado especial en LIKE.
func ContainsLikeWildcard(s string) bool {
	return strings.ContainsAny(s, `%_\`)
}
