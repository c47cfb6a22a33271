package catalog

// Status é o estado de ciclo de vida derivado do estoque.
type Status string

const (
	StatusInStock    Status = "in-stock"
	StatusOutOfStock Status = "out-of-stock"
	StatusNotTracked Status = "not-tracked"
)

// ComputeStatus deriva o status a partir do modo de estoque e das quantidades
// das variantes. Basta uma variante com estoque positivo para o produto estar
// disponível; não existe faixa de "estoque baixo".
//
// As quantidades já chegam validadas (inteiros não negativos) pela coleta.
func ComputeStatus(mode StockMode, variants []Variant) Status {
	if !mode.Tracked() {
		return StatusNotTracked
	}
	for _, v := range variants {
		if v.StockQuantity > 0 {
			return StatusInStock
		}
	}
	return StatusOutOfStock
}
