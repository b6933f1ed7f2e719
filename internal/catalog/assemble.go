package catalog

// ProductAggregate groups the surviving variants of one product.
type ProductAggregate struct {
	ProductInfo
	Variants   []VariantAggregate
	TotalStock int
	IsInStock  bool
}

// Assemble groups variant aggregates under their product, keeping the order
// in which products first appear. A variant id contributes once no matter
// how often it is repeated in vs.
func Assemble(vs []VariantAggregate) []ProductAggregate {
	index := make(map[int64]int)
	seen := make(map[int64]struct{})
	var out []ProductAggregate

	for _, v := range vs {
		if _, dup := seen[v.ID]; dup {
			continue
		}
		seen[v.ID] = struct{}{}

		i, ok := index[v.Product.ID]
		if !ok {
			i = len(out)
			index[v.Product.ID] = i
			out = append(out, ProductAggregate{ProductInfo: v.Product})
		}
		p := &out[i]
		p.Variants = append(p.Variants, v)
		p.TotalStock += v.TotalStock
	}
	for i := range out {
		out[i].IsInStock = out[i].TotalStock > 0
	}
	return out
}

// minDiscounted is the ascending price sort key.
func (p ProductAggregate) minDiscounted() int64 {
	var k int64
	for i, v := range p.Variants {
		if i == 0 || v.MinPriceWithDiscount < k {
			k = v.MinPriceWithDiscount
		}
	}
	return k
}

// maxDiscounted is the descending price sort key.
func (p ProductAggregate) maxDiscounted() int64 {
	var k int64
	for i, v := range p.Variants {
		if i == 0 || v.MaxPriceWithDiscount > k {
			k = v.MaxPriceWithDiscount
		}
	}
	return k
}
