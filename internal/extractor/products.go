package extractor

import (
	"time"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

const (
	SheetProductSales = "Product Sales"
	SheetProductCOGS  = "Product COGS"
)

var productLabels = map[domain.Product]labelSpec{
	domain.ProductCastDrums: {
		name:       "cast drums",
		candidates: []string{"cast drums", "cast drum"},
	},
	domain.ProductSteelShellDrums: {
		name:       "steel shell drums",
		candidates: []string{"steel shell drums", "steel shell drum", "steel shell"},
	},
	domain.ProductRotors: {
		name:       "rotors",
		candidates: []string{"rotors", "rotor", "brake rotors"},
	},
	domain.ProductCalipers: {
		name:       "calipers",
		candidates: []string{"calipers", "caliper", "brake calipers"},
	},
	domain.ProductPads: {
		name:       "pads",
		candidates: []string{"pads", "brake pads", "pad"},
	},
	domain.ProductHubs: {
		name:       "hubs",
		candidates: []string{"hubs", "hub", "hub assemblies"},
	},
}

func readProducts(path string, period domain.Period) (domain.ProductStatements, error) {
	out := domain.ProductStatements{Series: map[domain.Product][]domain.ProductMonth{}}

	wb, err := openWorkbook(path)
	if err != nil {
		return out, err
	}
	defer wb.Close()

	sales, err := requiredStatement(wb, SheetProductSales)
	if err != nil {
		return out, err
	}
	if !sales.hasMonth(period.Month()) {
		return out, &MissingRequiredInputError{File: wb.name, Sheet: SheetProductSales, Label: period.Month().String()[:3] + " column"}
	}

	var cogs *statementSheet
	if rows, ok, err := wb.rows(SheetProductCOGS); err != nil {
		return out, err
	} else if ok {
		if cogs, err = parseStatementSheet(wb.name, SheetProductCOGS, rows); err != nil {
			cogs = nil
		}
	}

	for _, product := range domain.Products {
		spec := productLabels[product]
		salesRow := sales.find(spec)
		cogsRow := -1
		if cogs != nil {
			cogsRow = cogs.find(spec)
		}

		var series []domain.ProductMonth
		for m := time.January; m <= period.Month(); m++ {
			if !sales.hasMonth(m) {
				continue
			}
			pm := domain.ProductMonth{Month: m}
			if pm.Sales, err = sales.value(salesRow, m); err != nil {
				return out, err
			}
			if cogs != nil {
				if pm.COGS, err = cogs.value(cogsRow, m); err != nil {
					return out, err
				}
			}
			series = append(series, pm)
		}
		out.Series[product] = series
	}

	return out, nil
}
