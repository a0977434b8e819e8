package deriving

import (
	"github.com/shopspring/decimal"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

// Products derives a detail block per product line, in catalog order.
func Products(period domain.Period, products domain.ProductStatements) []domain.ProductDetail {
	details := make([]domain.ProductDetail, 0, len(domain.Products))
	for _, product := range domain.Products {
		detail := domain.ProductDetail{
			Product:       product,
			Name:          product.DisplayName(),
			MonthlySeries: []domain.ProductSnapshot{},
		}

		cogs := decimal.Zero
		for _, pm := range products.Series[product] {
			snap := productSnapshot(period.Year(), pm)
			detail.MonthlySeries = append(detail.MonthlySeries, snap)
			detail.YTDSales = detail.YTDSales.Add(pm.Sales)
			cogs = cogs.Add(pm.COGS)
			if pm.Month == period.Month() {
				detail.Current = snap
			}
		}
		if detail.Current.Month == "" {
			detail.Current = domain.ProductSnapshot{Month: monthLabel(period.Year(), period.Month())}
		}
		detail.YTDMarginPct = Margin(detail.YTDSales.Sub(cogs), detail.YTDSales)

		details = append(details, detail)
	}
	return details
}

func productSnapshot(year int, pm domain.ProductMonth) domain.ProductSnapshot {
	gp := pm.Sales.Sub(pm.COGS)
	return domain.ProductSnapshot{
		Month:          monthLabel(year, pm.Month),
		Sales:          pm.Sales,
		COGS:           pm.COGS,
		GrossProfit:    gp,
		GrossMarginPct: Margin(gp, pm.Sales),
	}
}
